package goalerrors

import (
	"net/http"

	"unicube-hr/internal/shared/apperror"
)

var (
	ErrGoalNotFound = apperror.New(
		apperror.CodeNotFound,
		"goal not found",
		http.StatusNotFound,
	)
	ErrTitleLength = apperror.New(
		apperror.CodeInvalidInput,
		"title must be between 5 and 100 characters",
		http.StatusBadRequest,
	)
	ErrDescriptionLength = apperror.New(
		apperror.CodeInvalidInput,
		"description must be between 10 and 500 characters",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be in_progress or completed",
		http.StatusBadRequest,
	)
	ErrNotAssignee = apperror.New(
		apperror.CodeForbidden,
		"only the assignee can update this goal",
		http.StatusForbidden,
	)
)
