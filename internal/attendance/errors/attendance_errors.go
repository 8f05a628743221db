package attendanceerrors

import (
	"net/http"

	"unicube-hr/internal/shared/apperror"
)

var (
	// ErrLockedByApprovedLeave is an expected, user-actionable outcome,
	// not a fault: the date is controlled by an approved leave.
	ErrLockedByApprovedLeave = apperror.New(
		apperror.CodeConflict,
		"cannot change status for a user on approved leave",
		http.StatusConflict,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be present, absent or on_leave",
		http.StatusBadRequest,
	)
)
