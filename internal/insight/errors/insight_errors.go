package insighterrors

import (
	"net/http"

	"unicube-hr/internal/shared/apperror"
)

var ErrUpstreamUnavailable = apperror.New(
	apperror.CodeServiceUnavailable,
	"insight service is unavailable, try again later",
	http.StatusBadGateway,
)
