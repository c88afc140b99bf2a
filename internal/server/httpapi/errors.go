package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

const (
	detailCredentials   = "Could not validate credentials"
	detailNoUser        = "Invalid token: missing user information"
	detailConfiguration = "Server configuration error: Missing secret key"
	detailInternal      = "Internal server error"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrorNoUserID),
		errors.Is(err, common.ErrorInvalidAuthHeader):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// detailFor picks the client-facing message. Internal errors never leak.
func detailFor(err error, status int) string {
	var de *common.DetailedError
	if errors.As(err, &de) && status != http.StatusInternalServerError {
		return de.Detail
	}

	switch {
	case errors.Is(err, common.ErrorConfiguration):
		return detailConfiguration
	case errors.Is(err, common.ErrorNoUserID):
		return detailNoUser
	case status == http.StatusUnauthorized:
		return detailCredentials
	case status == http.StatusInternalServerError:
		return detailInternal
	default:
		return http.StatusText(status)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, l logging.Logger, err error) {
	status := statusFor(err)

	switch {
	case errors.Is(err, common.ErrorConfiguration):
		l.Error(r.Context(), "server misconfigured", "error", err)
	case status == http.StatusInternalServerError:
		l.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeJSON(w, status, errorResponse{Detail: detailFor(err, status)})
}

type errorResponse struct {
	Detail string `json:"detail"`
}
