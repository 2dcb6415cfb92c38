package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/labstack/echo/v4"
)

// Error kinds reported in the "error" field.
const (
	KindValidation        = "ValidationError"
	KindEmailConflict     = "EmailConflict"
	KindUsernameConflict  = "UsernameConflict"
	KindUserNotFound      = "UserNotFound"
	KindServerError       = "ServerError"
	KindRateLimitExceeded = "RateLimitExceeded"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func success(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

// classify maps err to an HTTP status and error kind. Unknown errors are
// reported as ServerError without detail.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, KindValidation
	case errors.Is(err, common.ErrorEmailConflict):
		return http.StatusConflict, KindEmailConflict
	case errors.Is(err, common.ErrorUsernameConflict):
		return http.StatusConflict, KindUsernameConflict
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, KindUserNotFound
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch {
		case he.Code == http.StatusTooManyRequests:
			return he.Code, KindRateLimitExceeded
		case he.Code >= http.StatusInternalServerError:
			return he.Code, KindServerError
		default:
			return he.Code, http.StatusText(he.Code)
		}
	}

	return http.StatusInternalServerError, KindServerError
}

func (s *HTTPServer) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, kind := classify(err)
	if kind == KindServerError {
		s.logger.Error(c.Request().Context(), "request failed", "error", err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, envelope{Success: false, Error: kind})
	}
	if werr != nil {
		s.logger.Error(c.Request().Context(), "write error response", "error", werr)
	}
}
