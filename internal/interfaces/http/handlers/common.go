// Package handlers implements the HTTP endpoints of the intake API.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/richlegrande-dot/care2connect-intake/internal/interfaces/http/middleware"
	"github.com/richlegrande-dot/care2connect-intake/pkg/errors"
)

// errorBody is the standard error envelope.
type errorBody struct {
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
	Detail  string           `json:"detail,omitempty"`
}

// respondError writes the envelope for err, mapping its code to a status.
func respondError(c *gin.Context, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.Wrap(err, errors.ErrCodeInternal, "internal error")
	}
	c.JSON(appErr.Code.HTTPStatus(), gin.H{
		"error": errorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Detail:  appErr.Detail,
		},
		"request_id": middleware.GetRequestID(c),
	})
}
