package handlers

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Jyotish-Intelligence/internal/interfaces/http/middleware"
	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
	"github.com/turtacn/Jyotish-Intelligence/pkg/types/chart"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// bindPayload decodes the request body as JSON, or YAML when the content
// type says so, and validates it.
func bindPayload(c *gin.Context, v interface{}) error {
	format := chart.FormatJSON
	ct := c.ContentType()
	if strings.Contains(ct, "yaml") {
		format = chart.FormatYAML
	}
	return chart.Decode(c.Request.Body, format, v)
}

// writeError maps err to its HTTP status and writes an ErrorResponse.
// Server-side failures are logged and masked.
func writeError(c *gin.Context, logger logging.Logger, err error) {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Code:      string(errors.CodeInvalidParam),
			Message:   "request body too large",
			RequestID: middleware.GetRequestID(c),
		})
		return
	}

	code := errors.GetCode(err)
	status := errors.HTTPStatus(code)
	resp := ErrorResponse{Code: string(code), RequestID: middleware.GetRequestID(c)}

	var appErr *errors.AppError
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", logging.String("request_id", resp.RequestID), logging.Err(err))
		resp.Message = "internal server error"
	case stderrors.As(err, &appErr):
		resp.Message = appErr.Message
		resp.Detail = appErr.Detail
	default:
		resp.Message = err.Error()
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

//Personal.AI order the ending
