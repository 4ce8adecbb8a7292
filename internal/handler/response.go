package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/shivswrj/chat-apiserver/internal/domain"
)

// ErrorBody is the unified failure response. Every failure carries
// success:false and a human-readable error; internals never leak.
type ErrorBody struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

// ErrorResponse maps a domain error to the matching HTTP status and
// writes the unified error body.
func ErrorResponse(c *app.RequestContext, err error) {
	message := "an error occurred"
	if domainErr, ok := err.(*domain.DomainError); ok {
		message = domainErr.UserMessage()
	}

	switch {
	case domain.IsNotFound(err):
		c.JSON(consts.StatusNotFound, ErrorBody{
			Code:  "NOT_FOUND",
			Error: message,
		})
	case domain.IsInvalidInput(err):
		c.JSON(consts.StatusBadRequest, ErrorBody{
			Code:  "INVALID_INPUT",
			Error: message,
		})
	case domain.IsAlreadyExists(err):
		c.JSON(consts.StatusConflict, ErrorBody{
			Code:  "ALREADY_EXISTS",
			Error: message,
		})
	default:
		// Internal failure: expose nothing.
		c.JSON(consts.StatusInternalServerError, ErrorBody{
			Code:  "INTERNAL_ERROR",
			Error: "internal server error",
		})
	}
}

// NotFoundResponse is the body for unknown routes.
func NotFoundResponse(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusNotFound, ErrorBody{
		Code:  "NOT_FOUND",
		Error: "route not found",
	})
}

// MethodNotAllowedResponse is the body for known routes hit with an
// unsupported method.
func MethodNotAllowedResponse(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusMethodNotAllowed, ErrorBody{
		Code:  "METHOD_NOT_ALLOWED",
		Error: "method not allowed",
	})
}
