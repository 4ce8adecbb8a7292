package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Recovery catches handler panics, logs the stack, and returns a
// structured 500 instead of dropping the connection.
func Recovery() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				slog.Default().With(
					"request_id", GetRequestID(c),
					"method", string(c.Method()),
					"path", string(c.Path()),
					"panic", fmt.Sprintf("%v", err),
				).Error("panic recovered",
					"stack", string(debug.Stack()),
				)

				c.JSON(consts.StatusInternalServerError, utils.H{
					"success": false,
					"code":    "INTERNAL_ERROR",
					"error":   "internal server error",
				})
				c.Abort()
			}
		}()

		c.Next(ctx)
	}
}
