package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
)

// CORS sets permissive cross-origin headers and answers preflight
// requests.
func CORS() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		c.Response.Header.Set("Access-Control-Allow-Origin", "*")
		c.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		c.Response.Header.Set("Access-Control-Expose-Headers", "X-Request-ID")
		c.Response.Header.Set("Access-Control-Max-Age", "86400")

		if string(c.Method()) == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next(ctx)
	}
}
