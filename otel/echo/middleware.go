package echo

import (
	"github.com/labstack/echo/v4"
	ctxutils "github.com/octabyte/bm-social/utils/context"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Middleware instruments requests with otelecho and adds the route, status
// and caller to the server span. Requests matching any skipper are passed
// through untraced.
func Middleware(serviceName string, skippers ...func(c echo.Context) bool) echo.MiddlewareFunc {
	baseMiddleware := otelecho.Middleware(serviceName)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		traced := baseMiddleware(annotate(next))
		return func(c echo.Context) error {
			for _, skip := range skippers {
				if skip(c) {
					return next(c)
				}
			}
			return traced(c)
		}
	}
}

// annotate runs inside the otelecho span so the request context carries it.
func annotate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)

		span := trace.SpanFromContext(c.Request().Context())
		if !span.IsRecording() {
			return err
		}

		span.SetAttributes(
			attribute.String("http.route", c.Path()),
			attribute.Int("http.status_code", c.Response().Status),
		)
		if session, ok := ctxutils.GetSessionFromContext(c.Request().Context()); ok {
			span.SetAttributes(attribute.String("user.id", session.UserID))
		}
		if err != nil {
			span.SetAttributes(attribute.String("error.message", err.Error()))
		}
		return err
	}
}
