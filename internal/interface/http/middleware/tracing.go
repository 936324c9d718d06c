package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// Tracing 为每个请求创建根Span(沿用上游traceparent)
// 需要放在Logger之前,Logger才能把trace_id写入日志
func Tracing(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := tracing.ExtractHTTP(c.Request.Context(), c.Request.Header)

		spanName := c.Request.Method + " " + c.Request.URL.Path
		ctx, span := tracing.StartSpan(ctx, serviceName, spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(c.Request.Method),
				semconv.URLPath(c.Request.URL.Path),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(
			semconv.HTTPResponseStatusCode(status),
			attribute.String("http.route", c.FullPath()),
		)
		if status >= 500 {
			tracing.RecordError(span, errorFromContext(c))
		}
	}
}

var errServerError = errors.New("server error")

// errorFromContext 取handler通过c.Error记录的最后一个错误
func errorFromContext(c *gin.Context) error {
	if err := c.Errors.Last(); err != nil {
		return err.Err
	}
	return errServerError
}
