package tracing

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"

	"github.com/openinbox/inboxd/internal/logger"
)

const (
	SpanTagAccountId = "account-id"
	SpanTagComponent = "component"
)

const (
	SpanTagComponentPostgresRepository = "postgresRepository"
	SpanTagComponentRest               = "rest"
	SpanTagComponentCronJob            = "cronJob"
	SpanTagComponentService            = "service"
	SpanTagComponentWorker             = "worker"
)

func StartTracerSpan(ctx context.Context, operationName string) (opentracing.Span, context.Context) {
	serverSpan := opentracing.GlobalTracer().StartSpan(operationName)
	return serverSpan, opentracing.ContextWithSpan(ctx, serverSpan)
}

// StartHttpServerTracerSpanWithHeader continues a trace from incoming request
// headers, or starts a fresh root span when none are present.
func StartHttpServerTracerSpanWithHeader(ctx context.Context, operationName string, headers http.Header) (context.Context, opentracing.Span) {
	spanCtx, err := opentracing.GlobalTracer().Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(headers))
	if err != nil {
		serverSpan := opentracing.GlobalTracer().StartSpan(operationName)
		return opentracing.ContextWithSpan(ctx, serverSpan), serverSpan
	}

	serverSpan := opentracing.GlobalTracer().StartSpan(operationName, ext.RPCServerOption(spanCtx))
	return opentracing.ContextWithSpan(ctx, serverSpan), serverSpan
}

func TraceErr(span opentracing.Span, err error, fields ...log.Field) {
	if span == nil || err == nil {
		return
	}
	ext.LogError(span, err, fields...)
}

func SetDefaultServiceSpanTags(ctx context.Context, span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentService)
}

func TagComponentRest(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentRest)
}

func TagComponentPostgresRepository(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentPostgresRepository)
}

func TagComponentCronJob(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentCronJob)
}

func TagComponentWorker(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentWorker)
}

func TagAccount(span opentracing.Span, accountID string) {
	if accountID != "" {
		span.SetTag(SpanTagAccountId, accountID)
	}
}

// RecoveryWithJaeger is a gin middleware that records panics as failed spans
// before re-panicking into gin's own recovery.
func RecoveryWithJaeger(tracer opentracing.Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				span := tracer.StartSpan(fmt.Sprintf("panic.%s", c.FullPath()))
				defer span.Finish()
				ext.Error.Set(span, true)
				span.LogKV(
					"event", "panic",
					"error", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
				panic(r)
			}
		}()
		c.Next()
	}
}

// RecoverAndLog is used as a deferred call in cron jobs and background
// goroutines where a panic must not take the process down.
func RecoverAndLog(log logger.Logger) {
	if r := recover(); r != nil {
		log.Errorf("Recovered from panic: %v\n%s", r, debug.Stack())
	}
}
