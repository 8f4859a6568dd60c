package mongo

import (
	// Standard Library Imports
	"context"
	"fmt"

	// External Imports
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/p000ic/go-grantstore-mongo/mongo")

// dbTrace describes a mongo call for tracing.
type dbTrace struct {
	Manager    string
	Method     string
	Collection string
	Query      interface{}
}

// traceMongoCall starts a client span for a mongo call. The caller must end
// the span.
func traceMongoCall(ctx context.Context, dbCall dbTrace) (trace.Span, context.Context) {
	ctx, span := tracer.Start(ctx,
		fmt.Sprintf("mongo.%s.%s", dbCall.Manager, dbCall.Method),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mongodb"),
			attribute.String("db.collection", dbCall.Collection),
			attribute.String("db.operation", dbCall.Method),
		),
	)
	if dbCall.Query != nil {
		otLogQuery(span, dbCall.Query)
	}
	return span, ctx
}

// otLogQuery attaches the query to the span.
func otLogQuery(span trace.Span, query interface{}) {
	span.SetAttributes(attribute.String("db.statement", fmt.Sprintf("%v", query)))
}

// otLogErr marks the span as failed.
func otLogErr(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
