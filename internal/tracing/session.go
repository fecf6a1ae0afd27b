package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SessionTracer records build sessions as spans. Each session becomes
// one span; the decisions made during the session become span events.
// All methods are safe with a disabled provider, where the underlying
// tracer is a no-op.
type SessionTracer struct {
	tracer trace.Tracer
}

// NewSessionTracer creates a session tracer backed by the provider.
func NewSessionTracer(p *Provider) *SessionTracer {
	return &SessionTracer{tracer: p.Tracer()}
}

// StartSession opens a span covering one build session.
// The caller must end the span via Completed or Cancelled.
func (st *SessionTracer) StartSession(ctx context.Context, sessionID, raw string) (context.Context, trace.Span) {
	ctx, span := st.tracer.Start(ctx, SpanSessionBuild,
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	span.SetAttributes(
		attribute.String(AttrSessionID, sessionID),
		attribute.String(AttrTemplateRaw, raw),
	)
	return ctx, span
}

// StartLoad opens a span covering a definitions load.
func (st *SessionTracer) StartLoad(ctx context.Context, source string) (context.Context, trace.Span) {
	ctx, span := st.tracer.Start(ctx, SpanDefsLoad,
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	span.SetAttributes(attribute.String(AttrDefsSource, source))
	return ctx, span
}

// GroupDecided records a decision on a group (value provided, flags
// confirmed, or skipped).
func GroupDecided(span trace.Span, group, decision string) {
	span.AddEvent(EventGroupDecided, trace.WithAttributes(
		attribute.String(AttrGroupName, group),
		attribute.String(AttrDecision, decision),
	))
}

// FlagPicked records a flag selection within a flag group.
func FlagPicked(span trace.Span, flagTemplate string) {
	span.AddEvent(EventFlagPicked, trace.WithAttributes(
		attribute.String(AttrFlagTemplate, flagTemplate),
	))
}

// FlagArgument records that an argument was supplied for a flag.
// The argument value itself is not recorded.
func FlagArgument(span trace.Span, flagTemplate string) {
	span.AddEvent(EventFlagArgument, trace.WithAttributes(
		attribute.String(AttrFlagTemplate, flagTemplate),
	))
}

// Completed marks the session span successful and records the final command.
func Completed(span trace.Span, command string) {
	span.AddEvent(EventSessionCompleted, trace.WithAttributes(
		attribute.String(AttrCommandFinal, command),
	))
	span.SetStatus(codes.Ok, "")
	span.End()
}

// Cancelled marks the session span as abandoned.
func Cancelled(span trace.Span) {
	span.AddEvent(EventSessionCancelled)
	span.SetStatus(codes.Error, "session cancelled")
	span.End()
}

// LoadFinished records the outcome of a definitions load and ends the span.
func LoadFinished(span trace.Span, loaded, problems int) {
	span.SetAttributes(
		attribute.Int(AttrDefsLoaded, loaded),
		attribute.Int(AttrDefsProblems, problems),
	)
	if problems > 0 {
		span.SetStatus(codes.Error, "definitions loaded with problems")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
