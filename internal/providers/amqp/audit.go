package amqp

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type AuditEnvelope struct {
	SchemaVersion int            `json:"schema_version"`
	EventType     string         `json:"event_type"`
	Action        string         `json:"action"`
	OccurredAt    string         `json:"occurred_at"`
	Service       string         `json:"service"`
	Environment   string         `json:"environment"`
	TraceID       string         `json:"trace_id,omitempty"`
	ProfileID     string         `json:"profile_id,omitempty"`
	Payload       map[string]any `json:"payload,omitempty"`
}

// Auditor records who did what.
type Auditor interface {
	Emit(ctx context.Context, action, profileID string, payload map[string]any)
}

// AuditEmitter publishes moderation and mutation audit records. A nil emitter is a no-op.
type AuditEmitter struct {
	publisher   Publisher
	service     string
	environment string
	logger      *zap.SugaredLogger
}

func NewAuditEmitter(publisher Publisher, service, environment string, logger *zap.Logger) *AuditEmitter {
	return &AuditEmitter{
		publisher:   publisher,
		service:     service,
		environment: environment,
		logger:      logger.Sugar(),
	}
}

// Emit publishes on routing key "audit.<action>". Publish failures are logged, never returned.
func (e *AuditEmitter) Emit(ctx context.Context, action, profileID string, payload map[string]any) {
	if e == nil || e.publisher == nil {
		return
	}

	envelope := AuditEnvelope{
		SchemaVersion: 1,
		EventType:     "audit_log",
		Action:        action,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Service:       e.service,
		Environment:   e.environment,
		ProfileID:     profileID,
		Payload:       payload,
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		envelope.TraceID = sc.TraceID().String()
	}

	if err := e.publisher.Publish(ctx, "audit."+action, envelope); err != nil {
		e.logger.Warnw("Audit publish failed", "action", action, "error", err)
	}
}

type NopAuditor struct{}

func (NopAuditor) Emit(context.Context, string, string, map[string]any) {}
