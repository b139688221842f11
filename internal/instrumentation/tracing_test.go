package instrumentation

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	orig := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(orig)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func TestStartGoogleAPISpan(t *testing.T) {
	recorder := withRecorder(t)

	ctx, span := StartGoogleAPISpan(context.Background(), ServiceCalendar, OpGetEvent,
		CalendarID("primary"), EventID("evt1"))
	if GetTraceID(ctx) == "" {
		t.Error("expected a trace id in context")
	}
	EndSpan(span, nil)

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(ended))
	}
	s := ended[0]
	if s.Name() != "google.calendar.get_event" {
		t.Errorf("span name = %q", s.Name())
	}
	if s.SpanKind() != trace.SpanKindClient {
		t.Errorf("span kind = %v, want client", s.SpanKind())
	}
	if s.Status().Code != codes.Ok {
		t.Errorf("status = %v, want Ok", s.Status().Code)
	}

	found := map[string]string{}
	for _, kv := range s.Attributes() {
		found[string(kv.Key)] = kv.Value.Emit()
	}
	if found[SpanAttrCalendarID] != "primary" || found[SpanAttrEventID] != "evt1" {
		t.Errorf("unexpected attributes %v", found)
	}
}

func TestStartToolSpan_Error(t *testing.T) {
	recorder := withRecorder(t)

	_, span := StartToolSpan(context.Background(), "calendar_get_event")
	EndSpan(span, errors.New("not found"))

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(ended))
	}
	if ended[0].Name() != "tool.calendar_get_event" {
		t.Errorf("span name = %q", ended[0].Name())
	}
	if ended[0].SpanKind() != trace.SpanKindServer {
		t.Errorf("span kind = %v, want server", ended[0].SpanKind())
	}
	if ended[0].Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", ended[0].Status().Code)
	}
}

func TestGetTraceID_NoSpan(t *testing.T) {
	if id := GetTraceID(context.Background()); id != "" {
		t.Errorf("GetTraceID() = %q, want empty", id)
	}
}
