package events

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"woninglabel_backend/platform/logger"

	"github.com/google/uuid"
)

func newCaptureLogger(buf *bytes.Buffer) *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(buf, nil))}
}

func TestAuditLogRecordsLeadEvents(t *testing.T) {
	var buf bytes.Buffer
	log := newCaptureLogger(&buf)

	bus := NewInMemoryBus(log)
	NewAuditLog(log).RegisterHandlers(bus)

	id := uuid.New()
	published := []Event{
		LeadSubmitted{BaseEvent: NewBaseEvent(), SubmissionID: id, PropertyType: "apartment", CalculatedPrice: 285},
		LeadStatusChanged{BaseEvent: NewBaseEvent(), SubmissionID: id, OldStatus: "new", NewStatus: "contacted"},
		AppointmentScheduled{BaseEvent: NewBaseEvent(), SubmissionID: id, AppointmentDate: "2026-09-15", AppointmentTime: "10:30"},
		LeadDeleted{BaseEvent: NewBaseEvent(), SubmissionID: id},
	}
	for _, event := range published {
		if err := bus.PublishSync(context.Background(), event); err != nil {
			t.Fatalf("publish %s: %v", event.EventName(), err)
		}
	}

	out := buf.String()
	for _, want := range []string{"lead submitted", "lead status changed", "appointment scheduled", "lead deleted"} {
		if !strings.Contains(out, want) {
			t.Errorf("audit log missing %q entry", want)
		}
	}
	if !strings.Contains(out, id.String()) {
		t.Error("audit log entries missing the submission id")
	}
}

func TestAuditLogKeepsContactDetailsOut(t *testing.T) {
	var buf bytes.Buffer
	log := newCaptureLogger(&buf)

	bus := NewInMemoryBus(log)
	NewAuditLog(log).RegisterHandlers(bus)

	event := LeadSubmitted{
		BaseEvent:    NewBaseEvent(),
		SubmissionID: uuid.New(),
		Name:         "Jan de Vries",
		Email:        "jan@example.nl",
		PropertyType: "apartment",
	}
	if err := bus.PublishSync(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "jan@example.nl") || strings.Contains(out, "Jan de Vries") {
		t.Error("audit log leaked contact details")
	}
}
