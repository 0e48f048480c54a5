package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/Nwoyi/staffing-api/internal/events"
	"github.com/Nwoyi/staffing-api/internal/observability"
)

// StartAuditWorker subscribes an audit log handler to every staff lifecycle event.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) {
	if dispatcher == nil {
		return
	}
	handler := auditHandler(logger, metrics)
	for _, eventType := range []events.EventType{
		events.EventStaffCreated,
		events.EventStaffUpdated,
		events.EventStaffDeleted,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}

func auditHandler(logger *zap.Logger, metrics *observability.Metrics) events.EventHandler {
	return func(_ context.Context, event events.Event) error {
		metrics.RecordEvent(string(event.Type))
		logger.Info("staff event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("staff_id", event.StaffID),
			zap.Time("at", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}
}
