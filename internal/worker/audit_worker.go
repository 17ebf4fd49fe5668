package worker

import (
	"github.com/spec-kit/community-service/internal/events"
	"github.com/spec-kit/community-service/internal/service"
)

// StartAuditWorker wires the audit handlers into the dispatcher.
func StartAuditWorker(auditService *service.AuditService, dispatcher events.Dispatcher) {
	if auditService == nil || dispatcher == nil {
		return
	}
	auditService.RegisterHandlers(dispatcher)
}
