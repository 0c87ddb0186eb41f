package service

import (
	"context"
	"fmt"

	"secure_finance_manager/internal/logger"
	"secure_finance_manager/internal/models"
	"secure_finance_manager/internal/repository"
)

// auditor appends one event per successful mutation. A failed append is
// logged and never fails the request that caused it.
type auditor struct {
	events repository.Events
	log    *logger.Logger
}

func newAuditor(events repository.Events, log *logger.Logger) *auditor {
	if log == nil {
		log = logger.Nop()
	}
	return &auditor{events: events, log: log}
}

func (a *auditor) record(ctx context.Context, userID int, typ, entity string, entityID int) {
	if a == nil || a.events == nil {
		return
	}
	ev := models.Event{
		UserID:      userID,
		Type:        typ,
		Entity:      entity,
		EntityID:    entityID,
		Description: describe(typ, entity, entityID),
	}
	if err := a.events.Append(ctx, ev); err != nil {
		a.log.Errorw("audit_append_failed", "err", err, "type", typ, "entity", entity, "entity_id", entityID)
	}
}

func describe(typ, entity string, id int) string {
	verb := map[string]string{
		models.EventCreate: "created",
		models.EventUpdate: "updated",
		models.EventDelete: "deleted",
	}[typ]
	if verb == "" {
		verb = typ
	}
	return fmt.Sprintf("%s %s %d", verb, entity, id)
}
