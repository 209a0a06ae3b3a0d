package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/sq-invest/crm-service/internal/config"
	"github.com/sq-invest/crm-service/internal/domain"
	"github.com/sq-invest/crm-service/internal/events"
)

// ActivityService turns domain events into the recent-activity feed.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	size       int

	mu    sync.RWMutex
	items []domain.Activity
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.ActivityConfig) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	size := cfg.FeedSize
	if size <= 0 {
		size = 50
	}
	return &ActivityService{dispatcher: dispatcher, logger: logger, size: size}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventSessionStarted, a.handleSessionStarted)
	a.dispatcher.Subscribe(events.EventSessionEnded, a.handleSessionEnded)
	a.dispatcher.Subscribe(events.EventContactReclassified, a.handleContactReclassified)
	a.dispatcher.Subscribe(events.EventContactsBulkUpdated, a.handleContactsBulkUpdated)
	a.dispatcher.Subscribe(events.EventContactAdded, a.handleContactAdded)
	a.dispatcher.Subscribe(events.EventDirectoryEntryUpdated, a.handleDirectoryEntryUpdated)
	a.dispatcher.Subscribe(events.EventDirectoryEntryRemoved, a.handleDirectoryEntryRemoved)
}

// Recent returns up to limit feed items, newest first. A non-positive limit returns all.
func (a *ActivityService) Recent(limit int) []domain.Activity {
	a.mu.RLock()
	defer a.mu.RUnlock()
	n := len(a.items)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.Activity, 0, n)
	for i := len(a.items) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, a.items[i])
	}
	return out
}

func (a *ActivityService) handleSessionStarted(_ context.Context, event events.Event) error {
	a.record(event, domain.ActivitySession, "Signed in", fmt.Sprintf("%s signed in", event.Actor.Name), "")
	return nil
}

func (a *ActivityService) handleSessionEnded(_ context.Context, event events.Event) error {
	if payload, ok := event.Payload.(events.SessionEndedPayload); ok && payload.Reason == events.SessionEndExpired {
		a.record(event, domain.ActivitySession, "Session expired", fmt.Sprintf("%s's session expired", event.Actor.Name), "")
		return nil
	}
	a.record(event, domain.ActivitySession, "Signed out", fmt.Sprintf("%s signed out", event.Actor.Name), "")
	return nil
}

func (a *ActivityService) handleContactReclassified(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContactReclassifiedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	a.record(event, domain.ActivityPipeline, "Pipeline updated",
		fmt.Sprintf("%s moved from %s to %s", payload.ContactName, payload.OldStatus, payload.NewStatus), payload.ContactID)
	return nil
}

func (a *ActivityService) handleContactsBulkUpdated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContactsBulkUpdatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	a.record(event, domain.ActivityPipeline, "Bulk action",
		fmt.Sprintf("%s applied to %d contacts", payload.Action, payload.Affected), "")
	return nil
}

func (a *ActivityService) handleContactAdded(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContactAddedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	a.record(event, domain.ActivityLead, "New lead added",
		fmt.Sprintf("%s added to %s", payload.ContactName, payload.Status), payload.ContactID)
	return nil
}

func (a *ActivityService) handleDirectoryEntryUpdated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.DirectoryEntryPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	a.record(event, domain.ActivityDirectory, "User updated", fmt.Sprintf("%s was updated", payload.Username), "")
	return nil
}

func (a *ActivityService) handleDirectoryEntryRemoved(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.DirectoryEntryPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	a.record(event, domain.ActivityDirectory, "User removed", fmt.Sprintf("%s was removed", payload.Username), "")
	return nil
}

func (a *ActivityService) record(event events.Event, kind domain.ActivityType, title, description, contactID string) {
	item := domain.Activity{
		ID:          event.ID,
		Type:        kind,
		Title:       title,
		Description: description,
		ActorID:     event.Actor.ID,
		ContactID:   contactID,
		Timestamp:   event.Timestamp,
	}

	a.mu.Lock()
	a.items = append(a.items, item)
	if over := len(a.items) - a.size; over > 0 {
		a.items = append([]domain.Activity(nil), a.items[over:]...)
	}
	a.mu.Unlock()

	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("session_id", event.SessionID),
		zap.String("actor_id", event.Actor.ID),
		zap.String("description", description))
}
