package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sq-invest/crm-service/internal/auth"
	"github.com/sq-invest/crm-service/internal/domain"
	"github.com/sq-invest/crm-service/internal/events"
	"github.com/sq-invest/crm-service/internal/observability"
	"github.com/sq-invest/crm-service/internal/pipeline"
	apperrors "github.com/sq-invest/crm-service/pkg/util/errorutil"
)

// MoveRequest describes a drag: the contact, the column it left and the drop target.
type MoveRequest struct {
	ContactID   string
	Source      string
	Destination string
}

// PipelineService exposes each session's pipeline board.
type PipelineService struct {
	boards     *pipeline.Registry
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewPipelineService creates the service over a board registry.
func NewPipelineService(boards *pipeline.Registry, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *PipelineService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PipelineService{boards: boards, dispatcher: dispatcher, metrics: metrics, logger: logger, now: time.Now}
}

// RegisterHandlers drops a session's board once the session ends.
func (s *PipelineService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventSessionEnded, func(_ context.Context, e events.Event) error {
		s.boards.Drop(e.SessionID)
		return nil
	})
}

// Columns returns the filtered board grouped into the three buckets.
func (s *PipelineService) Columns(principal *auth.Principal, criteria pipeline.Criteria) pipeline.Columns {
	return s.board(principal).Visible(criteria)
}

// Stats summarises the caller's whole board.
func (s *PipelineService) Stats(principal *auth.Principal) pipeline.Stats {
	return pipeline.Summarize(s.board(principal).Snapshot())
}

// InvestmentTypes lists the distinct investment types on the caller's board.
func (s *PipelineService) InvestmentTypes(principal *auth.Principal) []string {
	return pipeline.InvestmentTypes(s.board(principal).Snapshot())
}

// Templates lists the add-contact templates.
func (s *PipelineService) Templates() []pipeline.Template {
	return pipeline.Templates()
}

// Move reclassifies a dragged contact into the destination bucket's canonical status.
func (s *PipelineService) Move(ctx context.Context, principal *auth.Principal, req MoveRequest) (pipeline.Move, error) {
	source := dropZone(req.Source)
	dest := dropZone(req.Destination)

	move, err := s.board(principal).Move(source, dest, req.ContactID)
	if err != nil {
		if errors.Is(err, pipeline.ErrContactNotFound) {
			return pipeline.Move{}, apperrors.NewNotFound("contact", map[string]any{"id": req.ContactID})
		}
		return pipeline.Move{}, err
	}
	if dest == nil {
		return move, nil
	}

	s.metrics.RecordMove(string(*dest), move.Changed)
	if move.Changed {
		s.publish(ctx, events.New(events.EventContactReclassified, principal.SessionID, events.ActorOf(principal.Actor),
			events.ContactReclassifiedPayload{
				ContactID:   move.Contact.ID,
				ContactName: move.Contact.Name,
				OldStatus:   move.FromStatus,
				NewStatus:   move.ToStatus,
				Destination: string(*dest),
			}))
	}
	return move, nil
}

// Bulk applies action to every selected contact and reports how many were affected.
func (s *PipelineService) Bulk(ctx context.Context, principal *auth.Principal, ids []string, rawAction string) (int, error) {
	action, err := pipeline.ParseBulkAction(rawAction)
	if err != nil {
		return 0, apperrors.NewValidationError("unknown bulk action", map[string]any{"action": rawAction})
	}
	affected, err := s.board(principal).Bulk(ids, action)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.publish(ctx, events.New(events.EventContactsBulkUpdated, principal.SessionID, events.ActorOf(principal.Actor),
			events.ContactsBulkUpdatedPayload{Action: string(action), Selected: ids, Affected: affected}))
	}
	return affected, nil
}

// AddContact creates a contact on the caller's board, optionally pre-filled from a template.
func (s *PipelineService) AddContact(ctx context.Context, principal *auth.Principal, input pipeline.ContactInput, templateID string) (domain.Contact, error) {
	if templateID != "" {
		tmpl, ok := pipeline.FindTemplate(templateID)
		if !ok {
			return domain.Contact{}, apperrors.NewValidationError("unknown template", map[string]any{"template": templateID})
		}
		input = tmpl.Apply(input)
	}
	contact, err := pipeline.NewContact(input, s.now())
	if err != nil {
		return domain.Contact{}, apperrors.NewValidationError(err.Error(), nil)
	}
	s.board(principal).Add(contact)
	s.publish(ctx, events.New(events.EventContactAdded, principal.SessionID, events.ActorOf(principal.Actor),
		events.ContactAddedPayload{ContactID: contact.ID, ContactName: contact.Name, Status: contact.Status, Template: templateID}))
	return contact, nil
}

// UpdateContact rewrites one contact on the caller's board with edit, reading
// and writing under a single board lock.
func (s *PipelineService) UpdateContact(principal *auth.Principal, id string, edit func(domain.Contact) domain.Contact) (domain.Contact, error) {
	contact, err := s.board(principal).Update(id, edit)
	if err != nil {
		if errors.Is(err, pipeline.ErrContactNotFound) {
			return domain.Contact{}, apperrors.NewNotFound("contact", map[string]any{"id": id})
		}
		return domain.Contact{}, err
	}
	return contact, nil
}

// EvictIdle drops boards untouched for longer than maxIdle and returns how many
// were dropped.
func (s *PipelineService) EvictIdle(maxIdle time.Duration) int {
	dropped := s.boards.DropIdle(maxIdle)
	if len(dropped) > 0 {
		s.logger.Info("dropped idle pipeline boards", zap.Int("count", len(dropped)))
	}
	return len(dropped)
}

func (s *PipelineService) board(principal *auth.Principal) *pipeline.Board {
	return s.boards.Board(principal.SessionID)
}

func (s *PipelineService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// dropZone resolves a drop-zone id. Anything that is not a bucket id, the empty
// string included, is a drop outside every column.
func dropZone(raw string) *pipeline.Bucket {
	b, err := pipeline.ParseBucket(raw)
	if err != nil {
		return nil
	}
	return &b
}
