package services

import (
	"context"
	"errors"
	"time"

	"tradedesk/internal/auth"
	apperrors "tradedesk/internal/errors"
	"tradedesk/internal/logger"
	"tradedesk/internal/metrics"
	"tradedesk/internal/models"
	"tradedesk/internal/store"
)

// recordService handles the lifecycle of one record kind. It never caches:
// every call goes to the store. Update and delete fetch then mutate without
// a lock, so concurrent writers to one id resolve as last write wins.
type recordService[T any, P models.Record[T]] struct {
	store store.EntityStore[T]
	kind  string
	now   func() time.Time
}

// NewRecordService creates a new RecordServicer over s.
func NewRecordService[T any, P models.Record[T]](s store.EntityStore[T]) RecordServicer[T] {
	return newRecordService[T, P](s)
}

func newRecordService[T any, P models.Record[T]](s store.EntityStore[T]) *recordService[T, P] {
	return &recordService[T, P]{
		store: s,
		kind:  P(new(T)).Kind(),
		now:   time.Now,
	}
}

// Save creates or replaces a record
func (s *recordService[T, P]) Save(ctx context.Context, actor *auth.Principal, rec *T) (*T, error) {
	now := s.now()
	if P(rec).GetID() == 0 {
		if c, ok := any(rec).(models.CreationStamped); ok {
			c.StampCreation(auth.ActorName(actor), now)
		}
	} else if r, ok := any(rec).(models.RevisionStamped); ok {
		r.StampRevision(auth.ActorName(actor), now)
	}

	saved, err := s.store.Save(ctx, rec)
	metrics.RecordOperation(s.kind, "save", err)
	if err != nil {
		return nil, classify(err)
	}

	logger.Get().Infow("record saved",
		"kind", s.kind,
		"id", P(saved).GetID(),
		"actor", auth.ActorName(actor),
	)
	return saved, nil
}

// GetAll returns a snapshot of every record
func (s *recordService[T, P]) GetAll(ctx context.Context, _ *auth.Principal) ([]T, error) {
	recs, err := s.store.FindAll(ctx)
	metrics.RecordOperation(s.kind, "list", err)
	if err != nil {
		return nil, classify(err)
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

// FindByID retrieves a record by identity
func (s *recordService[T, P]) FindByID(ctx context.Context, _ *auth.Principal, id uint) (*T, bool, error) {
	rec, found, err := s.store.FindByID(ctx, id)
	metrics.RecordOperation(s.kind, "find", err)
	if err != nil {
		return nil, false, classify(err)
	}
	return rec, found, nil
}

// UpdateByID merges the mutable fields of rec into the stored record
func (s *recordService[T, P]) UpdateByID(ctx context.Context, actor *auth.Principal, id uint, rec *T) (*T, error) {
	existing, err := s.mustFind(ctx, id)
	if err != nil {
		metrics.RecordOperation(s.kind, "update", err)
		return nil, err
	}
	return s.apply(ctx, actor, existing, rec)
}

// apply merges rec onto existing, stamps the revision and saves.
func (s *recordService[T, P]) apply(ctx context.Context, actor *auth.Principal, existing, rec *T) (*T, error) {
	P(existing).MergeMutable(rec)
	if r, ok := any(existing).(models.RevisionStamped); ok {
		r.StampRevision(auth.ActorName(actor), s.now())
	}

	saved, err := s.store.Save(ctx, existing)
	metrics.RecordOperation(s.kind, "update", err)
	if err != nil {
		return nil, classify(err)
	}

	logger.Get().Infow("record updated",
		"kind", s.kind,
		"id", P(existing).GetID(),
		"actor", auth.ActorName(actor),
	)
	return saved, nil
}

// DeleteByID removes an existing record
func (s *recordService[T, P]) DeleteByID(ctx context.Context, actor *auth.Principal, id uint) error {
	if _, err := s.mustFind(ctx, id); err != nil {
		metrics.RecordOperation(s.kind, "delete", err)
		return err
	}

	err := s.store.DeleteByID(ctx, id)
	metrics.RecordOperation(s.kind, "delete", err)
	if err != nil {
		return classify(err)
	}

	logger.Get().Infow("record deleted",
		"kind", s.kind,
		"id", id,
		"actor", auth.ActorName(actor),
	)
	return nil
}

// mustFind fetches id or fails with ErrNotFound.
func (s *recordService[T, P]) mustFind(ctx context.Context, id uint) (*T, error) {
	rec, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	if !found {
		return nil, apperrors.NotFound(s.kind, id)
	}
	return rec, nil
}

// classify passes AppErrors through and wraps anything else as an internal error.
func classify(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
