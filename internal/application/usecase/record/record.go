package record

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/career-os/internal/application/service"
	"github.com/khoahotran/career-os/pkg/apperror"
	"github.com/khoahotran/career-os/pkg/logger"
)

// Repository is the shape shared by every per-kind record repository.
type Repository[T any, F any, P any] interface {
	List(ctx context.Context, filter F) ([]*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, rec *T) (*T, error)
	Update(ctx context.Context, id string, patch P) (*T, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// UseCase serves list/get/create/update/delete for one record kind and turns
// absent records into not-found failures.
type UseCase[T any, F any, P any] struct {
	repo   Repository[T, F, P]
	entity string
	idOf   func(*T) string
	events service.EventPublisher
	logger logger.Logger
}

func NewUseCase[T any, F any, P any](
	repo Repository[T, F, P],
	entity string,
	idOf func(*T) string,
	events service.EventPublisher,
	log logger.Logger,
) *UseCase[T, F, P] {
	return &UseCase[T, F, P]{
		repo:   repo,
		entity: entity,
		idOf:   idOf,
		events: events,
		logger: log.With(zap.String("entity", entity)),
	}
}

type DeleteOutput struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

func (uc *UseCase[T, F, P]) Entity() string { return uc.entity }

func (uc *UseCase[T, F, P]) List(ctx context.Context, filter F) ([]*T, error) {
	return uc.repo.List(ctx, filter)
}

func (uc *UseCase[T, F, P]) Get(ctx context.Context, id string) (*T, error) {
	rec, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NewNotFound(uc.entity, id)
	}
	return rec, nil
}

func (uc *UseCase[T, F, P]) Create(ctx context.Context, rec *T) (*T, error) {
	created, err := uc.repo.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	id := uc.idOf(created)
	uc.logger.Info("Record created", zap.String("id", id))
	uc.publish(ctx, service.EventRecordCreated, id, created)
	return created, nil
}

func (uc *UseCase[T, F, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	updated, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NewNotFound(uc.entity, id)
	}
	uc.logger.Info("Record updated", zap.String("id", id))
	uc.publish(ctx, service.EventRecordUpdated, id, updated)
	return updated, nil
}

// Delete reports Success=false for an id that matches nothing; that is not an error.
func (uc *UseCase[T, F, P]) Delete(ctx context.Context, id string) (*DeleteOutput, error) {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted {
		uc.logger.Info("Record deleted", zap.String("id", id))
		uc.publish(ctx, service.EventRecordDeleted, id, nil)
	}
	return &DeleteOutput{Success: deleted, ID: id}, nil
}

func (uc *UseCase[T, F, P]) publish(ctx context.Context, eventType, id string, payload any) {
	uc.events.Publish(ctx, service.Event{
		Type:       eventType,
		Entity:     uc.entity,
		ID:         id,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	})
}
