package profile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/career-os/internal/application/service"
	"github.com/khoahotran/career-os/internal/domain/profile"
	"github.com/khoahotran/career-os/pkg/logger"
)

type ProfileUseCase struct {
	profileRepo profile.Repository
	events      service.EventPublisher
	logger      logger.Logger
}

func NewProfileUseCase(repo profile.Repository, events service.EventPublisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		events:      events,
		logger:      log,
	}
}

type GetProfileOutput struct {
	// Profile is nil when none has been recorded yet.
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context) (*GetProfileOutput, error) {
	p, err := uc.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &GetProfileOutput{Profile: p}, nil
}

type UpdateProfileInput struct {
	PersonalInfo        profile.PersonalInfo
	Positioning         profile.Positioning
	ValuePropositions   []string
	ProfessionalMission string
	UniqueSellingPoints []string
}

type UpdateProfileOutput struct {
	Profile *profile.Profile
}

// ExecuteUpdateProfile replaces the whole profile, creating it when absent.
func (uc *ProfileUseCase) ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	p := &profile.Profile{
		PersonalInfo:        input.PersonalInfo,
		Positioning:         input.Positioning,
		ValuePropositions:   input.ValuePropositions,
		ProfessionalMission: input.ProfessionalMission,
		UniqueSellingPoints: input.UniqueSellingPoints,
	}

	saved, err := uc.profileRepo.Upsert(ctx, p)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Profile upserted", zap.Time("updated_at", saved.UpdatedAt))
	uc.events.Publish(ctx, service.Event{
		Type:       service.EventRecordUpdated,
		Entity:     profile.EntityName,
		ID:         saved.ID,
		Payload:    saved,
		OccurredAt: time.Now().UTC(),
	})
	return &UpdateProfileOutput{Profile: saved}, nil
}
