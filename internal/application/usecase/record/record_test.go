package record

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/career-os/internal/application/service"
	"github.com/khoahotran/career-os/internal/domain/skill"
	"github.com/khoahotran/career-os/pkg/apperror"
	"github.com/khoahotran/career-os/pkg/logger"
)

type memorySkills struct {
	items map[string]*skill.Skill
	err   error
}

func (m *memorySkills) List(context.Context, skill.Filter) ([]*skill.Skill, error) {
	out := make([]*skill.Skill, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, s)
	}
	return out, m.err
}

func (m *memorySkills) FindByID(_ context.Context, id string) (*skill.Skill, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items[id], nil
}

func (m *memorySkills) Create(_ context.Context, s *skill.Skill) (*skill.Skill, error) {
	if m.err != nil {
		return nil, m.err
	}
	s.ID = "2b1f0c6e-6a55-4a59-9f5e-0d3c9b3c7a10"
	m.items[s.ID] = s
	return s, nil
}

func (m *memorySkills) Update(_ context.Context, id string, p skill.Patch) (*skill.Skill, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	if p.Name != nil {
		s.Name = *p.Name
	}
	return s, nil
}

func (m *memorySkills) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

type recordingPublisher struct{ events []service.Event }

func (p *recordingPublisher) Publish(_ context.Context, e service.Event) { p.events = append(p.events, e) }

func newSkills() (*UseCase[skill.Skill, skill.Filter, skill.Patch], *memorySkills, *recordingPublisher) {
	repo := &memorySkills{items: map[string]*skill.Skill{}}
	events := &recordingPublisher{}
	uc := NewUseCase[skill.Skill, skill.Filter, skill.Patch](repo, "Skill", func(s *skill.Skill) string { return s.ID }, events, logger.NewNop())
	return uc, repo, events
}

func TestGetAbsentIsNotFound(t *testing.T) {
	uc, _, _ := newSkills()

	_, err := uc.Get(context.Background(), "8f0c4b9e-0000-4000-8000-000000000000")

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind())
	assert.Equal(t, "Skill", appErr.Entity)
	assert.Equal(t, "8f0c4b9e-0000-4000-8000-000000000000", appErr.ID)
	assert.Equal(t, "Skill with id '8f0c4b9e-0000-4000-8000-000000000000' not found", appErr.Message)
}

func TestCreateThenUpdatePublishesEvents(t *testing.T) {
	uc, _, events := newSkills()
	ctx := context.Background()

	created, err := uc.Create(ctx, &skill.Skill{Name: "Go", RoleRelevance: "backend", Level: "expert"})
	require.NoError(t, err)

	name := "Golang"
	updated, err := uc.Update(ctx, created.ID, skill.Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Golang", updated.Name)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Golang", got.Name)

	require.Len(t, events.events, 2)
	assert.Equal(t, service.EventRecordCreated, events.events[0].Type)
	assert.Equal(t, created.ID, events.events[0].ID)
	assert.Equal(t, service.EventRecordUpdated, events.events[1].Type)
	assert.Equal(t, "Skill", events.events[1].Entity)
}

func TestUpdateAbsentIsNotFound(t *testing.T) {
	uc, _, events := newSkills()
	name := "x"

	_, err := uc.Update(context.Background(), "missing", skill.Patch{Name: &name})

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Empty(t, events.events)
}

func TestDeleteReportsOutcome(t *testing.T) {
	uc, _, events := newSkills()
	ctx := context.Background()
	created, err := uc.Create(ctx, &skill.Skill{Name: "Go"})
	require.NoError(t, err)

	first, err := uc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, &DeleteOutput{Success: true, ID: created.ID}, first)

	second, err := uc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, &DeleteOutput{Success: false, ID: created.ID}, second)

	assert.Len(t, events.events, 2)
	assert.Equal(t, service.EventRecordDeleted, events.events[1].Type)
}

func TestStoreFailuresPassThrough(t *testing.T) {
	uc, repo, events := newSkills()
	repo.err = apperror.ClassifyDatabaseError(errors.New("failed to connect to host"))

	_, err := uc.Create(context.Background(), &skill.Skill{Name: "Go"})

	assert.Equal(t, apperror.KindDatabase, apperror.KindOf(err))
	assert.Empty(t, events.events)
}
