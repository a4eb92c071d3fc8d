package careercontext

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khoahotran/career-os/internal/domain/education"
	"github.com/khoahotran/career-os/internal/domain/experience"
	"github.com/khoahotran/career-os/internal/domain/profile"
	"github.com/khoahotran/career-os/internal/domain/project"
	"github.com/khoahotran/career-os/internal/domain/skill"
	"github.com/khoahotran/career-os/pkg/logger"
)

var tracer = otel.Tracer("careercontext_usecase")

// Composite holds every record the owner has, unfiltered.
type Composite struct {
	Profile     *profile.Profile
	Experiences []*experience.Experience
	Skills      []*skill.Skill
	Projects    []*project.Project
	Educations  []*education.Education
}

type Aggregator struct {
	profileRepo    profile.Repository
	experienceRepo experience.Repository
	skillRepo      skill.Repository
	projectRepo    project.Repository
	educationRepo  education.Repository
	logger         logger.Logger
}

func NewAggregator(
	pRepo profile.Repository,
	exRepo experience.Repository,
	sRepo skill.Repository,
	prRepo project.Repository,
	edRepo education.Repository,
	log logger.Logger,
) *Aggregator {
	return &Aggregator{
		profileRepo:    pRepo,
		experienceRepo: exRepo,
		skillRepo:      sRepo,
		projectRepo:    prRepo,
		educationRepo:  edRepo,
		logger:         log,
	}
}

// BuildContext fetches the five collections concurrently. Any single failure
// fails the whole aggregation; there is no partial context.
func (a *Aggregator) BuildContext(ctx context.Context) (*Composite, error) {
	ctx, span := tracer.Start(ctx, "BuildContext")
	defer span.End()

	var c Composite
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := a.profileRepo.Get(gctx)
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		c.Profile = p
		return nil
	})
	g.Go(func() error {
		items, err := a.experienceRepo.List(gctx, experience.Filter{})
		if err != nil {
			return fmt.Errorf("fetch experiences: %w", err)
		}
		c.Experiences = items
		return nil
	})
	g.Go(func() error {
		items, err := a.skillRepo.List(gctx, skill.Filter{})
		if err != nil {
			return fmt.Errorf("fetch skills: %w", err)
		}
		c.Skills = items
		return nil
	})
	g.Go(func() error {
		items, err := a.projectRepo.List(gctx, project.Filter{})
		if err != nil {
			return fmt.Errorf("fetch projects: %w", err)
		}
		c.Projects = items
		return nil
	})
	g.Go(func() error {
		items, err := a.educationRepo.List(gctx, education.Filter{})
		if err != nil {
			return fmt.Errorf("fetch educations: %w", err)
		}
		c.Educations = items
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("experiences", len(c.Experiences)),
		attribute.Int("skills", len(c.Skills)),
		attribute.Int("projects", len(c.Projects)),
		attribute.Int("educations", len(c.Educations)),
	)
	a.logger.Info("Career context aggregated",
		zap.Bool("has_profile", c.Profile != nil),
		zap.Int("experiences", len(c.Experiences)),
		zap.Int("skills", len(c.Skills)),
		zap.Int("projects", len(c.Projects)),
		zap.Int("educations", len(c.Educations)),
	)
	return &c, nil
}
