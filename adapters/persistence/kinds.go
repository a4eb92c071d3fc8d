package persistence

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/khoahotran/career-os/internal/domain/education"
	"github.com/khoahotran/career-os/internal/domain/experience"
	"github.com/khoahotran/career-os/internal/domain/project"
	"github.com/khoahotran/career-os/internal/domain/skill"
	"github.com/khoahotran/career-os/pkg/logger"
)

const (
	TableProfiles    = "profiles"
	TableExperiences = "experiences"
	TableSkills      = "skills"
	TableProjects    = "projects"
	TableEducations  = "educations"
)

var experienceKind = kind[experience.Experience, experience.Filter]{
	table:   TableExperiences,
	entity:  experience.EntityName,
	orderBy: []string{"(data->>'startDate')::timestamptz DESC", "created_at DESC"},
	filter: func(f experience.Filter) sq.Sqlizer {
		return conditions(
			containsText("company", f.Company),
			containsText("title", f.Title),
			containsText("industry", f.Industry),
			hasTag("roleTypes", f.RoleType),
			hasTag("technologies", f.Technology),
			boolEquals("featured", f.Featured),
		)
	},
	normalize: (*experience.Experience).Normalize,
}

var skillKind = kind[skill.Skill, skill.Filter]{
	table:   TableSkills,
	entity:  skill.EntityName,
	orderBy: []string{"lower(data->>'name') ASC", "created_at ASC"},
	filter: func(f skill.Filter) sq.Sqlizer {
		return conditions(
			containsText("name", f.Name),
			containsText("roleRelevance", f.RoleRelevance),
			containsText("level", f.Level),
			hasTag("tags", f.Tag),
			hasTag("keywords", f.Keyword),
		)
	},
	normalize: (*skill.Skill).Normalize,
}

var projectKind = kind[project.Project, project.Filter]{
	table:   TableProjects,
	entity:  project.EntityName,
	orderBy: []string{"(data->>'date')::timestamptz DESC NULLS LAST", "created_at DESC"},
	filter: func(f project.Filter) sq.Sqlizer {
		return conditions(
			containsText("name", f.Name),
			containsText("type", f.Type),
			hasTag("technologies", f.Technology),
			hasTag("keywords", f.Keyword),
			hasTag("roleTypes", f.RoleType),
			boolEquals("featured", f.Featured),
		)
	},
	normalize: (*project.Project).Normalize,
}

var educationKind = kind[education.Education, education.Filter]{
	table:   TableEducations,
	entity:  education.EntityName,
	orderBy: []string{"(data->>'graduationYear')::int DESC", "created_at DESC"},
	filter: func(f education.Filter) sq.Sqlizer {
		return conditions(
			containsText("institution", f.Institution),
			containsText("degree", f.Degree),
			containsText("field", f.Field),
		)
	},
	normalize: (*education.Education).Normalize,
}

func NewPostgresExperienceRepo(source DBSource, log logger.Logger) experience.Repository {
	return newCollection[experience.Experience, experience.Filter, experience.Patch](experienceKind, source, log)
}

func NewPostgresSkillRepo(source DBSource, log logger.Logger) skill.Repository {
	return newCollection[skill.Skill, skill.Filter, skill.Patch](skillKind, source, log)
}

func NewPostgresProjectRepo(source DBSource, log logger.Logger) project.Repository {
	return newCollection[project.Project, project.Filter, project.Patch](projectKind, source, log)
}

func NewPostgresEducationRepo(source DBSource, log logger.Logger) education.Repository {
	return newCollection[education.Education, education.Filter, education.Patch](educationKind, source, log)
}

// conditions ANDs the supplied criteria, skipping unset ones.
func conditions(parts ...sq.Sqlizer) sq.And {
	and := sq.And{}
	for _, p := range parts {
		if p != nil {
			and = append(and, p)
		}
	}
	return and
}

// containsText is a case-insensitive substring match on a string field.
func containsText(field string, v *string) sq.Sqlizer {
	if v == nil || *v == "" {
		return nil
	}
	return sq.ILike{fmt.Sprintf("data->>'%s'", field): "%" + escapeLike(*v) + "%"}
}

// hasTag is an exact membership test on a string array field.
func hasTag(field string, v *string) sq.Sqlizer {
	if v == nil || *v == "" {
		return nil
	}
	return sq.Expr(fmt.Sprintf("data->'%s' @> jsonb_build_array(?::text)", field), *v)
}

func boolEquals(field string, v *bool) sq.Sqlizer {
	if v == nil {
		return nil
	}
	return sq.Expr(fmt.Sprintf("COALESCE((data->>'%s')::boolean, false) = ?", field), *v)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
