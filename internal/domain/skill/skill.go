package skill

import (
	"context"
	"time"
)

const EntityName = "Skill"

type Skill struct {
	ID                string    `json:"id"`
	Name              string    `json:"name" validate:"required"`
	RoleRelevance     string    `json:"roleRelevance" validate:"required"`
	Level             string    `json:"level" validate:"required"`
	Rating            float64   `json:"rating" validate:"gte=0,lte=10"`
	YearsOfExperience float64   `json:"yearsOfExperience" validate:"gte=0"`
	Tags              []string  `json:"tags"`
	Keywords          []string  `json:"keywords"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (s *Skill) Normalize() {
	if s.Tags == nil {
		s.Tags = []string{}
	}
	if s.Keywords == nil {
		s.Keywords = []string{}
	}
}

type Patch struct {
	Name              *string   `json:"name,omitempty" validate:"omitnil,min=1"`
	RoleRelevance     *string   `json:"roleRelevance,omitempty" validate:"omitnil,min=1"`
	Level             *string   `json:"level,omitempty" validate:"omitnil,min=1"`
	Rating            *float64  `json:"rating,omitempty" validate:"omitnil,gte=0,lte=10"`
	YearsOfExperience *float64  `json:"yearsOfExperience,omitempty" validate:"omitnil,gte=0"`
	Tags              *[]string `json:"tags,omitempty"`
	Keywords          *[]string `json:"keywords,omitempty"`
}

type Filter struct {
	Name          *string `form:"name"`
	RoleRelevance *string `form:"roleRelevance"`
	Level         *string `form:"level"`
	Tag           *string `form:"tag"`
	Keyword       *string `form:"keyword"`
}

type Repository interface {
	List(ctx context.Context, filter Filter) ([]*Skill, error)
	FindByID(ctx context.Context, id string) (*Skill, error)
	Create(ctx context.Context, s *Skill) (*Skill, error)
	Update(ctx context.Context, id string, patch Patch) (*Skill, error)
	Delete(ctx context.Context, id string) (bool, error)
}
