package project

import (
	"context"
	"time"

	"github.com/khoahotran/career-os/internal/domain/calendar"
)

const EntityName = "Project"

type Project struct {
	ID           string         `json:"id"`
	Name         string         `json:"name" validate:"required"`
	Type         string         `json:"type" validate:"required"`
	Date         *calendar.Date `json:"date,omitempty"`
	Featured     bool           `json:"featured"`
	Overview     string         `json:"overview" validate:"required"`
	Challenge    *string        `json:"challenge,omitempty"`
	Approach     *string        `json:"approach,omitempty"`
	Outcome      *string        `json:"outcome,omitempty"`
	Impact       *string        `json:"impact,omitempty"`
	Technologies []string       `json:"technologies"`
	Keywords     []string       `json:"keywords"`
	RoleTypes    []string       `json:"roleTypes"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (p *Project) Normalize() {
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	if p.Keywords == nil {
		p.Keywords = []string{}
	}
	if p.RoleTypes == nil {
		p.RoleTypes = []string{}
	}
}

type Patch struct {
	Name         *string        `json:"name,omitempty" validate:"omitnil,min=1"`
	Type         *string        `json:"type,omitempty" validate:"omitnil,min=1"`
	Date         *calendar.Date `json:"date,omitempty"`
	Featured     *bool          `json:"featured,omitempty"`
	Overview     *string        `json:"overview,omitempty" validate:"omitnil,min=1"`
	Challenge    *string        `json:"challenge,omitempty"`
	Approach     *string        `json:"approach,omitempty"`
	Outcome      *string        `json:"outcome,omitempty"`
	Impact       *string        `json:"impact,omitempty"`
	Technologies *[]string      `json:"technologies,omitempty"`
	Keywords     *[]string      `json:"keywords,omitempty"`
	RoleTypes    *[]string      `json:"roleTypes,omitempty"`
}

type Filter struct {
	Name       *string `form:"name"`
	Type       *string `form:"type"`
	Technology *string `form:"technology"`
	Keyword    *string `form:"keyword"`
	RoleType   *string `form:"roleType"`
	Featured   *bool   `form:"featured"`
}

type Repository interface {
	List(ctx context.Context, filter Filter) ([]*Project, error)
	FindByID(ctx context.Context, id string) (*Project, error)
	Create(ctx context.Context, p *Project) (*Project, error)
	Update(ctx context.Context, id string, patch Patch) (*Project, error)
	Delete(ctx context.Context, id string) (bool, error)
}
