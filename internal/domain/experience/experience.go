package experience

import (
	"context"
	"time"

	"github.com/khoahotran/career-os/internal/domain/calendar"
)

// EntityName labels experiences in errors and events.
const EntityName = "Experience"

type Achievement struct {
	Description string  `json:"description"`
	Metric      *string `json:"metric,omitempty"`
	Impact      *string `json:"impact,omitempty"`
}

type Experience struct {
	ID               string         `json:"id"`
	Company          string         `json:"company" validate:"required"`
	Location         string         `json:"location" validate:"required"`
	Title            string         `json:"title" validate:"required"`
	Industry         *string        `json:"industry,omitempty"`
	StartDate        calendar.Date  `json:"startDate" validate:"required"`
	EndDate          *calendar.Date `json:"endDate,omitempty"`
	RoleTypes        []string       `json:"roleTypes"`
	Responsibilities []string       `json:"responsibilities"`
	Achievements     []Achievement  `json:"achievements"`
	Technologies     []string       `json:"technologies"`
	Featured         bool           `json:"featured"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// Ongoing reports whether the role has no end date.
func (e *Experience) Ongoing() bool {
	return e.EndDate == nil
}

func (e *Experience) Normalize() {
	if e.RoleTypes == nil {
		e.RoleTypes = []string{}
	}
	if e.Responsibilities == nil {
		e.Responsibilities = []string{}
	}
	if e.Achievements == nil {
		e.Achievements = []Achievement{}
	}
	if e.Technologies == nil {
		e.Technologies = []string{}
	}
}

// Patch replaces only the fields that are set.
type Patch struct {
	Company          *string        `json:"company,omitempty" validate:"omitnil,min=1"`
	Location         *string        `json:"location,omitempty" validate:"omitnil,min=1"`
	Title            *string        `json:"title,omitempty" validate:"omitnil,min=1"`
	Industry         *string        `json:"industry,omitempty"`
	StartDate        *calendar.Date `json:"startDate,omitempty"`
	EndDate          *calendar.Date `json:"endDate,omitempty"`
	RoleTypes        *[]string      `json:"roleTypes,omitempty"`
	Responsibilities *[]string      `json:"responsibilities,omitempty"`
	Achievements     *[]Achievement `json:"achievements,omitempty"`
	Technologies     *[]string      `json:"technologies,omitempty"`
	Featured         *bool          `json:"featured,omitempty"`
}

// Filter criteria are combined with AND; nil fields impose no constraint.
type Filter struct {
	Company    *string `form:"company"`
	Title      *string `form:"title"`
	Industry   *string `form:"industry"`
	RoleType   *string `form:"roleType"`
	Technology *string `form:"technology"`
	Featured   *bool   `form:"featured"`
}

type Repository interface {
	List(ctx context.Context, filter Filter) ([]*Experience, error)
	FindByID(ctx context.Context, id string) (*Experience, error)
	Create(ctx context.Context, e *Experience) (*Experience, error)
	Update(ctx context.Context, id string, patch Patch) (*Experience, error)
	Delete(ctx context.Context, id string) (bool, error)
}
