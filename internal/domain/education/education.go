package education

import (
	"context"
	"time"
)

const EntityName = "Education"

type Education struct {
	ID                 string    `json:"id"`
	Institution        string    `json:"institution" validate:"required"`
	Degree             string    `json:"degree" validate:"required"`
	Field              string    `json:"field" validate:"required"`
	GraduationYear     int       `json:"graduationYear" validate:"required"`
	RelevantCoursework []string  `json:"relevantCoursework"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (e *Education) Normalize() {
	if e.RelevantCoursework == nil {
		e.RelevantCoursework = []string{}
	}
}

type Patch struct {
	Institution        *string   `json:"institution,omitempty" validate:"omitnil,min=1"`
	Degree             *string   `json:"degree,omitempty" validate:"omitnil,min=1"`
	Field              *string   `json:"field,omitempty" validate:"omitnil,min=1"`
	GraduationYear     *int      `json:"graduationYear,omitempty" validate:"omitnil,gt=0"`
	RelevantCoursework *[]string `json:"relevantCoursework,omitempty"`
}

type Filter struct {
	Institution *string `form:"institution"`
	Degree      *string `form:"degree"`
	Field       *string `form:"field"`
}

type Repository interface {
	List(ctx context.Context, filter Filter) ([]*Education, error)
	FindByID(ctx context.Context, id string) (*Education, error)
	Create(ctx context.Context, e *Education) (*Education, error)
	Update(ctx context.Context, id string, patch Patch) (*Education, error)
	Delete(ctx context.Context, id string) (bool, error)
}
