package profile

import (
	"context"
	"time"
)

const EntityName = "Profile"

type PersonalInfo struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	GitHub   *string `json:"github,omitempty"`
	Website  *string `json:"website,omitempty"`
}

type Positioning struct {
	Headline         string   `json:"headline" validate:"required"`
	Summary          string   `json:"summary" validate:"required"`
	TargetRoles      []string `json:"targetRoles" validate:"required,min=1"`
	TargetIndustries []string `json:"targetIndustries" validate:"required,min=1"`
}

// Profile is the single owner's identity and positioning. At most one exists.
type Profile struct {
	ID                  string       `json:"id"`
	PersonalInfo        PersonalInfo `json:"personalInfo"`
	Positioning         Positioning  `json:"positioning"`
	ValuePropositions   []string     `json:"valuePropositions"`
	ProfessionalMission string       `json:"professionalMission"`
	UniqueSellingPoints []string     `json:"uniqueSellingPoints"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

func (p *Profile) Normalize() {
	if p.Positioning.TargetRoles == nil {
		p.Positioning.TargetRoles = []string{}
	}
	if p.Positioning.TargetIndustries == nil {
		p.Positioning.TargetIndustries = []string{}
	}
	if p.ValuePropositions == nil {
		p.ValuePropositions = []string{}
	}
	if p.UniqueSellingPoints == nil {
		p.UniqueSellingPoints = []string{}
	}
}

type Repository interface {
	// Get returns nil without error when no profile has been stored yet.
	Get(ctx context.Context) (*Profile, error)
	// Upsert atomically creates the profile or replaces every non-identifier field.
	Upsert(ctx context.Context, p *Profile) (*Profile, error)
}
