package http

import (
	"github.com/khoahotran/career-os/internal/domain/document"
	"github.com/khoahotran/career-os/internal/domain/profile"
)

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type UpdateProfileRequest struct {
	PersonalInfo        profile.PersonalInfo `json:"personalInfo"`
	Positioning         profile.Positioning  `json:"positioning"`
	ValuePropositions   []string             `json:"valuePropositions"`
	ProfessionalMission string               `json:"professionalMission"`
	UniqueSellingPoints []string             `json:"uniqueSellingPoints"`
}

type GenerateRequest struct {
	JobInfo           document.JobInfo `json:"jobInfo"`
	AdditionalContext string           `json:"additionalContext"`
	Question          string           `json:"question"`
	MaxLength         int              `json:"maxLength"`
}

type ReviseRequest struct {
	JobInfo       document.JobInfo `json:"jobInfo"`
	Question      string           `json:"question"`
	MaxLength     int              `json:"maxLength"`
	Feedback      string           `json:"feedback"`
	CurrentAnswer string           `json:"currentAnswer"`
}
