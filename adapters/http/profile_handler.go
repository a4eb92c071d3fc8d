package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/career-os/internal/application/usecase/profile"
	"github.com/khoahotran/career-os/internal/domain/profile"
	"github.com/khoahotran/career-os/pkg/apperror"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
}

func NewProfileHandler(uc *profileUC.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if output.Profile == nil {
		_ = c.Error(apperror.NewNotFound(profile.EntityName, "current"))
		return
	}

	c.JSON(http.StatusOK, output.Profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.NewInvalidInput("Invalid JSON body for profile update", err))
		return
	}

	output, err := h.profileUseCase.ExecuteUpdateProfile(c.Request.Context(), profileUC.UpdateProfileInput{
		PersonalInfo:        req.PersonalInfo,
		Positioning:         req.Positioning,
		ValuePropositions:   req.ValuePropositions,
		ProfessionalMission: req.ProfessionalMission,
		UniqueSellingPoints: req.UniqueSellingPoints,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, output.Profile)
}
