package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/career-os/internal/application/usecase/generation"
	"github.com/khoahotran/career-os/internal/domain/document"
	"github.com/khoahotran/career-os/pkg/apperror"
)

type GenerationHandler struct {
	useCase *generation.UseCase
}

func NewGenerationHandler(uc *generation.UseCase) *GenerationHandler {
	return &GenerationHandler{useCase: uc}
}

func kindParam(c *gin.Context) (document.Kind, error) {
	raw := c.Param("kind")
	kind, ok := document.ParseKind(raw)
	if !ok {
		return "", apperror.NewValidation(fmt.Sprintf("Unsupported document kind '%s'", raw), "kind")
	}
	return kind, nil
}

func (h *GenerationHandler) Generate(c *gin.Context) {
	kind, err := kindParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.NewInvalidInput("Invalid JSON body for generation", err))
		return
	}

	result, err := h.useCase.Generate(c.Request.Context(), generation.GenerateInput{
		Kind:              kind,
		Job:               req.JobInfo,
		AdditionalContext: req.AdditionalContext,
		Question:          req.Question,
		MaxLength:         req.MaxLength,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *GenerationHandler) Revise(c *gin.Context) {
	kind, err := kindParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req ReviseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.NewInvalidInput("Invalid JSON body for revision", err))
		return
	}

	result, err := h.useCase.Revise(c.Request.Context(), generation.ReviseInput{
		Kind:          kind,
		Job:           req.JobInfo,
		Question:      req.Question,
		MaxLength:     req.MaxLength,
		Feedback:      req.Feedback,
		CurrentAnswer: req.CurrentAnswer,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}
