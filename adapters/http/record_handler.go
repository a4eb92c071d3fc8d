package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/career-os/internal/application/usecase/record"
	"github.com/khoahotran/career-os/pkg/apperror"
)

// RecordHandler exposes one record kind's CRUD routes.
type RecordHandler[T any, F any, P any] struct {
	useCase *record.UseCase[T, F, P]
}

func NewRecordHandler[T any, F any, P any](uc *record.UseCase[T, F, P]) *RecordHandler[T, F, P] {
	return &RecordHandler[T, F, P]{useCase: uc}
}

func (h *RecordHandler[T, F, P]) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

func (h *RecordHandler[T, F, P]) List(c *gin.Context) {
	var filter F
	if err := c.ShouldBindQuery(&filter); err != nil {
		_ = c.Error(apperror.NewInvalidInput("Invalid "+h.useCase.Entity()+" filter", err))
		return
	}

	items, err := h.useCase.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *RecordHandler[T, F, P]) Get(c *gin.Context) {
	item, err := h.useCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *RecordHandler[T, F, P]) Create(c *gin.Context) {
	var rec T
	if err := c.ShouldBindJSON(&rec); err != nil {
		_ = c.Error(apperror.NewInvalidInput("Invalid JSON body for "+h.useCase.Entity(), err))
		return
	}

	created, err := h.useCase.Create(c.Request.Context(), &rec)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RecordHandler[T, F, P]) Update(c *gin.Context) {
	var patch P
	if err := c.ShouldBindJSON(&patch); err != nil {
		_ = c.Error(apperror.NewInvalidInput("Invalid JSON body for "+h.useCase.Entity()+" update", err))
		return
	}

	updated, err := h.useCase.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecordHandler[T, F, P]) Delete(c *gin.Context) {
	output, err := h.useCase.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}
