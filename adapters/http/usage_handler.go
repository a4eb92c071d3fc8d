package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/career-os/internal/application/usecase/usage"
)

type UsageHandler struct {
	reportUseCase *usage.ReportUseCase
}

func NewUsageHandler(uc *usage.ReportUseCase) *UsageHandler {
	return &UsageHandler{reportUseCase: uc}
}

func (h *UsageHandler) GetUsage(c *gin.Context) {
	output, err := h.reportUseCase.Execute(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}
