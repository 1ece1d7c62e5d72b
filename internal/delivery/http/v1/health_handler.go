package v1

import (
	"net/http"

	"go-portfolio-site/internal/delivery/http/response"
	"go-portfolio-site/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

// NewHealthHandler registers the health check
func NewHealthHandler(api gin.IRoutes, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	api.GET("/health", handler.Check)
}

// Check godoc
// @Summary      Health Check
// @Description  Reports content and email delivery readiness. Always 200; data.status is "ok" or "degraded".
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.healthUC.Check(c.Request.Context())
	if status["status"] != "ok" {
		response.Success(c, http.StatusOK, "System degraded", status)
		return
	}
	response.Success(c, http.StatusOK, "System operational", status)
}
