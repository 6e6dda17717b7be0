package handler

import (
	"net/http"

	"woninglabel_backend/internal/leads/intake"
	"woninglabel_backend/internal/leads/transport"
	"woninglabel_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated intake endpoint.
type PublicHandler struct {
	intake *intake.Service
}

func NewPublicHandler(intake *intake.Service) *PublicHandler {
	return &PublicHandler{intake: intake}
}

// RegisterRoutes mounts the intake routes on the rate-limited public group.
func (h *PublicHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/submissions", h.Submit)
}

// Submit handles POST /api/v1/public/submissions
func (h *PublicHandler) Submit(c *gin.Context) {
	var req transport.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	resp, err := h.intake.Submit(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, resp)
}
