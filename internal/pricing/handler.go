package pricing

import (
	"net/http"
	"strings"

	"woninglabel_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// QuoteRequest is the live-quote payload the funnel posts on every input
// change.
type QuoteRequest struct {
	PropertyType string `json:"propertyType" binding:"required"`
	SurfaceArea  int    `json:"surfaceArea"`
	RushService  bool   `json:"rushService"`
}

// Handler exposes the public quote endpoint.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Quote handles POST /api/v1/public/quote
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "propertyType is required", nil)
		return
	}

	quote, err := Calculate(PropertyType(strings.ToLower(req.PropertyType)), req.SurfaceArea, req.RushService)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, quote)
}
