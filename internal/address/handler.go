package address

import (
	"net/http"

	"woninglabel_backend/internal/address/service"
	"woninglabel_backend/internal/address/transport"
	"woninglabel_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the public address lookup endpoint.
type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Lookup handles GET /api/v1/public/address?postcode=&houseNumber=&addition=
func (h *Handler) Lookup(c *gin.Context) {
	var req transport.LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "postcode and houseNumber are required", nil)
		return
	}

	addr, err := h.svc.Resolve(c.Request.Context(), req.Postcode, req.HouseNumber, req.Addition, req.PropertyType)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, addr)
}
