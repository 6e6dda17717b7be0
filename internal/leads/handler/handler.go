// Package handler exposes the leads HTTP endpoints.
package handler

import (
	"net/http"

	"woninglabel_backend/internal/leads/lifecycle"
	"woninglabel_backend/internal/leads/transport"
	"woninglabel_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler serves the operator console API.
type Handler struct {
	lifecycle *lifecycle.Service
}

func New(lifecycle *lifecycle.Service) *Handler {
	return &Handler{lifecycle: lifecycle}
}

// RegisterRoutes mounts the operator routes on an authenticated group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PATCH("/:id/status", h.UpdateStatus)
	group.PUT("/:id/appointment", h.Schedule)
	group.PUT("/:id/notes", h.UpdateNotes)
	group.DELETE("/:id", h.Delete)
}

// List handles GET /api/v1/leads?status=&limit=&offset=
func (h *Handler) List(c *gin.Context) {
	var query transport.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid list query", nil)
		return
	}

	submissions, total, err := h.lifecycle.List(c.Request.Context(), query)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		items = append(items, transport.FromSubmission(submission))
	}

	httpkit.OK(c, transport.ListResponse{Items: items, Total: total})
}

// Get handles GET /api/v1/leads/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	submission, err := h.lifecycle.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromSubmission(submission))
}

// UpdateStatus handles PATCH /api/v1/leads/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	submission, err := h.lifecycle.UpdateStatus(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromSubmission(submission))
}

// Schedule handles PUT /api/v1/leads/:id/appointment
func (h *Handler) Schedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	submission, err := h.lifecycle.ScheduleAppointment(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromSubmission(submission))
}

// UpdateNotes handles PUT /api/v1/leads/:id/notes
func (h *Handler) UpdateNotes(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	submission, err := h.lifecycle.UpdateNotes(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.FromSubmission(submission))
}

// Delete handles DELETE /api/v1/leads/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.lifecycle.Delete(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid submission id", nil)
		return uuid.Nil, false
	}
	return id, true
}
