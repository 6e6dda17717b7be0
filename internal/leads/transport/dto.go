// Package transport defines request and response shapes for the leads API.
package transport

import (
	"time"

	"woninglabel_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// SubmitRequest is the public intake payload.
type SubmitRequest struct {
	Name                string `json:"name" validate:"required,min=2,max=120"`
	Email               string `json:"email" validate:"required,email,max=254"`
	Phone               string `json:"phone" validate:"omitempty,max=32"`
	Address             string `json:"address" validate:"omitempty,max=300"`
	Postcode            string `json:"postcode" validate:"omitempty,max=7"`
	HouseNumber         string `json:"houseNumber" validate:"omitempty,max=10"`
	HouseNumberAddition string `json:"houseNumberAddition" validate:"omitempty,max=10"`
	PropertyType        string `json:"propertyType" validate:"required,max=20"`
	SurfaceArea         int    `json:"surfaceArea" validate:"required"`
	RushService         bool   `json:"rushService"`
	Message             string `json:"message" validate:"omitempty,max=2000"`
}

// SubmitResponse confirms a stored submission to the customer.
type SubmitResponse struct {
	ID              uuid.UUID `json:"id"`
	Status          string    `json:"status"`
	CalculatedPrice int       `json:"calculatedPrice"`
}

// UpdateStatusRequest is the operator lifecycle update payload. Appointment
// fields ride along because scheduling and status form one update.
type UpdateStatusRequest struct {
	Status          string `json:"status" validate:"required,max=20"`
	AppointmentDate string `json:"appointmentDate" validate:"omitempty,datetime=2006-01-02"`
	AppointmentTime string `json:"appointmentTime" validate:"omitempty,datetime=15:04"`
}

// ScheduleRequest sets the appointment on a lead.
type ScheduleRequest struct {
	AppointmentDate string `json:"appointmentDate" validate:"required,datetime=2006-01-02"`
	AppointmentTime string `json:"appointmentTime" validate:"required,datetime=15:04"`
}

// NotesRequest overwrites the operator notes.
type NotesRequest struct {
	Notes string `json:"notes" validate:"max=5000"`
}

// ListQuery binds the admin list filters.
type ListQuery struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// SubmissionResponse is the operator-facing representation of a lead.
type SubmissionResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               *string   `json:"phone,omitempty"`
	Address             string    `json:"address"`
	PropertyType        string    `json:"propertyType"`
	SurfaceArea         int       `json:"surfaceArea"`
	RushService         bool      `json:"rushService"`
	Message             *string   `json:"message,omitempty"`
	CalculatedPrice     int       `json:"calculatedPrice"`
	Postcode            *string   `json:"postcode,omitempty"`
	HouseNumber         *string   `json:"houseNumber,omitempty"`
	HouseNumberAddition *string   `json:"houseNumberAddition,omitempty"`
	Status              string    `json:"status"`
	AppointmentDate     *string   `json:"appointmentDate,omitempty"`
	AppointmentTime     *string   `json:"appointmentTime,omitempty"`
	Notes               *string   `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ListResponse wraps a page of submissions.
type ListResponse struct {
	Items []SubmissionResponse `json:"items"`
	Total int                  `json:"total"`
}

// FromSubmission maps a stored submission to its API shape.
func FromSubmission(s repository.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:                  s.ID,
		Name:                s.Name,
		Email:               s.Email,
		Phone:               s.Phone,
		Address:             s.Address,
		PropertyType:        s.PropertyType,
		SurfaceArea:         s.SurfaceArea,
		RushService:         s.RushService,
		Message:             s.Message,
		CalculatedPrice:     s.CalculatedPrice,
		Postcode:            s.Postcode,
		HouseNumber:         s.HouseNumber,
		HouseNumberAddition: s.HouseNumberAddition,
		Status:              string(s.Status),
		AppointmentDate:     s.AppointmentDate,
		AppointmentTime:     s.AppointmentTime,
		Notes:               s.Notes,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}
