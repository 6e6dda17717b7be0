// Package service provides business logic for address resolution.
package service

import (
	"context"
	"regexp"
	"strings"

	"woninglabel_backend/internal/address/transport"
	"woninglabel_backend/internal/pricing"
	"woninglabel_backend/platform/apperr"
	"woninglabel_backend/platform/logger"
)

// Fallback surface areas used when the registry has no usable figure.
// Conservative per dwelling category so the quoted price errs low.
const (
	estimateAttachedM2 = 120
	estimateDetachedM2 = 160
)

var (
	postcodePattern    = regexp.MustCompile(`^[1-9][0-9]{3}\s?[A-Za-z]{2}$`)
	houseNumberPattern = regexp.MustCompile(`^[0-9]+$`)
)

// Resolver abstracts the registry client so tests can stub it.
type Resolver interface {
	Lookup(ctx context.Context, postcode, houseNumber, addition string) (*transport.Address, error)
}

// Service resolves addresses against the BAG registry.
type Service struct {
	client Resolver
	log    *logger.Logger
}

// New creates a new address service.
func New(client Resolver, log *logger.Logger) *Service {
	return &Service{client: client, log: log}
}

// Resolve turns a postcode and house number into an Address. Input shape is
// validated locally before any upstream call. The propertyType hint only
// influences the fallback surface-area estimate and may be empty.
func (s *Service) Resolve(ctx context.Context, postcode, houseNumber, addition, propertyType string) (*transport.Address, error) {
	postcode = strings.TrimSpace(postcode)
	houseNumber = strings.TrimSpace(houseNumber)

	if !postcodePattern.MatchString(postcode) {
		return nil, apperr.Validation("postcode must be 4 digits followed by 2 letters").WithOp("address.Resolve")
	}
	if !houseNumberPattern.MatchString(houseNumber) {
		return nil, apperr.Validation("house number must be numeric").WithOp("address.Resolve")
	}

	compact := strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))

	addr, err := s.client.Lookup(ctx, compact, houseNumber, strings.TrimSpace(addition))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.log.LookupFailed(compact, houseNumber, err)
		}
		return nil, err
	}

	if addr.SurfaceArea <= 0 {
		addr.SurfaceArea = estimateSurfaceArea(propertyType)
		addr.SurfaceAreaEstimated = true
	}

	return addr, nil
}

// ValidateInput reports whether the postcode and house number have the shape
// required for a registry lookup. Used by the intake flow to decide when a
// lookup may be dispatched.
func ValidateInput(postcode, houseNumber string) bool {
	return postcodePattern.MatchString(strings.TrimSpace(postcode)) &&
		houseNumberPattern.MatchString(strings.TrimSpace(houseNumber))
}

func estimateSurfaceArea(propertyType string) int {
	if pricing.PropertyType(propertyType) == pricing.PropertyDetached {
		return estimateDetachedM2
	}
	return estimateAttachedM2
}
