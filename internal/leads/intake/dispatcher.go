package intake

import (
	"context"
	"sync"
	"time"

	addrservice "woninglabel_backend/internal/address/service"
	addrtransport "woninglabel_backend/internal/address/transport"
	"woninglabel_backend/internal/pricing"
	"woninglabel_backend/platform/logger"
)

// DefaultDebounce is how long the form waits after the last address edit
// before dispatching a lookup.
const DefaultDebounce = 400 * time.Millisecond

// Resolver resolves a validated postcode + house number to an address.
type Resolver interface {
	Resolve(ctx context.Context, postcode, houseNumber, addition, propertyType string) (*addrtransport.Address, error)
}

// Form owns a FormState and serializes all updates to it. Address edits
// schedule a debounced lookup; results are applied through the reducer so a
// response for superseded input is discarded by its sequence number.
type Form struct {
	mu       sync.Mutex
	state    FormState
	resolver Resolver
	debounce time.Duration
	timer    *time.Timer
	log      *logger.Logger
}

// NewForm creates a form bound to a resolver. The resolver may be nil when
// the registry is not configured; address edits then never dispatch lookups
// and the user enters the surface area manually.
func NewForm(resolver Resolver, debounce time.Duration, log *logger.Logger) *Form {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Form{
		state:    NewFormState(),
		resolver: resolver,
		debounce: debounce,
		log:      log,
	}
}

// State returns a snapshot of the current form state.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SetContact updates the contact fields.
func (f *Form) SetContact(name, email, phone, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = ApplyContact(f.state, name, email, phone, message)
}

// SetAddressInput records an address edit and, when the input has the shape
// of a dispatchable lookup, schedules a debounced resolution. Each edit
// supersedes the previous pending lookup.
func (f *Form) SetAddressInput(ctx context.Context, postcode, houseNumber, addition string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = ApplyAddressInput(f.state, postcode, houseNumber, addition)

	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}

	if f.resolver == nil || !addrservice.ValidateInput(postcode, houseNumber) {
		return
	}

	var seq uint64
	f.state, seq = BeginLookup(f.state)

	f.timer = time.AfterFunc(f.debounce, func() {
		f.dispatch(ctx, seq, postcode, houseNumber, addition)
	})
}

func (f *Form) dispatch(ctx context.Context, seq uint64, postcode, houseNumber, addition string) {
	f.mu.Lock()
	propertyType := string(f.state.PropertyType)
	current := f.state.LookupSeq
	f.mu.Unlock()

	// A newer edit was made while the debounce timer ran.
	if seq != current {
		return
	}

	addr, err := f.resolver.Resolve(ctx, postcode, houseNumber, addition, propertyType)
	if err != nil && f.log != nil {
		f.log.LookupFailed(postcode, houseNumber, err)
	}

	f.mu.Lock()
	f.state = ApplyLookupResult(f.state, seq, addr, err)
	f.mu.Unlock()
}

// SetPropertyType switches the dwelling category.
func (f *Form) SetPropertyType(propertyType pricing.PropertyType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = ApplyPropertyType(f.state, propertyType)
}

// SetRushService toggles the rush add-on.
func (f *Form) SetRushService(rush bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = ApplyRushService(f.state, rush)
}

// OverrideSurfaceArea applies a manual surface area. Returns false when the
// value is not a positive integer.
func (f *Form) OverrideSurfaceArea(area int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	next, ok := ApplySurfaceAreaOverride(f.state, area)
	f.state = next
	return ok
}

// Reset clears the form after a confirmed submission.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.state = NewFormState()
}
