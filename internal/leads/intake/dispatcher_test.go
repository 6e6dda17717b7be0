package intake

import (
	"context"
	"sync"
	"testing"
	"time"

	addrtransport "woninglabel_backend/internal/address/transport"
	"woninglabel_backend/platform/logger"
)

type stubResolver struct {
	mu    sync.Mutex
	calls []string
}

func (r *stubResolver) Resolve(ctx context.Context, postcode, houseNumber, addition, propertyType string) (*addrtransport.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, postcode+"/"+houseNumber)
	return &addrtransport.Address{Postcode: postcode, HouseNumber: houseNumber, City: "Utrecht", SurfaceArea: 110}, nil
}

func (r *stubResolver) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestFormDispatchesDebouncedLookup(t *testing.T) {
	resolver := &stubResolver{}
	form := NewForm(resolver, 5*time.Millisecond, logger.New("development"))

	form.SetAddressInput(context.Background(), "1234 AB", "10", "")

	waitFor(t, time.Second, func() bool {
		return form.State().Address != nil
	})

	state := form.State()
	if state.Address.City != "Utrecht" {
		t.Errorf("resolved city = %q", state.Address.City)
	}
	if state.LookupPending {
		t.Error("pending flag should clear after resolution")
	}
}

func TestFormEditSupersedesPendingLookup(t *testing.T) {
	resolver := &stubResolver{}
	form := NewForm(resolver, 25*time.Millisecond, logger.New("development"))

	// The second edit lands inside the first debounce window, so only one
	// lookup, for the latest input, goes out.
	form.SetAddressInput(context.Background(), "1234 AB", "10", "")
	form.SetAddressInput(context.Background(), "5678 CD", "22", "")

	waitFor(t, time.Second, func() bool {
		return form.State().Address != nil
	})

	if got := resolver.callCount(); got != 1 {
		t.Fatalf("resolver called %d times, want 1", got)
	}
	if got := form.State().Address.Postcode; got != "5678 CD" {
		t.Errorf("applied postcode = %q, want the latest input", got)
	}
}

func TestFormSkipsLookupForIncompleteInput(t *testing.T) {
	resolver := &stubResolver{}
	form := NewForm(resolver, time.Millisecond, logger.New("development"))

	form.SetAddressInput(context.Background(), "12", "", "")
	form.SetAddressInput(context.Background(), "1234 AB", "", "")

	time.Sleep(20 * time.Millisecond)

	if got := resolver.callCount(); got != 0 {
		t.Fatalf("resolver called %d times for incomplete input", got)
	}
}

func TestFormReset(t *testing.T) {
	resolver := &stubResolver{}
	form := NewForm(resolver, time.Millisecond, logger.New("development"))

	form.SetContact("Jan", "jan@example.nl", "", "")
	if !form.OverrideSurfaceArea(140) {
		t.Fatal("positive override rejected")
	}

	form.Reset()

	state := form.State()
	if state.Name != "" || state.SurfaceAreaOverride != 0 || state.Quote != nil {
		t.Errorf("reset left state behind: %+v", state)
	}
}
