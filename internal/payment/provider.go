package payment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"kvtogether/internal/domain"
)

// Outcome is the provider-specific result of opening a payment for a
// donation: exactly one of Instructions (manual bank transfer) or
// RedirectURL (hosted checkout) is set.
type Outcome struct {
	Instructions *domain.PaymentInstruction
	RedirectURL  string
}

// Request carries the inputs a provider needs to open a payment.
type Request struct {
	Campaign *domain.Campaign
	Donation *domain.Donation
	ClientIP string
}

// Provider opens a payment for an accepted donation.
type Provider interface {
	Begin(ctx context.Context, req Request) (*Outcome, error)
}

// Registry maps payment methods to their providers.
type Registry struct {
	providers map[domain.PaymentMethod]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[domain.PaymentMethod]Provider)}
}

func (r *Registry) Register(method domain.PaymentMethod, p Provider) {
	r.providers[method] = p
}

// ForMethod returns the provider for a method, or ErrUnsupportedMethod.
func (r *Registry) ForMethod(method domain.PaymentMethod) (Provider, error) {
	p, ok := r.providers[method]
	if !ok {
		return nil, domain.ErrUnsupportedMethod
	}
	return p, nil
}

// NewReferenceCode mints a short, human-typable donation reference. It is the
// value a supporter copies into the transfer note, so it stays upper-case
// alphanumeric.
func NewReferenceCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "KVT" + strings.ToUpper(raw[:9])
}
