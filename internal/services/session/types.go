package session

import (
	"sync"
	"sync/atomic"
	"time"

	creditcard "ccentry/internal/services/credit-card"
	"ccentry/internal/services/entry"
)

// Session is one remote card form.
type Session struct {
	ID        string
	ClientID  string
	CreatedAt time.Time

	mu       sync.Mutex
	form     *entry.Form
	recorder *entry.Recorder

	// lastSeen is read by the registry without s.mu.
	lastSeen atomic.Pointer[time.Time]
}

func (s *Session) touch(t time.Time) {
	s.lastSeen.Store(&t)
}

// LastSeen returns the time of the last operation on the session.
func (s *Session) LastSeen() time.Time {
	if t := s.lastSeen.Load(); t != nil {
		return *t
	}
	return s.CreatedAt
}

// CardSummary describes a valid card without exposing its digits.
type CardSummary struct {
	Brand      string `json:"brand"`
	Masked     string `json:"masked"`
	LastFour   string `json:"last_four"`
	Expiration string `json:"expiration"`
	PostalCode string `json:"postal_code,omitempty"`
}

// View is what a host receives after each operation: the form state plus the
// notifications the operation produced, in emission order.
type View struct {
	ID     string       `json:"id"`
	Config entry.Config `json:"config"`
	entry.Snapshot
	Display   string        `json:"display,omitempty"`
	Events    []entry.Event `json:"events"`
	Card      *CardSummary  `json:"card,omitempty"`
	ExpiresAt time.Time     `json:"expires_at"`
}

func summarize(card creditcard.CreditCard) *CardSummary {
	return &CardSummary{
		Brand:      card.Brand.Code,
		Masked:     card.Masked(),
		LastFour:   card.LastFour(),
		Expiration: card.Expiration.String(),
		PostalCode: card.PostalCode,
	}
}
