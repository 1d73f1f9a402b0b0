// Package session holds the per-cashier transaction state. Each
// cashier gets one live cart; every handler touching it goes through
// the session so concurrent requests from the same terminal serialize
// instead of clobbering each other.
package session

import (
	"sync"

	"github.com/dukapos/pos-terminal/internal/cart"
	pkgerrors "github.com/dukapos/pos-terminal/pkg/errors"
)

// Session owns one cashier's in-progress transaction.
type Session struct {
	mu       sync.Mutex
	cart     cart.Cart
	inFlight bool
}

func newSession() *Session {
	return &Session{cart: cart.New()}
}

// Snapshot returns the current cart by value.
func (s *Session) Snapshot() cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// Update applies one reducer atomically. On error the stored cart is
// untouched and the error is returned as-is.
func (s *Session) Update(fn func(cart.Cart) (cart.Cart, error)) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.cart)
	if err != nil {
		return s.cart, err
	}
	s.cart = next
	return next, nil
}

// BeginSubmit claims the session for one sale submission and returns
// the cart to submit. A second submit while one is in flight fails
// without touching anything.
func (s *Session) BeginSubmit() (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return cart.Cart{}, pkgerrors.New(pkgerrors.CodeSubmitInFlight, "a submit is already in progress")
	}
	s.inFlight = true
	return s.cart, nil
}

// EndSubmit releases the in-flight claim. When the submission
// succeeded the cart resets to the empty Building state; on failure it
// stays exactly as submitted so the cashier can retry or edit.
func (s *Session) EndSubmit(succeeded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if succeeded {
		s.cart = cart.New()
	}
}

// Manager hands out sessions keyed by cashier user id.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewManager builds an empty session registry.
func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Session returns the cashier's session, creating it on first use.
func (m *Manager) Session(cashierID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[cashierID]; ok {
		return s
	}
	s := newSession()
	m.sessions[cashierID] = s
	return s
}

// Drop discards the cashier's session, abandoning any in-progress
// transaction. Used when a cashier logs out of the terminal.
func (m *Manager) Drop(cashierID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, cashierID)
}
