package cart

import (
	pkgerrors "github.com/dukapos/pos-terminal/pkg/errors"
)

// Stage identifies the phase of the transaction. Building is where
// lines are edited; Checkout is where payment is captured.
type Stage string

const (
	StageBuilding Stage = "building"
	StageCheckout Stage = "checkout"
)

// BeginCheckout transitions the cart to the Checkout stage. The cart
// must be non-empty and every line must be satisfiable against its
// captured snapshot; otherwise the cart is returned unchanged with an
// error naming every offending line.
func BeginCheckout(c Cart) (Cart, error) {
	if c.IsEmpty() {
		return c, pkgerrors.New(pkgerrors.CodeCartEmpty, "cart is empty")
	}
	if err := ValidateStock(c); err != nil {
		return c, err
	}
	next := c
	next.Stage = StageCheckout
	return next, nil
}

// BackToBuilding returns the cart to the Building stage. Lines,
// customer data, and payment details all survive the transition.
func BackToBuilding(c Cart) Cart {
	next := c
	next.Stage = StageBuilding
	return next
}
