package controllers

import (
	"net/http"

	"github.com/dukapos/pos-terminal/api/middleware"
	"github.com/dukapos/pos-terminal/api/responses"
	"github.com/dukapos/pos-terminal/api/validators"
	"github.com/dukapos/pos-terminal/internal/cart"
	checkoutsvc "github.com/dukapos/pos-terminal/internal/checkout"
	"github.com/dukapos/pos-terminal/internal/sales"
	"github.com/dukapos/pos-terminal/internal/session"
	"github.com/dukapos/pos-terminal/pkg/config"
	"github.com/dukapos/pos-terminal/pkg/enums"
	pkgerrors "github.com/dukapos/pos-terminal/pkg/errors"
	"github.com/dukapos/pos-terminal/pkg/logger"
	"github.com/dukapos/pos-terminal/pkg/money"
)

type paymentRequest struct {
	PaymentMethod  string `json:"payment_method" validate:"required"`
	AmountTendered string `json:"amount_tendered" validate:"required"`
}

// ReceiptView is the committed sale as shown to the cashier.
type ReceiptView struct {
	ID             int64  `json:"id"`
	InvoiceNumber  string `json:"invoice_number"`
	CustomerName   string `json:"customer_name"`
	Subtotal       string `json:"subtotal"`
	DiscountAmount string `json:"discount_amount"`
	TaxAmount      string `json:"tax_amount"`
	Total          string `json:"total"`
	Currency       string `json:"currency"`
	PaymentMethod  string `json:"payment_method"`
	AmountPaid     string `json:"amount_paid"`
	ChangeDue      string `json:"change_due"`
	CreatedAt      string `json:"created_at"`
}

func newReceiptView(r sales.Receipt, currency string) ReceiptView {
	return ReceiptView{
		ID:             r.ID,
		InvoiceNumber:  r.InvoiceNumber,
		CustomerName:   r.CustomerName,
		Subtotal:       money.Format(r.Subtotal),
		DiscountAmount: money.Format(r.DiscountAmount),
		TaxAmount:      money.Format(r.TaxAmount),
		Total:          money.Format(r.Total),
		Currency:       currency,
		PaymentMethod:  string(r.PaymentMethod),
		AmountPaid:     money.Format(r.AmountPaid),
		ChangeDue:      money.Format(r.ChangeDue),
		CreatedAt:      r.CreatedAt,
	}
}

// CheckoutBegin moves the cart into the checkout stage after the
// stock re-check passes.
func CheckoutBegin(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		next, err := sess.Update(cart.BeginCheckout)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(next))
	}
}

// CheckoutBack returns to the building stage with everything intact.
func CheckoutBack(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		next, err := sess.Update(func(c cart.Cart) (cart.Cart, error) {
			return cart.BackToBuilding(c), nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(next))
	}
}

// CheckoutPayment records the payment method and amount tendered.
func CheckoutPayment(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload paymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}
		tendered, err := money.ParseAmount(payload.AmountTendered)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid amount tendered"))
			return
		}

		next, err := sess.Update(func(c cart.Cart) (cart.Cart, error) {
			if c.Stage != cart.StageCheckout {
				return c, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout has not been started")
			}
			return cart.SetPayment(c, method, tendered), nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(next))
	}
}

// CheckoutSubmit finalizes the sale against the store backend. The
// receipt is stamped with the terminal's configured display currency;
// the backend stores bare amounts.
func CheckoutSubmit(svc checkoutsvc.Service, sessions *session.Manager, checkout config.CheckoutConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		sess, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.TokenFromContext(r.Context())
		receipt, err := svc.Submit(r.Context(), token, sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newReceiptView(receipt, checkout.CurrencyCode))
	}
}
