package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dukapos/pos-terminal/api/middleware"
	"github.com/dukapos/pos-terminal/api/responses"
	"github.com/dukapos/pos-terminal/api/validators"
	"github.com/dukapos/pos-terminal/internal/cart"
	"github.com/dukapos/pos-terminal/internal/catalog"
	"github.com/dukapos/pos-terminal/internal/session"
	pkgerrors "github.com/dukapos/pos-terminal/pkg/errors"
	"github.com/dukapos/pos-terminal/pkg/logger"
	"github.com/dukapos/pos-terminal/pkg/money"
)

type productPayload struct {
	ID            int64  `json:"id" validate:"required,min=1"`
	Name          string `json:"name" validate:"required,max=255"`
	SKU           string `json:"sku" validate:"max=64"`
	Barcode       string `json:"barcode" validate:"max=64"`
	Price         string `json:"price" validate:"required"`
	TaxRate       string `json:"tax_rate"`
	StockQuantity int    `json:"stock_quantity" validate:"min=0"`
	IsActive      bool   `json:"is_active"`
}

type addLineRequest struct {
	Product productPayload `json:"product"`
}

type updateLineRequest struct {
	Quantity        *int    `json:"quantity"`
	DiscountPercent *string `json:"discount_percent"`
}

type customerRequest struct {
	CustomerName string `json:"customer_name" validate:"max=255"`
	Notes        string `json:"notes" validate:"max=2000"`
}

func (p productPayload) toSnapshot() (catalog.ProductSnapshot, error) {
	price, err := money.ParseAmount(p.Price)
	if err != nil {
		return catalog.ProductSnapshot{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product price")
	}
	return catalog.ProductSnapshot{
		ID:             p.ID,
		Name:           p.Name,
		SKU:            p.SKU,
		Barcode:        p.Barcode,
		UnitPrice:      price,
		TaxRatePercent: money.CoercePercent(p.TaxRate),
		StockQuantity:  p.StockQuantity,
		IsActive:       p.IsActive,
	}, nil
}

func sessionFor(r *http.Request, sessions *session.Manager) (*session.Session, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing cashier identity")
	}
	return sessions.Session(userID), nil
}

// CartFetch returns the cashier's current transaction view.
func CartFetch(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(sess.Snapshot()))
	}
}

// CartClear abandons the transaction and starts an empty one.
func CartClear(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		next, err := sess.Update(func(c cart.Cart) (cart.Cart, error) {
			return cart.Clear(c), nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(next))
	}
}

// CartAddLine adds one unit of the posted product snapshot.
func CartAddLine(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := payload.Product.toSnapshot()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !snapshot.IsActive {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product is not active"))
			return
		}

		next, err := sess.Update(func(c cart.Cart) (cart.Cart, error) {
			if c.Stage != cart.StageBuilding {
				return c, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is in checkout")
			}
			return cart.AddLine(c, snapshot)
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(next))
	}
}

// CartUpdateLine changes a line's quantity, discount, or both.
func CartUpdateLine(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParsePathID(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity == nil && payload.DiscountPercent == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "quantity or discount_percent required"))
			return
		}

		next, err := sess.Update(func(c cart.Cart) (cart.Cart, error) {
			if c.Stage != cart.StageBuilding {
				return c, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is in checkout")
			}
			if _, ok := c.Line(productID); !ok {
				return c, pkgerrors.New(pkgerrors.CodeNotFound, "line not found")
			}
			if payload.Quantity != nil {
				var err error
				if c, err = cart.UpdateQuantity(c, productID, *payload.Quantity); err != nil {
					return c, err
				}
			}
			if payload.DiscountPercent != nil {
				c = cart.UpdateDiscount(c, productID, money.CoercePercent(*payload.DiscountPercent))
			}
			return c, nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(next))
	}
}

// CartRemoveLine deletes a line. Removing an absent line succeeds.
func CartRemoveLine(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParsePathID(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		next, err := sess.Update(func(c cart.Cart) (cart.Cart, error) {
			if c.Stage != cart.StageBuilding {
				return c, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is in checkout")
			}
			return cart.RemoveLine(c, productID), nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(next))
	}
}

// CartSetCustomer records optional customer details on the transaction.
func CartSetCustomer(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload customerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		next, err := sess.Update(func(c cart.Cart) (cart.Cart, error) {
			return cart.SetCustomer(c, payload.CustomerName, payload.Notes), nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(next))
	}
}
