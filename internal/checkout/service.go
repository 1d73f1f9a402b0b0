package checkout

import (
	"context"
	"fmt"

	"github.com/dukapos/pos-terminal/internal/cart"
	"github.com/dukapos/pos-terminal/internal/sales"
	"github.com/dukapos/pos-terminal/internal/session"
	"github.com/dukapos/pos-terminal/pkg/config"
	"github.com/dukapos/pos-terminal/pkg/enums"
	pkgerrors "github.com/dukapos/pos-terminal/pkg/errors"
	"github.com/dukapos/pos-terminal/pkg/logger"
	"github.com/dukapos/pos-terminal/pkg/metrics"
	"github.com/dukapos/pos-terminal/pkg/money"
)

type submitter interface {
	Submit(ctx context.Context, token string, req sales.TransactionRequest) (sales.Receipt, error)
}

// Service finalizes a checkout-stage cart into a committed sale.
type Service interface {
	Submit(ctx context.Context, token string, sess *session.Session) (sales.Receipt, error)
}

type service struct {
	sales   submitter
	logg    *logger.Logger
	metrics *metrics.EngineMetrics
	cfg     config.CheckoutConfig
}

// NewService builds the checkout service.
func NewService(s submitter, logg *logger.Logger, m *metrics.EngineMetrics, cfg config.CheckoutConfig) (Service, error) {
	if s == nil {
		return nil, fmt.Errorf("sales client required")
	}
	return &service{sales: s, logg: logg, metrics: m, cfg: cfg}, nil
}

// Submit claims the session, re-checks every checkout precondition
// against the cart as claimed, and posts the sale. Success resets the
// session to an empty cart; any failure releases the claim with the
// cart exactly as it was, so the cashier can fix and retry.
func (s *service) Submit(ctx context.Context, token string, sess *session.Session) (sales.Receipt, error) {
	claimed, err := sess.BeginSubmit()
	if err != nil {
		s.metrics.IncSubmit("in_flight")
		return sales.Receipt{}, err
	}

	if err := s.validate(claimed); err != nil {
		sess.EndSubmit(false)
		s.metrics.IncSubmit("rejected")
		return sales.Receipt{}, err
	}

	receipt, err := s.sales.Submit(ctx, token, BuildTransaction(claimed))
	if err != nil {
		sess.EndSubmit(false)
		s.metrics.IncSubmit("failed")
		if s.logg != nil {
			ctx = s.logg.WithField(ctx, "error", err.Error())
			s.logg.Warn(ctx, "sale submission failed")
		}
		return sales.Receipt{}, err
	}

	sess.EndSubmit(true)
	s.metrics.IncSubmit("ok")
	if s.logg != nil {
		ctx = s.logg.WithField(ctx, "invoice_number", receipt.InvoiceNumber)
		s.logg.Info(ctx, "sale committed")
	}
	return receipt, nil
}

func (s *service) validate(c cart.Cart) error {
	if c.Stage != cart.StageCheckout {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout has not been started")
	}
	if c.IsEmpty() {
		return pkgerrors.New(pkgerrors.CodeCartEmpty, "cart is empty")
	}
	if err := cart.ValidateStock(c); err != nil {
		return err
	}
	if c.PaymentMethod == enums.PaymentMethodCard && !s.cfg.CardEnabled {
		return pkgerrors.New(pkgerrors.CodeValidation, "card payments are disabled on this terminal")
	}

	totals := cart.ComputeTotals(c)
	if !totals.CoversTotal() {
		return pkgerrors.New(pkgerrors.CodeInsufficientPayment,
			fmt.Sprintf("amount tendered %s does not cover total %s", money.Format(c.AmountTendered), money.Format(totals.Total))).
			WithDetails(map[string]any{
				"total":    money.Format(totals.Total),
				"tendered": money.Format(c.AmountTendered),
			})
	}
	return nil
}

// BuildTransaction maps the cart into the backend's sale payload. Only
// ids, quantities, and discounts travel; the backend recomputes every
// amount from its own product records.
func BuildTransaction(c cart.Cart) sales.TransactionRequest {
	items := make([]sales.TransactionItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, sales.TransactionItem{
			ProductID:       line.Product.ID,
			Quantity:        line.Quantity,
			DiscountPercent: line.DiscountPercent,
		})
	}
	return sales.TransactionRequest{
		CustomerName:  c.CustomerName,
		Items:         items,
		PaymentMethod: c.PaymentMethod,
		AmountPaid:    c.AmountTendered,
		Notes:         c.Notes,
	}
}
