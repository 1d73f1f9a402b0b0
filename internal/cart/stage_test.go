package cart

import (
	"strings"
	"testing"

	"github.com/dukapos/pos-terminal/pkg/enums"
	pkgerrors "github.com/dukapos/pos-terminal/pkg/errors"
	"github.com/shopspring/decimal"
)

func TestBeginCheckout(t *testing.T) {
	t.Parallel()

	c := mustAdd(t, New(), snapshot(1, "Soda", "10.00", "16", 5))
	next, err := BeginCheckout(c)
	if err != nil {
		t.Fatalf("BeginCheckout: %v", err)
	}
	if next.Stage != StageCheckout {
		t.Fatalf("expected %s, got %s", StageCheckout, next.Stage)
	}
}

func TestBeginCheckoutEmptyCart(t *testing.T) {
	t.Parallel()

	next, err := BeginCheckout(New())
	if err == nil {
		t.Fatal("expected error for empty cart")
	}
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeCartEmpty {
		t.Fatalf("expected %s, got %s", pkgerrors.CodeCartEmpty, code)
	}
	if next.Stage != StageBuilding {
		t.Fatalf("expected stage unchanged, got %s", next.Stage)
	}
}

func TestBeginCheckoutWithOutOfStockLine(t *testing.T) {
	t.Parallel()

	c := mustAdd(t, New(), snapshot(1, "Soda", "10.00", "16", 5))
	// The snapshot goes stale after a competing sale drains stock.
	c.Lines[0].Product.StockQuantity = 0

	next, err := BeginCheckout(c)
	if err == nil {
		t.Fatal("expected stock issue error")
	}
	typed := pkgerrors.As(err)
	if typed.Code() != pkgerrors.CodeStockIssue {
		t.Fatalf("expected %s, got %s", pkgerrors.CodeStockIssue, typed.Code())
	}
	if !strings.Contains(typed.Message(), "Soda is out of stock") {
		t.Fatalf("expected message naming the product, got %q", typed.Message())
	}
	if next.Stage != StageBuilding {
		t.Fatalf("expected stage unchanged, got %s", next.Stage)
	}
}

func TestBackToBuildingPreservesData(t *testing.T) {
	t.Parallel()

	c := mustAdd(t, New(), snapshot(1, "Soda", "10.00", "16", 5))
	c = SetCustomer(c, "Amina", "loyal customer")
	c = SetPayment(c, enums.PaymentMethodMobile, decimal.NewFromInt(50))
	c, err := BeginCheckout(c)
	if err != nil {
		t.Fatalf("BeginCheckout: %v", err)
	}

	back := BackToBuilding(c)
	if back.Stage != StageBuilding {
		t.Fatalf("expected %s, got %s", StageBuilding, back.Stage)
	}
	if back.IsEmpty() || back.CustomerName != "Amina" || back.Notes != "loyal customer" {
		t.Fatalf("expected data preserved, got %+v", back)
	}
	if back.PaymentMethod != enums.PaymentMethodMobile || !back.AmountTendered.Equal(decimal.NewFromInt(50)) {
		t.Fatal("expected payment details preserved")
	}
}
