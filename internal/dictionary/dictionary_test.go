package dictionary

import (
	"testing"

	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/slug"
)

func TestCategories(t *testing.T) {
	if !IsReserved(ledger.CategoryInvoicePayment) || !IsReserved(ledger.CategoryTransfer) || IsReserved("Lazer") {
		t.Fatalf("reserved flags wrong")
	}
	income := ledger.TypeIncome
	if got := CategoriesFor(&income); len(got) != 2 || got[0].Label != "Salário" || got[0].Code != "salario" {
		t.Fatalf("income categories %+v", got)
	}
	all := CategoriesFor(nil)
	if len(all) != 11 {
		t.Fatalf("expected 11 categories, got %d", len(all))
	}
	for _, c := range all {
		if !slug.IsSlug(c.Code) {
			t.Errorf("category %q has invalid code %q", c.Label, c.Code)
		}
	}
}

func TestWidgets(t *testing.T) {
	order := DefaultWidgetOrder()
	if len(order) != 5 || order[0] != "minhas-contas" || order[4] != "faturas" {
		t.Fatalf("default order %v", order)
	}
	for _, id := range order {
		if !slug.IsSlug(id) || !IsWidget(id) {
			t.Errorf("widget %q invalid", id)
		}
	}
	if IsWidget("saldo") {
		t.Fatalf("unknown widget accepted")
	}
}
