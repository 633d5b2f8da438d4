package dictionary

import (
	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/slug"
)

// CategoryDef is a curated transaction category. Reserved categories are
// written only by the ledger itself (invoice payments, goal contributions,
// transfers).
type CategoryDef struct {
	Code     string                 `json:"code"`
	Label    string                 `json:"label"`
	Type     ledger.TransactionType `json:"type"`
	Reserved bool                   `json:"reserved"`
}

func def(t ledger.TransactionType, label string, reserved bool) CategoryDef {
	return CategoryDef{Code: slug.Slugify(label), Label: label, Type: t, Reserved: reserved}
}

var curated = map[ledger.TransactionType][]CategoryDef{
	ledger.TypeExpense: {
		def(ledger.TypeExpense, "Alimentação", false),
		def(ledger.TypeExpense, "Moradia", false),
		def(ledger.TypeExpense, "Transporte", false),
		def(ledger.TypeExpense, "Lazer", false),
		def(ledger.TypeExpense, "Saúde", false),
		def(ledger.TypeExpense, ledger.CategoryOther, false),
		def(ledger.TypeExpense, ledger.CategoryInvoicePayment, true),
		def(ledger.TypeExpense, ledger.CategoryInvestment, true),
	},
	ledger.TypeIncome: {
		def(ledger.TypeIncome, "Salário", false),
		def(ledger.TypeIncome, ledger.CategoryOther, false),
	},
	ledger.TypeTransfer: {
		def(ledger.TypeTransfer, ledger.CategoryTransfer, true),
	},
}

// Types lists the transaction types in display order.
var Types = []ledger.TransactionType{ledger.TypeExpense, ledger.TypeIncome, ledger.TypeTransfer}

// IsReserved reports whether label is a ledger-written category.
func IsReserved(label string) bool {
	for _, list := range curated {
		for _, c := range list {
			if c.Label == label && c.Reserved {
				return true
			}
		}
	}
	return false
}

// CategoriesFor returns the curated categories of t, or of every type when t is nil.
func CategoriesFor(t *ledger.TransactionType) []CategoryDef {
	if t == nil { // all types
		out := make([]CategoryDef, 0)
		for _, typ := range Types {
			out = append(out, curated[typ]...)
		}
		return out
	}
	return curated[*t]
}
