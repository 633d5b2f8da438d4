package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/view"
)

// Dashboard is everything the summary document shows.
type Dashboard struct {
	Now        time.Time
	Accounts   []ledger.Account
	Total      decimal.Decimal
	Month      view.Sums
	Projection view.Projection
	Cards      []view.CardSummary
	Upcoming   view.Upcoming
	Budget     view.Budget
	Categories []view.CategoryShare
}

// Summary renders the dashboard as Markdown.
func Summary(f Formatter, d Dashboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Resumo de %s\n\n", d.Now.Format("01/2006"))

	fmt.Fprintf(&b, "## Minhas contas\n\n")
	if len(d.Accounts) == 0 {
		b.WriteString("Nenhuma conta cadastrada.\n\n")
	} else {
		b.WriteString("| Conta | Tipo | Saldo |\n|---|---|---:|\n")
		for _, a := range d.Accounts {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", cell(a.Name), cell(a.Type), f.Money(a.Balance))
		}
		fmt.Fprintf(&b, "| **Total** | | **%s** |\n\n", f.Money(d.Total))
	}

	b.WriteString("## Mês atual\n\n")
	fmt.Fprintf(&b, "- Receitas: %s\n", f.Money(d.Month.Income))
	fmt.Fprintf(&b, "- Despesas: %s\n", f.Money(d.Month.Expense))
	fmt.Fprintf(&b, "- Saldo: %s\n", f.Money(d.Month.Balance))
	fmt.Fprintf(&b, "- Previsão em 30 dias: %s\n\n", f.Money(d.Projection.Forecast))

	if len(d.Cards) > 0 {
		b.WriteString("## Meus cartões\n\n")
		b.WriteString("| Cartão | Fatura | Disponível | Uso |\n|---|---:|---:|---:|\n")
		for _, c := range d.Cards {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", cell(c.Card.Name), f.Money(c.Invoice), f.Money(c.Available), Percent(c.UsagePercent))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Limite de gastos\n\n")
	fmt.Fprintf(&b, "%s de %s (%s)", f.Money(d.Budget.Spent), f.Money(d.Budget.Limit), Percent(d.Budget.Percent))
	if d.Budget.Exceeded {
		b.WriteString(" **limite excedido**")
	}
	b.WriteString("\n\n")

	if len(d.Categories) > 0 {
		b.WriteString("## Gastos por categoria\n\n")
		shares(&b, f, d.Categories)
	}

	b.WriteString("## Contas a vencer\n\n")
	if len(d.Upcoming.Bills) == 0 {
		b.WriteString("Nenhuma conta nos próximos dias.\n")
	} else {
		transactions(&b, f, d.Upcoming.Bills)
		fmt.Fprintf(&b, "\nTotal: %s\n", f.Money(d.Upcoming.Total))
	}
	return b.String()
}

// Bills renders pending expenses grouped by urgency.
func Bills(f Formatter, g view.BillGroups) string {
	var b strings.Builder
	b.WriteString("# Contas a pagar\n\n")
	for _, sec := range []struct {
		title string
		txs   []ledger.Transaction
	}{
		{"Vencidas", g.Overdue},
		{"Vencem hoje", g.DueToday},
		{"Próximas", g.Upcoming},
	} {
		fmt.Fprintf(&b, "## %s\n\n", sec.title)
		if len(sec.txs) == 0 {
			b.WriteString("Nada por aqui.\n\n")
			continue
		}
		transactions(&b, f, sec.txs)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Total pendente: %s\n", f.Money(g.Total()))
	return b.String()
}

// Report renders a month report.
func Report(f Formatter, r view.MonthReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Relatório de %s\n\n", r.Month.Format("01/2006"))
	fmt.Fprintf(&b, "- Receitas: %s\n", f.Money(r.Income))
	fmt.Fprintf(&b, "- Despesas: %s\n", f.Money(r.Expense))
	fmt.Fprintf(&b, "- Saldo: %s\n", f.Money(r.Balance))
	fmt.Fprintf(&b, "- Taxa de poupança: %s\n\n", Percent(r.SavingsRate))
	b.WriteString("## Categorias\n\n")
	if len(r.Categories) == 0 {
		b.WriteString("Sem despesas no mês.\n\n")
	} else {
		shares(&b, f, r.Categories)
	}
	b.WriteString("## Maiores despesas\n\n")
	if len(r.TopExpenses) == 0 {
		b.WriteString("Sem despesas no mês.\n")
	} else {
		transactions(&b, f, r.TopExpenses)
	}
	return b.String()
}

// CardStatement renders one card's invoice and its records.
func CardStatement(f Formatter, s view.CardSummary, txs []ledger.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Card.Name)
	fmt.Fprintf(&b, "- Limite: %s\n", f.Money(s.Card.Limit))
	fmt.Fprintf(&b, "- Fatura atual: %s\n", f.Money(s.Invoice))
	fmt.Fprintf(&b, "- Disponível: %s\n", f.Money(s.Available))
	fmt.Fprintf(&b, "- Fechamento dia %d, vencimento dia %d\n\n", s.Card.ClosingDay, s.Card.DueDay)
	b.WriteString("## Lançamentos\n\n")
	if len(txs) == 0 {
		b.WriteString("Nenhum lançamento.\n")
		return b.String()
	}
	transactions(&b, f, txs)
	return b.String()
}

// Transactions renders a plain transaction list under title.
func Transactions(f Formatter, title string, txs []ledger.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(txs) == 0 {
		b.WriteString("Nenhuma transação.\n")
		return b.String()
	}
	transactions(&b, f, txs)
	return b.String()
}

func transactions(b *strings.Builder, f Formatter, txs []ledger.Transaction) {
	b.WriteString("| Data | Descrição | Categoria | Valor | Status |\n|---|---|---|---:|---|\n")
	for _, t := range txs {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			Date(t.Date), cell(t.Description), cell(t.Category), f.Signed(t.Amount, t.Type == ledger.TypeIncome), status(t))
	}
}

func shares(b *strings.Builder, f Formatter, s []view.CategoryShare) {
	b.WriteString("| Categoria | Valor | % |\n|---|---:|---:|\n")
	for _, c := range s {
		fmt.Fprintf(b, "| %s | %s | %s |\n", cell(c.Category), f.Money(c.Amount), Percent(c.Percent))
	}
	b.WriteString("\n")
}

func status(t ledger.Transaction) string {
	if t.IsPending() {
		return "pendente"
	}
	return "pago"
}

// cell escapes table separators in user text.
func cell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }
