package cli

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/subcommands"
	"github.com/govalues/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/service/finance"
	"github.com/tinoosan/finboard/internal/service/prefs"
	"github.com/tinoosan/finboard/internal/storage/memory"
)

var testNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type harness struct {
	t   *testing.T
	env *Env
	out *bytes.Buffer
	err *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	slots := memory.New()
	n := 0
	store := finance.New(slots,
		finance.WithLogger(testLogger()),
		finance.WithClock(func() time.Time { return testNow }),
		finance.WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	p := prefs.New(slots, testLogger())
	h := &harness{t: t, out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	h.env = &Env{
		Ledger:   store,
		Prefs:    p,
		Currency: "BRL",
		Location: time.UTC,
		Now:      func() time.Time { return testNow },
		Out:      h.out,
		Err:      h.err,
		Raw:      true,
	}
	return h
}

func mustAmount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := ledger.ParseAmount(s)
	if err != nil {
		t.Fatalf("ParseAmount(%q): %v", s, err)
	}
	return d
}

// run executes one command line and returns its output.
func (h *harness) run(args ...string) (string, subcommands.ExitStatus) {
	h.t.Helper()
	h.out.Reset()
	h.err.Reset()
	fs := flag.NewFlagSet("financectl", flag.ContinueOnError)
	cdr := subcommands.NewCommander(fs, "financectl")
	Register(cdr, h.env)
	if err := fs.Parse(args); err != nil {
		h.t.Fatalf("parse %v: %v", args, err)
	}
	status := cdr.Execute(context.Background())
	return h.out.String(), status
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, status := h.run(args...)
	if status != subcommands.ExitSuccess {
		h.t.Fatalf("%v exited %d: %s", args, status, h.err.String())
	}
	return out
}

// headings returns the text of every heading in md, in document order.
func headings(md string) []string {
	src := []byte(md)
	root := goldmark.DefaultParser().Parse(text.NewReader(src))
	var out []string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			var b strings.Builder
			for i := 0; i < h.Lines().Len(); i++ {
				line := h.Lines().At(i)
				b.Write(line.Value(src))
			}
			out = append(out, strings.TrimSpace(b.String()))
		}
		return ast.WalkContinue, nil
	})
	return out
}

func TestSummary_AfterRecording(t *testing.T) {
	h := newHarness(t)
	h.mustRun("account", "-b", "1000", "Nubank")
	if out := h.mustRun("add", "-d", "Mercado", "-a", "150", "-c", "Alimentação", "-account", "id-1"); !strings.Contains(out, "added id-2 (expense, paid)") {
		t.Fatalf("add output %q", out)
	}
	h.mustRun("add", "-d", "Salário", "-a", "5000", "-t", "income", "-c", "Salário", "-account", "id-1")
	h.mustRun("add", "-d", "Internet", "-a", "100", "-c", "Moradia", "-s", "pending", "-date", "2025-03-18", "-account", "id-1")

	out := h.mustRun("summary")
	got := headings(out)
	want := []string{"Resumo de 03/2025", "Minhas contas", "Mês atual", "Limite de gastos", "Gastos por categoria", "Contas a vencer"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("headings = %v", got)
	}
	for _, s := range []string{"R$ 5.850,00", "Receitas: R$ 5.000,00", "Despesas: R$ 250,00", "Internet"} {
		if !strings.Contains(out, s) {
			t.Errorf("summary missing %q:\n%s", s, out)
		}
	}
}

func TestMask_HidesValues(t *testing.T) {
	h := newHarness(t)
	h.mustRun("account", "-b", "1000", "Nubank")
	if out := h.mustRun("mask"); out != "values hidden\n" {
		t.Fatalf("mask output %q", out)
	}
	out := h.mustRun("summary")
	if strings.Contains(out, "1.000,00") || !strings.Contains(out, "R$ ••••") {
		t.Fatalf("values not masked:\n%s", out)
	}
	h.mustRun("mask")
	if out := h.mustRun("summary"); !strings.Contains(out, "R$ 1.000,00") {
		t.Fatalf("values still masked:\n%s", out)
	}
}

func TestCard_InvoicePayment(t *testing.T) {
	h := newHarness(t)
	h.mustRun("account", "-b", "2000", "Nubank")
	card, err := h.env.Ledger.AddCard(context.Background(), finance.NewCard{Name: "Visa", Limit: mustAmount(t, "3000"), ClosingDay: 5, DueDay: 12})
	if err != nil {
		t.Fatalf("AddCard: %v", err)
	}
	if out := h.mustRun("add", "-d", "Cinema", "-a", "80", "-c", "Lazer", "-card", card.ID); !strings.Contains(out, "pending") {
		t.Fatalf("card expense output %q", out)
	}
	out := h.mustRun("card", card.ID)
	if !strings.Contains(out, "Fatura atual: R$ 80,00") || !strings.Contains(out, "Cinema") {
		t.Fatalf("statement:\n%s", out)
	}

	if _, status := h.run("pay", "-card", card.ID); status != subcommands.ExitUsageError {
		t.Fatalf("pay without account exited %d", status)
	}
	h.mustRun("pay", "-card", card.ID, "-account", "id-1")
	if out := h.mustRun("card", card.ID); !strings.Contains(out, "Nenhum lançamento.") {
		t.Fatalf("invoice not cleared:\n%s", out)
	}
	acc, _ := h.env.Ledger.Account("id-1")
	if acc.Balance.Cmp(mustAmount(t, "1920")) != 0 {
		t.Fatalf("balance = %s", acc.Balance)
	}
}

func TestTransferAndBills(t *testing.T) {
	h := newHarness(t)
	h.mustRun("account", "-b", "500", "Nubank")
	h.mustRun("account", "Itaú")
	if out := h.mustRun("transfer", "-from", "id-1", "-to", "id-2", "-a", "200"); !strings.Contains(out, "from Nubank to Itaú") {
		t.Fatalf("transfer output %q", out)
	}
	if _, status := h.run("transfer", "-from", "id-1", "-to", "id-1", "-a", "1"); status != subcommands.ExitFailure {
		t.Fatalf("same-account transfer exited %d", status)
	}
	if !strings.Contains(h.err.String(), "Error:") {
		t.Fatalf("stderr %q", h.err.String())
	}

	h.mustRun("add", "-d", "Luz", "-a", "120", "-s", "pending", "-date", "2025-03-01", "-account", "id-1")
	h.mustRun("add", "-d", "Água", "-a", "60", "-s", "pending", "-date", "2025-03-15", "-account", "id-1")
	out := h.mustRun("bills")
	if got := headings(out); len(got) != 4 || got[0] != "Contas a pagar" {
		t.Fatalf("headings = %v", got)
	}
	if !strings.Contains(out, "Total pendente: R$ 180,00") {
		t.Fatalf("bills:\n%s", out)
	}
	h.mustRun("pay", "id-4")
	if out := h.mustRun("bills"); !strings.Contains(out, "Total pendente: R$ 60,00") {
		t.Fatalf("bills after pay:\n%s", out)
	}
}

func TestTxAndReport(t *testing.T) {
	h := newHarness(t)
	h.mustRun("account", "-b", "0", "Nubank")
	h.mustRun("add", "-d", "Salário", "-a", "1000", "-t", "income", "-account", "id-1")
	h.mustRun("add", "-d", "Mercado", "-a", "300", "-c", "Alimentação", "-account", "id-1")
	h.mustRun("add", "-d", "Padaria", "-a", "20", "-c", "Alimentação", "-date", "2025-02-10", "-account", "id-1")

	out := h.mustRun("tx", "-q", "merc")
	if !strings.Contains(out, "Transações (1)") || !strings.Contains(out, "Mercado") {
		t.Fatalf("tx search:\n%s", out)
	}
	if out := h.mustRun("tx", "-p", "mes"); !strings.Contains(out, "Transações (2)") {
		t.Fatalf("tx month:\n%s", out)
	}
	if _, status := h.run("tx", "-p", "decade"); status != subcommands.ExitUsageError {
		t.Fatalf("bad period exited %d", status)
	}

	out = h.mustRun("report")
	want := []string{"Relatório de 03/2025", "Categorias", "Maiores despesas"}
	if got := headings(out); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("headings = %v", got)
	}
	if !strings.Contains(out, "Taxa de poupança: 70,0%") {
		t.Fatalf("report:\n%s", out)
	}
	if out := h.mustRun("report", "-m", "2025-02"); !strings.Contains(out, "Padaria") {
		t.Fatalf("february report:\n%s", out)
	}
	if _, status := h.run("report", "-m", "02/2025"); status != subcommands.ExitUsageError {
		t.Fatalf("bad month exited %d", status)
	}
}

func TestExportImport(t *testing.T) {
	h := newHarness(t)
	h.mustRun("account", "-b", "750", "Nubank")
	dir := t.TempDir()
	out := h.mustRun("export", "-to", dir)
	file := filepath.Join(dir, "backup_finance_2025-03-15.json")
	if !strings.Contains(out, file) {
		t.Fatalf("export output %q", out)
	}
	if _, err := os.Stat(file); err != nil {
		t.Fatalf("backup not written: %v", err)
	}
	if out := h.mustRun("export"); !strings.Contains(out, `"accounts"`) {
		t.Fatalf("stdout export %q", out)
	}

	other := newHarness(t)
	if out := other.mustRun("import", file); !strings.Contains(out, "1 accounts") {
		t.Fatalf("import output %q", out)
	}
	if out := other.mustRun("import", file); !strings.Contains(out, "(1 skipped)") {
		t.Fatalf("second import output %q", out)
	}
	if _, status := other.run("import", filepath.Join(dir, "missing.json")); status != subcommands.ExitFailure {
		t.Fatalf("missing file exited %d", status)
	}
}

func TestTheme_StyledOutput(t *testing.T) {
	h := newHarness(t)
	if out := h.mustRun("theme"); out != "theme: light\n" {
		t.Fatalf("theme output %q", out)
	}
	h.env.Raw = false
	out := ansi.Strip(h.mustRun("bills"))
	if !strings.Contains(out, "Nada por aqui.") || strings.Contains(out, "# Contas a pagar") {
		t.Fatalf("expected styled output:\n%s", out)
	}
}
