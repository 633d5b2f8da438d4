package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/govalues/decimal"

	"github.com/tinoosan/finboard/internal/ledger"
	"github.com/tinoosan/finboard/internal/service/finance"
	"github.com/tinoosan/finboard/internal/view"
)

type addCmd struct {
	env         *Env
	description string
	amount      string
	typ         string
	category    string
	date        string
	status      string
	recurrence  string
	account     string
	card        string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or expense" }
func (*addCmd) Usage() string {
	return `financectl add -d <description> -a <amount> [-t expense|income] [-c <category>] [-date YYYY-MM-DD] [-s paid|pending] [-r fixed|variable] [-account <id> | -card <id>]

  Records a transaction. Paid records linked to an account move its balance;
  card expenses stay pending until the invoice is paid.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.description, "d", "", "Description.")
	f.StringVar(&c.amount, "a", "", "Amount, e.g. 150.90.")
	f.StringVar(&c.typ, "t", string(ledger.TypeExpense), "Type: expense or income.")
	f.StringVar(&c.category, "c", "", "Category.")
	f.StringVar(&c.date, "date", "", "Date (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&c.status, "s", "", "Status: paid or pending. Defaults to paid, pending for cards.")
	f.StringVar(&c.recurrence, "r", "", "Recurrence: fixed or variable.")
	f.StringVar(&c.account, "account", "", "Account id.")
	f.StringVar(&c.card, "card", "", "Card id.")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amt, err := ledger.ParseAmount(c.amount)
	if err != nil {
		return c.env.usage("invalid amount %q", c.amount)
	}
	date, err := c.env.parseDate(c.date)
	if err != nil {
		return c.env.usage("%v", err)
	}
	tx, err := c.env.Ledger.AddTransaction(ctx, finance.NewTransaction{
		Description: c.description,
		Amount:      amt,
		Type:        ledger.TransactionType(c.typ),
		Category:    c.category,
		Date:        date,
		Status:      ledger.Status(c.status),
		Recurrence:  ledger.Recurrence(c.recurrence),
		AccountID:   c.account,
		CardID:      c.card,
	})
	if err != nil {
		return c.env.fail(err)
	}
	fmt.Fprintf(c.env.Out, "added %s (%s, %s)\n", tx.ID, tx.Type, tx.Status)
	return subcommands.ExitSuccess
}

type payCmd struct {
	env     *Env
	card    string
	account string
	amount  string
}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "pay a pending transaction or a card invoice" }
func (*payCmd) Usage() string {
	return `financectl pay <transaction-id>
financectl pay -card <id> -account <id> [-a <amount>]

  Marks a pending record as paid, or pays a card's open invoice from an
  account. The invoice amount defaults to the open total.
`
}

func (c *payCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.card, "card", "", "Card whose invoice is paid.")
	f.StringVar(&c.account, "account", "", "Account the invoice is paid from.")
	f.StringVar(&c.amount, "a", "", "Invoice amount. Defaults to the open invoice.")
}

func (c *payCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.card == "" {
		id, err := positional(f.Args(), "transaction id")
		if err != nil {
			return c.env.usage("%v", err)
		}
		tx, err := c.env.Ledger.PayTransaction(ctx, id)
		if err != nil {
			return c.env.fail(err)
		}
		fmt.Fprintf(c.env.Out, "paid %s\n", tx.ID)
		return subcommands.ExitSuccess
	}

	if c.account == "" {
		return c.env.usage("-account is required with -card")
	}
	var amt decimal.Decimal
	if c.amount == "" {
		card, err := c.env.Ledger.Card(c.card)
		if err != nil {
			return c.env.fail(err)
		}
		amt = view.Invoice(c.env.Ledger.Snapshot().Transactions, card.ID)
	} else {
		var err error
		if amt, err = ledger.ParseAmount(c.amount); err != nil {
			return c.env.usage("invalid amount %q", c.amount)
		}
	}
	tx, err := c.env.Ledger.PayCardInvoice(ctx, c.card, c.account, amt, c.env.now())
	if err != nil {
		return c.env.fail(err)
	}
	fmt.Fprintf(c.env.Out, "paid invoice of %s with %s\n", c.card, tx.ID)
	return subcommands.ExitSuccess
}

type transferCmd struct {
	env    *Env
	from   string
	to     string
	amount string
	date   string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move money between two accounts" }
func (*transferCmd) Usage() string {
	return `financectl transfer -from <id> -to <id> -a <amount> [-date YYYY-MM-DD]
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Source account id.")
	f.StringVar(&c.to, "to", "", "Destination account id.")
	f.StringVar(&c.amount, "a", "", "Amount.")
	f.StringVar(&c.date, "date", "", "Date (YYYY-MM-DD). Defaults to today.")
}

func (c *transferCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amt, err := ledger.ParseAmount(c.amount)
	if err != nil {
		return c.env.usage("invalid amount %q", c.amount)
	}
	date, err := c.env.parseDate(c.date)
	if err != nil {
		return c.env.usage("%v", err)
	}
	tx, err := c.env.Ledger.AddTransfer(ctx, c.from, c.to, amt, date)
	if err != nil {
		return c.env.fail(err)
	}
	fmt.Fprintf(c.env.Out, "transferred %s from %s to %s (%s)\n", tx.Amount, tx.FromAccount, tx.ToAccount, tx.ID)
	return subcommands.ExitSuccess
}

type accountCmd struct {
	env     *Env
	balance string
	typ     string
}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "open an account" }
func (*accountCmd) Usage() string {
	return `financectl account [-b <opening balance>] [-t <type>] <name>
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.balance, "b", "", "Opening balance.")
	f.StringVar(&c.typ, "t", "", "Account type. Defaults to checking.")
}

func (c *accountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, err := positional(f.Args(), "account name")
	if err != nil {
		return c.env.usage("%v", err)
	}
	bal, err := ledger.ParseAmount(c.balance)
	if err != nil {
		return c.env.usage("invalid balance %q", c.balance)
	}
	acc, err := c.env.Ledger.AddAccount(ctx, finance.NewAccount{Name: name, Balance: bal, Type: c.typ})
	if err != nil {
		return c.env.fail(err)
	}
	fmt.Fprintf(c.env.Out, "opened %s (%s)\n", acc.Name, acc.ID)
	return subcommands.ExitSuccess
}
