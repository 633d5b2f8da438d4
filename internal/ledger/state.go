package ledger

// Snapshot is a point-in-time copy of the ledger collections. Views read
// snapshots; they never see the live store.
type Snapshot struct {
    Transactions []Transaction
    Accounts     []Account
    Cards        []Card
    Goals        []Goal
}

// Clone returns a copy whose slices don't alias s. Entities hold only values,
// so copying the slices is a deep copy.
func (s Snapshot) Clone() Snapshot {
    return Snapshot{
        Transactions: cloneSlice(s.Transactions),
        Accounts:     cloneSlice(s.Accounts),
        Cards:        cloneSlice(s.Cards),
        Goals:        cloneSlice(s.Goals),
    }
}

// cloneSlice never returns nil so encoded snapshots always carry arrays.
func cloneSlice[T any](xs []T) []T {
    out := make([]T, len(xs))
    copy(out, xs)
    return out
}

// Account looks up an account by id.
func (s Snapshot) Account(id string) (Account, bool) {
    for _, a := range s.Accounts { if a.ID == id { return a, true } }
    return Account{}, false
}

// Card looks up a card by id.
func (s Snapshot) Card(id string) (Card, bool) {
    for _, c := range s.Cards { if c.ID == id { return c, true } }
    return Card{}, false
}

// Goal looks up a goal by id.
func (s Snapshot) Goal(id string) (Goal, bool) {
    for _, g := range s.Goals { if g.ID == id { return g, true } }
    return Goal{}, false
}
