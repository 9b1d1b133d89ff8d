// Package models defines the persisted account table: accounts keyed by
// username, each carrying a credential and a bounded activity history.
package models

// MaxHistoryEntries bounds every account's history. Inserting beyond it
// evicts the oldest entry.
const MaxHistoryEntries = 20

// Account is one row of the table. The username is the table key and is not
// repeated here, matching the persisted layout.
type Account struct {
	Password string         `json:"password"`
	History  []HistoryEntry `json:"history"`
}

// NewAccount returns an account with an empty, non-nil history so it
// serialises as [] rather than null.
func NewAccount(password string) Account {
	return Account{Password: password, History: []HistoryEntry{}}
}

// WithEntry returns a copy of a with e inserted at the head of the history
// and the history truncated to MaxHistoryEntries. The receiver's slice is
// never modified.
func (a Account) WithEntry(e HistoryEntry) Account {
	n := len(a.History) + 1
	if n > MaxHistoryEntries {
		n = MaxHistoryEntries
	}

	h := make([]HistoryEntry, 0, n)
	h = append(h, e)
	for _, old := range a.History {
		if len(h) == n {
			break
		}
		h = append(h, old)
	}

	a.History = h
	return a
}

// Table maps username to account. Usernames are case-sensitive.
type Table map[string]Account

// Clone returns a copy whose history slices are independent of t.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for name, acc := range t {
		h := make([]HistoryEntry, len(acc.History))
		copy(h, acc.History)
		out[name] = Account{Password: acc.Password, History: h}
	}
	return out
}
