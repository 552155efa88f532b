package store

import (
	"context"
	"sync"

	"bankcli/internal/domain"
	"bankcli/internal/gateway"
)

// AccountStore owns the account collection and the current selection.
// The collection always mirrors the backend's latest snapshot; it is
// never merged with prior state.
type AccountStore struct {
	mu      sync.Mutex
	gateway *gateway.Client

	accounts   []domain.Account
	selectedID int64 // 0 means no selection
	status     domain.OpStatus
	err        string
}

func NewAccountStore(gw *gateway.Client) *AccountStore {
	return &AccountStore{gateway: gw, status: domain.OpIdle}
}

// FetchAccounts replaces the collection with the backend's snapshot
// and reconciles the selection: a selection no longer present is
// cleared, and a non-empty collection without a selection defaults to
// the first account in snapshot order.
func (s *AccountStore) FetchAccounts(ctx context.Context) error {
	s.beginOp()

	accounts, err := s.gateway.ListAccounts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// Prior data stays: stale accounts beat an empty dashboard on
		// a transient failure.
		s.status = domain.OpRejected
		s.err = gateway.Message(err, "Failed to fetch accounts")
		return err
	}

	s.accounts = accounts
	if !s.containsLocked(s.selectedID) {
		s.selectedID = 0
	}
	if s.selectedID == 0 && len(s.accounts) > 0 {
		s.selectedID = s.accounts[0].AccountID
	}
	s.status = domain.OpFulfilled
	return nil
}

// SelectAccount is local-only and silently ignores ids not in the
// collection, so the selection can never dangle.
func (s *AccountStore) SelectAccount(accountID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.containsLocked(accountID) {
		s.selectedID = accountID
	}
}

// CreateAccount appends the backend's new account to the end of the
// collection. Selection is left alone.
func (s *AccountStore) CreateAccount(ctx context.Context, spec domain.NewAccount) (domain.Account, error) {
	s.beginOp()

	account, err := s.gateway.CreateAccount(ctx, spec)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = domain.OpRejected
		s.err = gateway.Message(err, "Failed to create account")
		return domain.Account{}, err
	}
	s.accounts = append(s.accounts, account)
	s.status = domain.OpFulfilled
	return account, nil
}

func (s *AccountStore) beginOp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = domain.OpPending
	s.err = ""
}

func (s *AccountStore) containsLocked(accountID int64) bool {
	for _, a := range s.accounts {
		if a.AccountID == accountID {
			return true
		}
	}
	return false
}

func (s *AccountStore) Accounts() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Selected returns the selected account, if any.
func (s *AccountStore) Selected() (domain.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.AccountID == s.selectedID {
			return a, true
		}
	}
	return domain.Account{}, false
}

func (s *AccountStore) SelectedID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

// BalanceFor reports the last fetched balance for an account number.
func (s *AccountStore) BalanceFor(accountNumber string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.AccountNumber == accountNumber {
			return a.Balance, true
		}
	}
	return "", false
}

func (s *AccountStore) Status() domain.OpStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *AccountStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *AccountStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}
