package store

import (
	"context"
	"sync"

	"bankcli/internal/domain"
	"bankcli/internal/gateway"
	"bankcli/internal/limits"
)

// TransactionStore owns the history of exactly one account at a time,
// newest first. Switching accounts replaces the whole sequence;
// histories are never concatenated.
type TransactionStore struct {
	mu       sync.Mutex
	gateway  *gateway.Client
	limits   *limits.Checker
	accounts *AccountStore

	history []domain.Transaction
	// activeAccount tags which account the history belongs to. A
	// fetch that resolves after a newer fetch retargeted the store is
	// discarded (last request wins by intent).
	activeAccount string
	status        domain.OpStatus
	err           string
}

func NewTransactionStore(gw *gateway.Client, checker *limits.Checker, accounts *AccountStore) *TransactionStore {
	return &TransactionStore{
		gateway:  gw,
		limits:   checker,
		accounts: accounts,
		status:   domain.OpIdle,
	}
}

// FetchTransactions replaces the history wholesale for the given
// account. Responses arriving after the store was retargeted at a
// different account are dropped silently.
func (s *TransactionStore) FetchTransactions(ctx context.Context, accountNumber string) error {
	s.mu.Lock()
	s.activeAccount = accountNumber
	s.status = domain.OpPending
	s.err = ""
	s.mu.Unlock()

	transactions, err := s.gateway.ListTransactions(ctx, accountNumber)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeAccount != accountNumber {
		// Stale response for a previously targeted account.
		return nil
	}
	if err != nil {
		s.status = domain.OpRejected
		s.err = gateway.Message(err, "Failed to fetch transactions")
		return err
	}
	s.history = transactions
	s.status = domain.OpFulfilled
	return nil
}

// Deposit validates locally, writes through to the backend, and
// prepends the returned record. It never touches account balances;
// the caller refetches accounts for the authoritative value.
func (s *TransactionStore) Deposit(ctx context.Context, req domain.DepositRequest) (domain.Transaction, error) {
	if err := s.limits.CheckDeposit(req.Amount); err != nil {
		return domain.Transaction{}, err
	}
	return s.submit(ctx, func() (domain.Transaction, error) {
		return s.gateway.Deposit(ctx, req)
	}, "Deposit failed")
}

func (s *TransactionStore) Withdraw(ctx context.Context, req domain.WithdrawRequest) (domain.Transaction, error) {
	balance, _ := s.accounts.BalanceFor(req.AccountNumber)
	if err := s.limits.CheckWithdrawal(req.Amount, balance); err != nil {
		return domain.Transaction{}, err
	}
	return s.submit(ctx, func() (domain.Transaction, error) {
		return s.gateway.Withdraw(ctx, req)
	}, "Withdrawal failed")
}

func (s *TransactionStore) Transfer(ctx context.Context, req domain.TransferRequest) (domain.Transaction, error) {
	source := req.FromAccountNumber
	if source == "" {
		source = req.AccountNumber
	}
	balance, _ := s.accounts.BalanceFor(source)
	if err := s.limits.CheckTransfer(req.Amount, balance); err != nil {
		return domain.Transaction{}, err
	}
	return s.submit(ctx, func() (domain.Transaction, error) {
		return s.gateway.Transfer(ctx, req)
	}, "Transfer failed")
}

func (s *TransactionStore) submit(ctx context.Context, call func() (domain.Transaction, error), fallback string) (domain.Transaction, error) {
	s.mu.Lock()
	s.status = domain.OpPending
	s.err = ""
	s.mu.Unlock()

	tx, err := call()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = domain.OpRejected
		s.err = gateway.Message(err, fallback)
		return domain.Transaction{}, err
	}
	s.history = append([]domain.Transaction{tx}, s.history...)
	s.status = domain.OpFulfilled
	return tx, nil
}

func (s *TransactionStore) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, len(s.history))
	copy(out, s.history)
	return out
}

// ActiveAccount is the account number the current history belongs to.
func (s *TransactionStore) ActiveAccount() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeAccount
}

func (s *TransactionStore) Status() domain.OpStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *TransactionStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *TransactionStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}
