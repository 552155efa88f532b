package store

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"

	"bankcli/internal/domain"
	"bankcli/internal/limits"
)

func seededAccountStore(t *testing.T, snapshot func() []domain.Account) *AccountStore {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/accounts", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(t, w, http.StatusOK, snapshot())
	})
	store := NewAccountStore(newGateway(t, r))
	if err := store.FetchAccounts(context.Background()); err != nil {
		t.Fatalf("seed accounts: %v", err)
	}
	return store
}

func TestSuccessfulWritePrependsRecord(t *testing.T) {
	prior := []domain.Transaction{
		{ID: "tx2", Type: domain.TransactionDeposit, Amount: 30},
		{ID: "tx1", Type: domain.TransactionWithdrawal, Amount: 10},
	}
	r := chi.NewRouter()
	r.Get("/transactions/account/{accountNumber}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(t, w, http.StatusOK, prior)
	})
	r.Post("/transactions/deposit", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(t, w, http.StatusOK, domain.Transaction{
			ID: "tx3", Type: domain.TransactionDeposit, Amount: 50, Status: domain.TransactionStatusCompleted,
		})
	})
	r.Get("/accounts", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(t, w, http.StatusOK, []domain.Account{checkingAccount(1, "1001", "100.00")})
	})
	gw := newGateway(t, r)
	accounts := NewAccountStore(gw)
	if err := accounts.FetchAccounts(context.Background()); err != nil {
		t.Fatalf("FetchAccounts: %v", err)
	}
	store := NewTransactionStore(gw, newChecker(), accounts)

	if err := store.FetchTransactions(context.Background(), "1001"); err != nil {
		t.Fatalf("FetchTransactions: %v", err)
	}
	tx, err := store.Deposit(context.Background(), domain.DepositRequest{AccountNumber: "1001", Amount: 50})
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if tx.ID != "tx3" {
		t.Fatalf("returned transaction = %+v", tx)
	}

	history := store.Transactions()
	if len(history) != 3 {
		t.Fatalf("history length = %d", len(history))
	}
	if history[0].ID != "tx3" || history[1].ID != "tx2" || history[2].ID != "tx1" {
		t.Fatalf("history order = %s,%s,%s", history[0].ID, history[1].ID, history[2].ID)
	}
}

func TestStaleFetchResponseDiscarded(t *testing.T) {
	historyA := []domain.Transaction{{ID: "a1", Type: domain.TransactionDeposit, Amount: 1}}
	historyB := []domain.Transaction{{ID: "b1", Type: domain.TransactionDeposit, Amount: 2}}

	slowArrived := make(chan struct{})
	slowRelease := make(chan struct{})
	r := chi.NewRouter()
	r.Get("/transactions/account/{accountNumber}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "accountNumber") == "A" {
			close(slowArrived)
			<-slowRelease
			writeJSON(t, w, http.StatusOK, historyA)
			return
		}
		writeJSON(t, w, http.StatusOK, historyB)
	})
	gw := newGateway(t, r)
	store := NewTransactionStore(gw, newChecker(), NewAccountStore(gw))

	fetchADone := make(chan error, 1)
	go func() {
		fetchADone <- store.FetchTransactions(context.Background(), "A")
	}()
	<-slowArrived

	// A newer fetch retargets the store at account B while A's
	// request is still in flight.
	if err := store.FetchTransactions(context.Background(), "B"); err != nil {
		t.Fatalf("FetchTransactions(B): %v", err)
	}
	close(slowRelease)
	if err := <-fetchADone; err != nil {
		t.Fatalf("discarded fetch should not report an error, got %v", err)
	}

	history := store.Transactions()
	if len(history) != 1 || history[0].ID != "b1" {
		t.Fatalf("history = %+v, want B's response only", history)
	}
	if store.ActiveAccount() != "B" {
		t.Fatalf("active account = %q", store.ActiveAccount())
	}
	if store.Status() != domain.OpFulfilled || store.Err() != "" {
		t.Fatalf("lifecycle = %s / %q", store.Status(), store.Err())
	}
}

func TestWithdrawalBeyondBalanceRejectedBeforeNetwork(t *testing.T) {
	var calls int32
	r := chi.NewRouter()
	r.Post("/transactions/withdraw", func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(t, w, http.StatusOK, domain.Transaction{ID: "never"})
	})
	gw := newGateway(t, r)
	accounts := seededAccountStore(t, func() []domain.Account {
		return []domain.Account{checkingAccount(1, "1001", "100.00")}
	})
	store := NewTransactionStore(gw, newChecker(), accounts)

	_, err := store.Withdraw(context.Background(), domain.WithdrawRequest{AccountNumber: "1001", Amount: 150})
	var violation *limits.Violation
	if !errors.As(err, &violation) {
		t.Fatalf("expected local Violation, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("backend called %d times for a locally invalid withdrawal", n)
	}
	// Validation failures are view-local: the store's error field and
	// history stay untouched.
	if store.Err() != "" {
		t.Fatalf("store error = %q", store.Err())
	}
	if len(store.Transactions()) != 0 {
		t.Fatal("history mutated by rejected validation")
	}
}

func TestCeilingsValidatedPerOperation(t *testing.T) {
	r := chi.NewRouter()
	gw := newGateway(t, r)
	accounts := seededAccountStore(t, func() []domain.Account {
		return []domain.Account{checkingAccount(1, "1001", "500000.00")}
	})
	store := NewTransactionStore(gw, newChecker(), accounts)
	ctx := context.Background()

	if _, err := store.Deposit(ctx, domain.DepositRequest{AccountNumber: "1001", Amount: 100001}); err == nil {
		t.Fatal("deposit above ceiling accepted")
	}
	if _, err := store.Withdraw(ctx, domain.WithdrawRequest{AccountNumber: "1001", Amount: 10001}); err == nil {
		t.Fatal("withdrawal above ceiling accepted")
	}
	if _, err := store.Transfer(ctx, domain.TransferRequest{FromAccountNumber: "1001", ToAccountNumber: "2002", Amount: 10001}); err == nil {
		t.Fatal("transfer above ceiling accepted")
	}
	if _, err := store.Deposit(ctx, domain.DepositRequest{AccountNumber: "1001", Amount: 0}); err == nil {
		t.Fatal("zero amount accepted")
	}
}

func TestBackendRejectionLeavesHistoryUntouched(t *testing.T) {
	prior := []domain.Transaction{{ID: "tx1", Type: domain.TransactionDeposit, Amount: 10}}
	r := chi.NewRouter()
	r.Get("/transactions/account/{accountNumber}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(t, w, http.StatusOK, prior)
	})
	r.Post("/transactions/withdraw", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string]string{"message": "concurrent modification"})
	})
	gw := newGateway(t, r)
	accounts := seededAccountStore(t, func() []domain.Account {
		return []domain.Account{checkingAccount(1, "1001", "100.00")}
	})
	store := NewTransactionStore(gw, newChecker(), accounts)

	if err := store.FetchTransactions(context.Background(), "1001"); err != nil {
		t.Fatalf("FetchTransactions: %v", err)
	}
	if _, err := store.Withdraw(context.Background(), domain.WithdrawRequest{AccountNumber: "1001", Amount: 50}); err == nil {
		t.Fatal("expected backend rejection")
	}

	if got := store.Transactions(); len(got) != 1 || got[0].ID != "tx1" {
		t.Fatalf("history after rejection = %+v", got)
	}
	if store.Status() != domain.OpRejected || store.Err() != "concurrent modification" {
		t.Fatalf("lifecycle = %s / %q", store.Status(), store.Err())
	}
}
