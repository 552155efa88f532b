// Package cli is the terminal view layer. It dispatches operations
// against the stores and renders their state; it never mutates an
// aggregate directly.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bankcli/internal/config"
	"bankcli/internal/domain"
	"bankcli/internal/limits"
	"bankcli/internal/store"
)

type UI struct {
	cfg          config.Config
	session      *store.SessionStore
	accounts     *store.AccountStore
	transactions *store.TransactionStore
	in           *bufio.Reader
	out          io.Writer
	eof          bool
}

func NewUI(
	cfg config.Config,
	session *store.SessionStore,
	accounts *store.AccountStore,
	transactions *store.TransactionStore,
	in *bufio.Reader,
	out io.Writer,
) *UI {
	return &UI{
		cfg:          cfg,
		session:      session,
		accounts:     accounts,
		transactions: transactions,
		in:           in,
		out:          out,
	}
}

// Run drives the menu loop until the user quits or input ends.
func (ui *UI) Run(ctx context.Context) {
	for ctx.Err() == nil && !ui.eof {
		if !ui.session.Session().IsAuthenticated {
			if !ui.authMenu(ctx) {
				return
			}
			continue
		}
		if !ui.mainMenu(ctx) {
			return
		}
	}
}

func (ui *UI) authMenu(ctx context.Context) bool {
	fmt.Fprintln(ui.out, "\n=== Banking App ===")
	fmt.Fprintln(ui.out, "1) Sign in")
	fmt.Fprintln(ui.out, "2) Create an account")
	fmt.Fprintln(ui.out, "0) Exit")
	switch ui.prompt("> ") {
	case "1":
		ui.handleLogin(ctx)
	case "2":
		ui.handleRegister(ctx)
	case "0":
		return false
	}
	return true
}

func (ui *UI) handleLogin(ctx context.Context) {
	username := ui.prompt("Username: ")
	password := ui.prompt("Password: ")
	if username == "" || password == "" {
		fmt.Fprintln(ui.out, "Please fill in all fields")
		return
	}
	if err := ui.session.Login(ctx, domain.Credentials{Username: username, Password: password}); err != nil {
		ui.showSessionError()
		return
	}
	if state := ui.session.Session(); state.User != nil {
		fmt.Fprintf(ui.out, "Welcome back, %s!\n", state.User.FullName)
	}
}

func (ui *UI) handleRegister(ctx context.Context) {
	fullName := ui.prompt("Full name: ")
	username := ui.prompt("Username: ")
	email := ui.prompt("Email: ")
	phone := ui.prompt("Phone number: ")
	password := ui.prompt("Password: ")
	confirm := ui.prompt("Confirm password: ")

	if fullName == "" || username == "" || email == "" || password == "" {
		fmt.Fprintln(ui.out, "Please fill in all required fields")
		return
	}
	// Confirmation matching is checked here, before the store is
	// involved; it is not session state.
	if password != confirm {
		fmt.Fprintln(ui.out, "Passwords do not match")
		return
	}
	if len(password) < 6 {
		fmt.Fprintln(ui.out, "Password must be at least 6 characters")
		return
	}

	err := ui.session.Register(ctx, domain.Registration{
		Username:    username,
		Email:       email,
		Password:    password,
		FullName:    fullName,
		PhoneNumber: phone,
	})
	if err != nil {
		ui.showSessionError()
		return
	}
	fmt.Fprintf(ui.out, "Account created. Welcome, %s!\n", fullName)
}

func (ui *UI) mainMenu(ctx context.Context) bool {
	if err := ui.accounts.FetchAccounts(ctx); err != nil {
		fmt.Fprintln(ui.out, "Error:", ui.accounts.Err())
		ui.accounts.ClearError()
		if !ui.session.Session().IsAuthenticated {
			return true
		}
	}
	ui.showDashboard()

	fmt.Fprintln(ui.out, "\n1) Select account")
	fmt.Fprintln(ui.out, "2) Transaction history")
	fmt.Fprintln(ui.out, "3) Deposit")
	fmt.Fprintln(ui.out, "4) Withdraw")
	fmt.Fprintln(ui.out, "5) Transfer")
	fmt.Fprintln(ui.out, "6) Open a new account")
	fmt.Fprintln(ui.out, "7) Sign out")
	fmt.Fprintln(ui.out, "0) Quit")
	switch ui.prompt("> ") {
	case "1":
		ui.handleSelectAccount()
	case "2":
		ui.showTransactions(ctx)
	case "3":
		ui.handleDeposit(ctx)
	case "4":
		ui.handleWithdraw(ctx)
	case "5":
		ui.handleTransfer(ctx)
	case "6":
		ui.handleCreateAccount(ctx)
	case "7":
		ui.session.Logout()
		fmt.Fprintln(ui.out, "Signed out.")
	case "0":
		return false
	}
	return true
}

func (ui *UI) showDashboard() {
	state := ui.session.Session()
	if state.User != nil {
		fmt.Fprintf(ui.out, "\n=== Dashboard — %s ===\n", state.User.FullName)
	}
	accounts := ui.accounts.Accounts()
	if len(accounts) == 0 {
		fmt.Fprintln(ui.out, "No accounts yet.")
		return
	}
	selectedID := ui.accounts.SelectedID()
	for _, account := range accounts {
		marker := " "
		if account.AccountID == selectedID {
			marker = "*"
		}
		fmt.Fprintf(ui.out, "%s %s  %-8s  %s\n",
			marker,
			FormatAccountNumber(account.AccountNumber),
			account.AccountType,
			FormatBalance(account.Balance, account.Currency),
		)
	}
}

func (ui *UI) handleSelectAccount() {
	accounts := ui.accounts.Accounts()
	for i, account := range accounts {
		fmt.Fprintf(ui.out, "%d) %s (%s)\n", i+1, FormatAccountNumber(account.AccountNumber), account.AccountType)
	}
	choice := ui.prompt("Account number to use: ")
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(accounts) {
		fmt.Fprintln(ui.out, "No such account")
		return
	}
	ui.accounts.SelectAccount(accounts[idx-1].AccountID)
}

func (ui *UI) showTransactions(ctx context.Context) {
	selected, ok := ui.accounts.Selected()
	if !ok {
		fmt.Fprintln(ui.out, "Select an account first")
		return
	}
	if err := ui.transactions.FetchTransactions(ctx, selected.AccountNumber); err != nil {
		fmt.Fprintln(ui.out, "Error:", ui.transactions.Err())
		ui.transactions.ClearError()
		return
	}
	history := ui.transactions.Transactions()
	if len(history) == 0 {
		fmt.Fprintln(ui.out, "No transactions yet.")
		return
	}
	fmt.Fprintf(ui.out, "\nTransactions for %s:\n", FormatAccountNumber(selected.AccountNumber))
	for _, tx := range history {
		fmt.Fprintf(ui.out, "%-20s %s%-12s %-10s %-10s %s\n",
			tx.TransactionDate,
			TransactionSign(tx.Type),
			FormatCurrency(tx.Amount, selected.Currency),
			tx.Type,
			tx.Status,
			tx.Description,
		)
	}
}

func (ui *UI) handleDeposit(ctx context.Context) {
	selected, ok := ui.accounts.Selected()
	if !ok {
		fmt.Fprintln(ui.out, "Select an account first")
		return
	}
	amount, ok := ui.promptAmount()
	if !ok {
		return
	}
	description := ui.promptDefault("Description: ", "Deposit")

	_, err := ui.transactions.Deposit(ctx, domain.DepositRequest{
		AccountNumber: selected.AccountNumber,
		Amount:        amount,
		Description:   description,
	})
	ui.finishMoneyMovement(ctx, err, "Deposit successful!")
}

func (ui *UI) handleWithdraw(ctx context.Context) {
	selected, ok := ui.accounts.Selected()
	if !ok {
		fmt.Fprintln(ui.out, "Select an account first")
		return
	}
	fmt.Fprintf(ui.out, "Available balance: %s\n", FormatBalance(selected.Balance, selected.Currency))
	amount, ok := ui.promptAmount()
	if !ok {
		return
	}
	description := ui.promptDefault("Description: ", "Withdraw")

	_, err := ui.transactions.Withdraw(ctx, domain.WithdrawRequest{
		AccountNumber: selected.AccountNumber,
		Amount:        amount,
		Description:   description,
	})
	ui.finishMoneyMovement(ctx, err, "Withdrawal successful!")
}

func (ui *UI) handleTransfer(ctx context.Context) {
	selected, ok := ui.accounts.Selected()
	if !ok {
		fmt.Fprintln(ui.out, "Select an account first")
		return
	}
	to := ui.prompt("Destination account number: ")
	if to == "" {
		fmt.Fprintln(ui.out, "Please fill in all required fields")
		return
	}
	amount, ok := ui.promptAmount()
	if !ok {
		return
	}
	description := ui.promptDefault("Description: ", "Transfer")

	_, err := ui.transactions.Transfer(ctx, domain.TransferRequest{
		FromAccountNumber: selected.AccountNumber,
		ToAccountNumber:   to,
		Amount:            amount,
		Description:       description,
	})
	ui.finishMoneyMovement(ctx, err, "Transfer successful!")
}

// finishMoneyMovement reports the outcome and, on success, refetches
// accounts so the dashboard shows the backend's balance rather than a
// locally derived one.
func (ui *UI) finishMoneyMovement(ctx context.Context, err error, success string) {
	var violation *limits.Violation
	if errors.As(err, &violation) {
		fmt.Fprintln(ui.out, violation.Reason)
		return
	}
	if err != nil {
		fmt.Fprintln(ui.out, "Error:", ui.transactions.Err())
		ui.transactions.ClearError()
		return
	}
	fmt.Fprintln(ui.out, success)
	if err := ui.accounts.FetchAccounts(ctx); err != nil {
		fmt.Fprintln(ui.out, "Error:", ui.accounts.Err())
		ui.accounts.ClearError()
	}
}

func (ui *UI) handleCreateAccount(ctx context.Context) {
	fmt.Fprintln(ui.out, "1) Savings  2) Checking  3) Current")
	var accountType domain.AccountType
	switch ui.prompt("Account type: ") {
	case "1":
		accountType = domain.AccountTypeSavings
	case "2":
		accountType = domain.AccountTypeChecking
	case "3":
		accountType = domain.AccountTypeCurrent
	default:
		fmt.Fprintln(ui.out, "No such account type")
		return
	}
	deposit, ok := ui.promptFloat("Initial deposit: ")
	if !ok || deposit < 0 {
		fmt.Fprintln(ui.out, "Invalid amount")
		return
	}
	currency := ui.promptDefault("Currency: ", ui.cfg.DefaultCurrency)

	account, err := ui.accounts.CreateAccount(ctx, domain.NewAccount{
		AccountType:    accountType,
		InitialDeposit: deposit,
		Currency:       currency,
	})
	if err != nil {
		fmt.Fprintln(ui.out, "Error:", ui.accounts.Err())
		ui.accounts.ClearError()
		return
	}
	fmt.Fprintf(ui.out, "Account %s created.\n", FormatAccountNumber(account.AccountNumber))
}

func (ui *UI) showSessionError() {
	if msg := ui.session.Session().Error; msg != "" {
		fmt.Fprintln(ui.out, "Error:", msg)
	}
	ui.session.ClearError()
}

func (ui *UI) promptAmount() (float64, bool) {
	amount, ok := ui.promptFloat("Amount: ")
	if !ok {
		fmt.Fprintln(ui.out, "Invalid amount")
		return 0, false
	}
	return amount, true
}

func (ui *UI) promptFloat(label string) (float64, bool) {
	raw := ui.prompt(label)
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func (ui *UI) promptDefault(label, fallback string) string {
	if value := ui.prompt(label); value != "" {
		return value
	}
	return fallback
}

func (ui *UI) prompt(label string) string {
	fmt.Fprint(ui.out, label)
	line, err := ui.in.ReadString('\n')
	if err != nil {
		ui.eof = true
	}
	return strings.TrimSpace(line)
}
