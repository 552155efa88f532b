package main

import (
	"bufio"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bankcli/internal/cli"
	"bankcli/internal/config"
	"bankcli/internal/gateway"
	"bankcli/internal/limits"
	"bankcli/internal/store"
	"bankcli/internal/tokenstore"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	var tokens tokenstore.Store
	fileStore, err := tokenstore.NewFileStore(cfg.TokenFile, cfg.TokenEncryptionKey)
	if err != nil {
		log.Printf("token file unavailable, session will not survive restarts: %v", err)
		tokens = tokenstore.NewMemoryStore()
	} else {
		tokens = fileStore
	}

	gw := gateway.New(cfg.APIBaseURL, cfg.RequestTimeout)
	checker := limits.NewChecker(cfg.DepositCeiling, cfg.WithdrawalCeiling)

	session := store.NewSessionStore(gw, tokens)
	accounts := store.NewAccountStore(gw)
	transactions := store.NewTransactionStore(gw, checker, accounts)

	if err := session.Restore(); err != nil {
		log.Printf("failed to restore session: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui := cli.NewUI(cfg, session, accounts, transactions, bufio.NewReader(os.Stdin), os.Stdout)
	ui.Run(ctx)
}
