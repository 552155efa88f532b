// Package limits validates money-movement amounts before any network
// call is issued. The backend remains the authority; the balance
// check here is advisory and only saves a guaranteed-to-fail round
// trip.
package limits

import (
	"fmt"
	"strconv"
)

// Violation is a pre-flight validation failure. It is surfaced to the
// caller directly and never written into a store's error field.
type Violation struct {
	Reason string
}

func (v *Violation) Error() string {
	return v.Reason
}

// Checker holds the per-transaction ceilings. Deposits and
// withdrawals are limited independently; transfers share the
// withdrawal ceiling since both move money out of the account.
type Checker struct {
	depositCeiling    float64
	withdrawalCeiling float64
}

func NewChecker(depositCeiling, withdrawalCeiling float64) *Checker {
	return &Checker{
		depositCeiling:    depositCeiling,
		withdrawalCeiling: withdrawalCeiling,
	}
}

func (c *Checker) CheckDeposit(amount float64) error {
	if amount <= 0 {
		return &Violation{Reason: "Amount must be greater than zero"}
	}
	if amount > c.depositCeiling {
		return &Violation{Reason: fmt.Sprintf("Maximum deposit amount is %.2f", c.depositCeiling)}
	}
	return nil
}

func (c *Checker) CheckWithdrawal(amount float64, knownBalance string) error {
	if amount <= 0 {
		return &Violation{Reason: "Amount must be greater than zero"}
	}
	if amount > c.withdrawalCeiling {
		return &Violation{Reason: fmt.Sprintf("Maximum withdrawal amount is %.2f", c.withdrawalCeiling)}
	}
	return c.checkBalance(amount, knownBalance)
}

func (c *Checker) CheckTransfer(amount float64, knownBalance string) error {
	if amount <= 0 {
		return &Violation{Reason: "Amount must be greater than zero"}
	}
	if amount > c.withdrawalCeiling {
		return &Violation{Reason: fmt.Sprintf("Maximum transfer amount is %.2f", c.withdrawalCeiling)}
	}
	return c.checkBalance(amount, knownBalance)
}

// checkBalance compares against the last fetched balance. An
// unparseable balance skips the check rather than blocking the user
// on stale display data.
func (c *Checker) checkBalance(amount float64, knownBalance string) error {
	balance, err := strconv.ParseFloat(knownBalance, 64)
	if err != nil {
		return nil
	}
	if amount > balance {
		return &Violation{Reason: "Insufficient funds"}
	}
	return nil
}
