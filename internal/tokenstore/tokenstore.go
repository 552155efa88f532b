// Package tokenstore persists the one piece of durable client state:
// the bearer token. Accounts and transactions are always refetched.
package tokenstore

import "errors"

var ErrNotFound = errors.New("no stored token")

// Store is the durable key-value contract for the bearer token.
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}
