package account

import (
	"errors"
	"fmt"
)

// ErrConflict is returned by a RecordStore insert when a row with the same
// identifier already exists. The lazy-creation path converts it into a
// re-fetch instead of surfacing it.
var ErrConflict = errors.New("account already exists")

// ErrNoFileExtension rejects avatar uploads whose filename carries no
// extension; the storage name format requires one.
var ErrNoFileExtension = errors.New("filename has no extension")

// AuthError is a credential or session failure reported by the session store.
type AuthError struct {
	Code    string
	Message string
	Status  int
}

func (e *AuthError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("auth: %s (%s)", e.Message, e.Code)
	}
	return "auth: " + e.Message
}

// StoreError wraps a failure from the user record store or the blob store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
