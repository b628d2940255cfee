// Package account composes the hosted session store, user record store, blob
// store and messaging directory into the application-level account operations:
// current-account resolution, registration, login, logout, profile updates and
// avatar uploads.
package account

import (
	"context"
	"io"

	"github.com/loftchat/loft-server/internal/models"
)

// SessionUser is the identity the session store binds to an access token.
// UserName and AvatarURL come from provider metadata and may be empty for
// accounts registered with email/password.
type SessionUser struct {
	ID        string
	Email     string
	UserName  string
	AvatarURL string
}

// Session is an authenticated session context. It is passed explicitly into
// every operation that requires one; the service keeps no ambient state.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         SessionUser
}

// RegistrationData is the client input to Register. Identifier and creation
// timestamp are never taken from here; they are assigned by the stores.
type RegistrationData struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	UserName    string `json:"user_name"`
	Bio         string `json:"bio"`
	PhoneNumber string `json:"phone_number"`
}

// SessionStore is the hosted identity provider.
type SessionStore interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	// UserFromToken resolves the identity behind an access token. An invalid
	// or expired token is an *AuthError.
	UserFromToken(ctx context.Context, accessToken string) (*SessionUser, error)
}

// RecordStore holds the Account rows, keyed by session-store user id.
type RecordStore interface {
	// FindByID returns (nil, nil) when no row exists.
	FindByID(ctx context.Context, id string) (*models.Account, error)
	// Insert returns ErrConflict when a row with the same id already exists.
	Insert(ctx context.Context, acct *models.Account) (*models.Account, error)
	Update(ctx context.Context, id string, patch models.ProfilePatch) error
}

// BlobStore holds avatar objects and exposes them under a public URL prefix.
type BlobStore interface {
	Upload(ctx context.Context, name string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, name string) error
	PublicURL(name string) string
}

// MessagingDirectory mirrors account identities into the chat provider. Every
// call is best-effort from this package's point of view: failures are emitted
// as notices, never returned to the caller.
type MessagingDirectory interface {
	CreateIdentity(ctx context.Context, id, displayName, avatarURL string) error
	OpenSession(ctx context.Context, id string) error
	CloseSession(ctx context.Context, id string) error
}

// NoticeKind classifies secondary, non-fatal events.
type NoticeKind string

const (
	// NoticeMessagingSyncFailed records a failed best-effort call to the
	// messaging directory.
	NoticeMessagingSyncFailed NoticeKind = "messaging_sync_failed"
	// NoticeOrphanedBlobRemoved records the compensating delete of an avatar
	// object whose row update failed.
	NoticeOrphanedBlobRemoved NoticeKind = "orphaned_blob_removed"
)

// Notice is an observable side-channel event. The primary result of an
// operation is never affected by the conditions a Notice reports.
type Notice struct {
	Kind      NoticeKind
	AccountID string
	Op        string
	Err       error
}
