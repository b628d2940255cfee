package account

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/loftchat/loft-server/internal/models"
)

// Service is the account orchestration layer. All four collaborators are
// hosted services; the only state here is wiring.
type Service struct {
	sessions SessionStore
	records  RecordStore
	avatars  BlobStore
	chat     MessagingDirectory
	notify   func(Notice)
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier replaces the default log-line notifier. Primarily for tests
// that need to observe best-effort failures.
func WithNotifier(fn func(Notice)) Option {
	return func(s *Service) { s.notify = fn }
}

func NewService(sessions SessionStore, records RecordStore, avatars BlobStore, chat MessagingDirectory, opts ...Option) *Service {
	s := &Service{
		sessions: sessions,
		records:  records,
		avatars:  avatars,
		chat:     chat,
		notify: func(n Notice) {
			log.Printf("notice: %s account=%s op=%s: %v", n.Kind, n.AccountID, n.Op, n.Err)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetCurrent resolves the account behind an access token. An empty or invalid
// token means "no account" and returns (nil, nil): the absence of a session is
// a normal state, not an error. A session whose row is missing gets the row
// created lazily from session-supplied fields; this covers identities that
// never went through Register, such as third-party sign-ins.
func (s *Service) GetCurrent(ctx context.Context, accessToken string) (*models.Account, error) {
	if accessToken == "" {
		return nil, nil
	}
	user, err := s.sessions.UserFromToken(ctx, accessToken)
	if err != nil {
		return nil, nil
	}

	acct, err := s.records.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		created, err := s.records.Insert(ctx, newAccountFromSession(*user))
		if errors.Is(err, ErrConflict) {
			// Lost a concurrent-tab race; the winner's row is the account.
			return s.records.FindByID(ctx, user.ID)
		}
		if err != nil {
			return nil, err
		}
		// No messaging side effect on the lazy-creation path.
		return created, nil
	}

	s.openChatSession(ctx, user.ID)
	return acct, nil
}

// Register creates the session-store identity, inserts the serialized Account
// row, and mirrors the identity into the messaging directory. The mirror is
// best-effort; a row-insert failure leaves the already-created identity
// without a row, which this layer cannot undo.
func (s *Service) Register(ctx context.Context, reg RegistrationData) (*models.Account, *Session, error) {
	sess, err := s.sessions.SignUp(ctx, reg.Email, reg.Password)
	if err != nil {
		return nil, nil, err
	}

	acct, err := s.records.Insert(ctx, newAccountFromRegistration(sess.User, reg))
	if err != nil {
		return nil, nil, err
	}

	if cerr := s.chat.CreateIdentity(ctx, acct.ID, displayName(acct), acct.AvatarURL); cerr != nil {
		s.notify(Notice{Kind: NoticeMessagingSyncFailed, AccountID: acct.ID, Op: "create_identity", Err: cerr})
	}
	return acct, sess, nil
}

// Login authenticates and returns the existing Account row. A missing row for
// a valid identity is a data-integrity failure and is surfaced, not healed.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Account, *Session, error) {
	sess, err := s.sessions.SignIn(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	acct, err := s.records.FindByID(ctx, sess.User.ID)
	if err != nil {
		return nil, nil, err
	}
	if acct == nil {
		return nil, nil, &StoreError{Op: "find account", Err: errors.New("no row for authenticated user " + sess.User.ID)}
	}

	s.openChatSession(ctx, sess.User.ID)
	return acct, sess, nil
}

// Logout destroys the session-store session and best-effort closes the chat
// session.
func (s *Service) Logout(ctx context.Context, sess Session) error {
	if err := s.sessions.SignOut(ctx, sess.AccessToken); err != nil {
		return err
	}
	if cerr := s.chat.CloseSession(ctx, sess.User.ID); cerr != nil {
		s.notify(Notice{Kind: NoticeMessagingSyncFailed, AccountID: sess.User.ID, Op: "close_session", Err: cerr})
	}
	return nil
}

// UpdateProfile patches the session owner's row and returns the patch as
// applied. Callers must not assume the result reflects server-computed fields.
// A nil session is a caller bug and a no-op.
func (s *Service) UpdateProfile(ctx context.Context, sess *Session, patch models.ProfilePatch) (*models.ProfilePatch, error) {
	if sess == nil {
		return nil, nil
	}
	if err := s.records.Update(ctx, sess.User.ID, patch); err != nil {
		return nil, err
	}
	return &patch, nil
}

// UploadAvatar stores the file under "<uuid>.<ext>", rewrites the row's
// avatar_url to the object's public URL, and returns that URL. If the row
// update fails after a successful upload, the orphaned object is removed
// best-effort before the error propagates.
func (s *Service) UploadAvatar(ctx context.Context, sess *Session, filename string, body io.Reader, size int64, contentType string) (string, error) {
	if sess == nil {
		return "", nil
	}

	name, err := avatarObjectName(filename)
	if err != nil {
		return "", err
	}

	if err := s.avatars.Upload(ctx, name, body, size, contentType); err != nil {
		return "", err
	}

	url := s.avatars.PublicURL(name)
	if err := s.records.Update(ctx, sess.User.ID, models.ProfilePatch{AvatarURL: &url}); err != nil {
		if derr := s.avatars.Delete(ctx, name); derr == nil {
			s.notify(Notice{Kind: NoticeOrphanedBlobRemoved, AccountID: sess.User.ID, Op: "upload_avatar", Err: err})
		}
		return "", err
	}
	return url, nil
}

func (s *Service) openChatSession(ctx context.Context, id string) {
	if err := s.chat.OpenSession(ctx, id); err != nil {
		s.notify(Notice{Kind: NoticeMessagingSyncFailed, AccountID: id, Op: "open_session", Err: err})
	}
}
