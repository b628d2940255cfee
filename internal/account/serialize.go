package account

import (
	"strings"

	"github.com/google/uuid"
	"github.com/loftchat/loft-server/internal/models"
)

// newAccountFromRegistration maps registration input onto an Account row.
// The identifier comes from the session store and the creation timestamp is
// assigned by the record store; neither is ever read from client input.
func newAccountFromRegistration(user SessionUser, reg RegistrationData) *models.Account {
	return &models.Account{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   reg.FirstName,
		LastName:    reg.LastName,
		UserName:    reg.UserName,
		Bio:         reg.Bio,
		PhoneNumber: reg.PhoneNumber,
	}
}

// newAccountFromSession builds the lazily-created row for identities that
// bypassed explicit registration (e.g. third-party sign-in). Display fields
// come from the provider's user metadata.
func newAccountFromSession(user SessionUser) *models.Account {
	return &models.Account{
		ID:        user.ID,
		Email:     user.Email,
		UserName:  user.UserName,
		AvatarURL: user.AvatarURL,
	}
}

// displayName renders the chat-facing name as "first last".
func displayName(acct *models.Account) string {
	return strings.TrimSpace(acct.FirstName + " " + acct.LastName)
}

// avatarObjectName derives a globally-unique storage name from the uploaded
// filename: a random UUID plus the extension after the last dot. Filenames
// without a dot are rejected.
func avatarObjectName(filename string) (string, error) {
	i := strings.LastIndex(filename, ".")
	if i < 0 || i == len(filename)-1 {
		return "", ErrNoFileExtension
	}
	return uuid.New().String() + filename[i:], nil
}
