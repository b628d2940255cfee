package account

import (
	"strings"
	"testing"

	"github.com/loftchat/loft-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccountFromRegistration(t *testing.T) {
	user := SessionUser{ID: "user-7", Email: "a@b.com"}
	reg := RegistrationData{
		Email:       "client-says@evil.com", // ignored: email comes from the session store
		Password:    "Secret123",
		FirstName:   "A",
		LastName:    "B",
		UserName:    "ab",
		Bio:         "hi",
		PhoneNumber: "+7 999 000-00-00",
	}

	acct := newAccountFromRegistration(user, reg)
	assert.Equal(t, "user-7", acct.ID)
	assert.Equal(t, "a@b.com", acct.Email)
	assert.Equal(t, "A", acct.FirstName)
	assert.Equal(t, "B", acct.LastName)
	assert.Equal(t, "ab", acct.UserName)
	assert.Equal(t, "hi", acct.Bio)
	assert.Equal(t, "+7 999 000-00-00", acct.PhoneNumber)
	assert.True(t, acct.CreatedAt.IsZero(), "creation timestamp is store-assigned")
}

func TestNewAccountFromSession(t *testing.T) {
	acct := newAccountFromSession(SessionUser{
		ID:        "oauth-1",
		Email:     "c@d.com",
		UserName:  "cd",
		AvatarURL: "https://pics.test/c.png",
	})
	assert.Equal(t, "oauth-1", acct.ID)
	assert.Equal(t, "c@d.com", acct.Email)
	assert.Equal(t, "cd", acct.UserName)
	assert.Equal(t, "https://pics.test/c.png", acct.AvatarURL)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "A B", displayName(&models.Account{FirstName: "A", LastName: "B"}))
	assert.Equal(t, "A", displayName(&models.Account{FirstName: "A"}))
	assert.Equal(t, "", displayName(&models.Account{}))
}

func TestAvatarObjectName(t *testing.T) {
	name, err := avatarObjectName("pic.png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))
	// 36-char UUID plus the extension.
	assert.Len(t, name, 36+len(".png"))

	other, err := avatarObjectName("pic.png")
	require.NoError(t, err)
	assert.NotEqual(t, name, other)

	name, err = avatarObjectName("archive.tar.gz")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".gz"))

	_, err = avatarObjectName("photo")
	assert.ErrorIs(t, err, ErrNoFileExtension)

	_, err = avatarObjectName("trailing.")
	assert.ErrorIs(t, err, ErrNoFileExtension)
}
