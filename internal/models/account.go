package models

import "time"

// Account is the durable profile row. Its ID is the session store's user id,
// so one row exists per authenticated identity.
type Account struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	UserName    string    `json:"user_name"`
	Bio         string    `json:"bio"`
	PhoneNumber string    `json:"phone_number"`
	AvatarURL   string    `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Account) TableName() string {
	return "users"
}

// ProfilePatch is a partial update of the mutable Account columns. Nil fields
// are left untouched by the store.
type ProfilePatch struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	UserName    *string `json:"user_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// Columns renders the patch as column/value pairs, skipping absent fields.
func (p ProfilePatch) Columns() map[string]any {
	cols := make(map[string]any)
	set := func(name string, v *string) {
		if v != nil {
			cols[name] = *v
		}
	}
	set("first_name", p.FirstName)
	set("last_name", p.LastName)
	set("user_name", p.UserName)
	set("bio", p.Bio)
	set("email", p.Email)
	set("phone_number", p.PhoneNumber)
	set("avatar_url", p.AvatarURL)
	return cols
}

// IsEmpty reports whether the patch carries no fields at all.
func (p ProfilePatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}
