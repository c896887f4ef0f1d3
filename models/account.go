package models

import "time"

// Account represents a registered archive owner.
// It carries identity attributes and the stored password hash.
// Sensitive fields must never be exposed outside trusted boundaries.
type Account struct {
	// ID is the internal unique identifier of the account.
	// It is not exposed via JSON and is used only at the persistence layer.
	ID int64 `json:"-"`

	// Email is the unique account identifier used during authentication.
	Email string `json:"email"`

	// Name is the display name of the account owner.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// PasswordHash stores the one-way PBKDF2 representation of the login
	// password in "salt:hash" form. It can never be used as decryption key
	// material; the raw password cached at login serves that purpose.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}
