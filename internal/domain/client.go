// internal/domain/client.go
package domain

import "time"

// Client is a buyer the user sells to. Phones and Addresses are loaded
// alongside the client row when the full record is requested.
type Client struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Email     *string   `db:"email" json:"email"`
	Notes     *string   `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Phones    []ClientPhone   `db:"-" json:"phones,omitempty"`
	Addresses []ClientAddress `db:"-" json:"addresses,omitempty"`
}

// ClientPhone is one phone number attached to a client.
type ClientPhone struct {
	ID       int64   `db:"id" json:"id"`
	ClientID int64   `db:"client_id" json:"client_id"`
	Phone    string  `db:"phone" json:"phone"`
	Label    *string `db:"label" json:"label"`
}

// ClientAddress is one delivery address attached to a client.
type ClientAddress struct {
	ID       int64   `db:"id" json:"id"`
	ClientID int64   `db:"client_id" json:"client_id"`
	Address  string  `db:"address" json:"address"`
	Label    *string `db:"label" json:"label"`
}
