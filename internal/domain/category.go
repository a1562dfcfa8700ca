// internal/domain/category.go
package domain

import "time"

// Category is a user-defined label for items and for expense/income
// transactions.
type Category struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Color     *string   `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Profile holds the user-facing settings for an account.
type Profile struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	Username  *string   `db:"username" json:"username"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
