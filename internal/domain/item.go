// internal/domain/item.go
package domain

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ItemStatus is the lifecycle state of a sellable item. The values are the wire
// and storage representation.
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "tersedia"
	ItemStatusReserved  ItemStatus = "reserved"
	ItemStatusSold      ItemStatus = "terjual"
)

// Valid reports whether s is one of the known item statuses.
func (s ItemStatus) Valid() bool {
	return s == ItemStatusAvailable || s == ItemStatusReserved || s == ItemStatusSold
}

// Item is a sellable inventory record. SellingPrice, DateSold, SoldPlatforms
// and ClientID are only meaningful while Status is sold. The wallet receiving
// the sale proceeds is not stored here; the durable link lives on the sale
// transaction.
type Item struct {
	ID            int64           `db:"id" json:"id"`
	UserID        int64           `db:"user_id" json:"user_id"`
	Name          string          `db:"name" json:"name"`
	Category      string          `db:"category" json:"category"`
	CostPrice     decimal.Decimal `db:"cost_price" json:"cost_price"`
	SellingPrice  decimal.Decimal `db:"selling_price" json:"selling_price"`
	Status        ItemStatus      `db:"status" json:"status"`
	DateBought    *time.Time      `db:"date_bought" json:"date_bought"`
	DateSold      *time.Time      `db:"date_sold" json:"date_sold"`
	Platforms     pq.StringArray  `db:"platforms" json:"platforms"`
	SoldPlatforms pq.StringArray  `db:"sold_platforms" json:"sold_platforms"`
	ImageURL      *string         `db:"image_url" json:"image_url"`
	ClientID      *int64          `db:"client_id" json:"client_id"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// Profit is the margin realised on a sold item.
func (i *Item) Profit() decimal.Decimal {
	return i.SellingPrice.Sub(i.CostPrice)
}
