package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item with its available stock.
type Product struct {
	ID        uuid.UUID
	Name      string
	Price     decimal.Decimal
	Quantity  int
	CreatedAt time.Time
}
