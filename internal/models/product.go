package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a product in the store.
type Product struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	CategoryID    uint            `json:"category_id" gorm:"not null;index"`
	Category      *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Name          string          `json:"name" gorm:"type:varchar(255);not null"`
	Description   *string         `json:"description" gorm:"type:text"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null;index"`
	StockQuantity int             `json:"stock_quantity" gorm:"not null;default:0"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductChanges holds the fields of a partial product update. Nil fields are left untouched.
type ProductChanges struct {
	CategoryID    *uint
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int
}

// IsEmpty reports whether no field is being changed.
func (c ProductChanges) IsEmpty() bool {
	return c.CategoryID == nil && c.Name == nil && c.Description == nil &&
		c.Price == nil && c.StockQuantity == nil
}
