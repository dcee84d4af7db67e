package models

import "time"

// OrderItem: uma linha de drink dentro de um pedido.
// A coluna notes é opcional: instalações antigas do banco não a têm, e a
// exportação precisa funcionar mesmo assim (ver internal/export).
type OrderItem struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index;not null"`
	Order     Order
	DrinkName string    `gorm:"size:100;not null"`
	Qty       int       `gorm:"not null"`
	UnitPrice float64   `gorm:"not null"`
	LineTotal float64   `gorm:"not null"` // Qty * UnitPrice
	Notes     *string   `gorm:"size:255"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
