package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"     // aguardando preparo
	OrderStatusInProgress OrderStatus = "in_progress" // em preparo
	OrderStatusDone       OrderStatus = "done"        // entregue
)

type OrderSource string

const (
	OrderSourceTableQR OrderSource = "table_qr" // pedido feito pelo QR da mesa
	OrderSourceCounter OrderSource = "counter"  // pedido feito no balcão
)

// Order: um pedido de um cliente dentro de uma sessão
type Order struct {
	ID            uint `gorm:"primaryKey"`
	SessionID     uint `gorm:"index;not null"`
	Session       Session
	Code          string       `gorm:"size:50;not null"`
	CustomerName  *string      `gorm:"size:100"`
	CustomerPhone *string      `gorm:"size:30"`
	Notes         *string      `gorm:"size:255"` // observação geral do pedido
	Status        OrderStatus  `gorm:"size:20;not null"`
	Source        *OrderSource `gorm:"size:20"` // table_qr / counter (nulo em registros antigos)
	TableCode     *string      `gorm:"size:20"` // só faz sentido quando source = table_qr
	Subtotal      float64      `gorm:"not null"`
	CreatedAt     time.Time    `gorm:"index"`
	UpdatedAt     time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}
