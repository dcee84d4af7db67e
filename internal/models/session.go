package models

import "time"

// Session: uma sessão de operação (um turno do bar) que agrupa pedidos
type Session struct {
	ID       uint       `gorm:"primaryKey"`
	Code     string     `gorm:"size:50;uniqueIndex;not null"`
	OpenedAt time.Time  `gorm:"index;not null"` // abertura da sessão
	ClosedAt *time.Time // nulo enquanto a sessão estiver aberta

	CreatedAt time.Time
	UpdatedAt time.Time

	Orders []Order `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}
