package export

import (
	"context"
	"errors"

	"boteco-backend/internal/models"

	"gorm.io/gorm"
)

// Store é a visão que o pipeline de exportação tem do banco. A interface é
// estreita de propósito: o pipeline não conhece gorm, e os testes usam um
// store falso.
type Store interface {
	// FindSession devolve a sessão, ou (nil, nil) quando não existe.
	// Erro de consulta não é a mesma coisa que resultado vazio.
	FindSession(ctx context.Context, id string) (*models.Session, error)

	// FindOrders devolve os pedidos da sessão, mais recentes primeiro.
	FindOrders(ctx context.Context, sessionID string) ([]models.Order, error)

	// FindItems devolve os itens dos pedidos em ordem de criação (ordem de
	// comanda). Com withNotes=false a coluna opcional notes fica fora do
	// SELECT; em bancos antigos sem a coluna, essa é a consulta que funciona.
	FindItems(ctx context.Context, orderIDs []uint, withNotes bool) ([]models.OrderItem, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	if db == nil {
		return nil
	}
	return &gormStore{db: db}
}

func (s *gormStore) FindSession(ctx context.Context, id string) (*models.Session, error) {
	var sess models.Session
	err := s.db.WithContext(ctx).First(&sess, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *gormStore) FindOrders(ctx context.Context, sessionID string) ([]models.Order, error) {
	var orderList []models.Order
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&orderList).Error
	if err != nil {
		return nil, err
	}
	return orderList, nil
}

func (s *gormStore) FindItems(ctx context.Context, orderIDs []uint, withNotes bool) ([]models.OrderItem, error) {
	cols := []string{"id", "order_id", "drink_name", "qty", "unit_price", "line_total", "created_at"}
	if withNotes {
		cols = append(cols, "notes")
	}

	var items []models.OrderItem
	err := s.db.WithContext(ctx).
		Select(cols).
		Where("order_id IN ?", orderIDs).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
