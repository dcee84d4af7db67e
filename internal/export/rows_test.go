package export

import (
	"testing"
	"time"

	"boteco-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourceOf(s models.OrderSource) *models.OrderSource { return &s }

func TestNormalizeSource(t *testing.T) {
	unknown := models.OrderSource("kiosk")

	tests := []struct {
		name      string
		order     models.Order
		wantLabel string
		wantTable string
	}{
		{
			name:      "mesa com QR expõe o código da mesa",
			order:     models.Order{Source: sourceOf(models.OrderSourceTableQR), TableCode: strPtr("M07")},
			wantLabel: "mesa_qr",
			wantTable: "M07",
		},
		{
			name:      "balcão",
			order:     models.Order{Source: sourceOf(models.OrderSourceCounter)},
			wantLabel: "balcao",
		},
		{
			name:      "origem nula vira balcão",
			order:     models.Order{},
			wantLabel: "balcao",
		},
		{
			name:      "origem desconhecida vira balcão e ignora mesa gravada",
			order:     models.Order{Source: &unknown, TableCode: strPtr("M03")},
			wantLabel: "balcao",
		},
		{
			name:      "balcão ignora código de mesa gravado",
			order:     models.Order{Source: sourceOf(models.OrderSourceCounter), TableCode: strPtr("M03")},
			wantLabel: "balcao",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, table := normalizeSource(tt.order)
			assert.Equal(t, tt.wantLabel, label)
			assert.Equal(t, tt.wantTable, table)
		})
	}
}

func TestDenormalize_OrderWithoutItems(t *testing.T) {
	sess := testSession()
	orderList := []models.Order{
		{ID: 1, Code: "PED-0001", Status: models.OrderStatusDone, Subtotal: 37.5},
	}

	rows, err := Denormalize(sess, orderList, map[uint][]models.OrderItem{})

	require.NoError(t, err)
	require.Len(t, rows, 1, "pedido sem itens rende exatamente uma linha")
	assert.False(t, rows[0].HasItem)
	assert.Equal(t, "PED-0001", rows[0].OrderCode)
	assert.Equal(t, 37.5, rows[0].OrderSubtotal)
}

func TestDenormalize_RepeatsSubtotalPerItem(t *testing.T) {
	sess := testSession()
	orderList := []models.Order{
		{ID: 1, Code: "PED-0001", Status: models.OrderStatusPending, Subtotal: 50},
	}
	itemsByOrder := map[uint][]models.OrderItem{
		1: {
			{OrderID: 1, DrinkName: "Caipirinha", Qty: 2, UnitPrice: 15, LineTotal: 30},
			{OrderID: 1, DrinkName: "Chopp", Qty: 2, UnitPrice: 10, LineTotal: 20},
		},
	}

	rows, err := Denormalize(sess, orderList, itemsByOrder)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.True(t, r.HasItem)
		assert.Equal(t, 50.0, r.OrderSubtotal, "subtotal do pedido se repete em toda linha")
		assert.Equal(t, "PED-0001", r.OrderCode)
	}
	assert.Equal(t, "Caipirinha", rows[0].DrinkName)
	assert.Equal(t, "Chopp", rows[1].DrinkName)
}

func TestDenormalize_KeepsOrderSequence(t *testing.T) {
	sess := testSession()
	newer := time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC)
	older := time.Date(2024, 6, 1, 19, 0, 0, 0, time.UTC)
	// o Collector entrega os pedidos mais recentes primeiro; a denormalização
	// apenas preserva essa ordem
	orderList := []models.Order{
		{ID: 2, Code: "PED-0002", CreatedAt: newer},
		{ID: 1, Code: "PED-0001", CreatedAt: older},
	}
	itemsByOrder := map[uint][]models.OrderItem{
		1: {{OrderID: 1, DrinkName: "Negroni", Qty: 1, UnitPrice: 28, LineTotal: 28}},
	}

	rows, err := Denormalize(sess, orderList, itemsByOrder)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "PED-0002", rows[0].OrderCode)
	assert.Equal(t, "PED-0001", rows[1].OrderCode)
}

func TestDenormalize_UnknownOrderIDIsInternalError(t *testing.T) {
	sess := testSession()
	orderList := []models.Order{{ID: 1, Code: "PED-0001"}}
	itemsByOrder := map[uint][]models.OrderItem{
		99: {{OrderID: 99, DrinkName: "Fantasma"}},
	}

	_, err := Denormalize(sess, orderList, itemsByOrder)

	assert.Error(t, err)
}
