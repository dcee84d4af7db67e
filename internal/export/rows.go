package export

import (
	"fmt"
	"time"

	"boteco-backend/internal/models"
)

// Rótulos de origem exibidos no relatório.
const (
	sourceLabelTable   = "mesa_qr"
	sourceLabelCounter = "balcao"
)

// baseFields: campos de sessão+pedido repetidos em todas as linhas do pedido.
type baseFields struct {
	SessionCode     string
	SessionOpenedAt time.Time
	SessionClosedAt *time.Time
	OrderCode       string
	OrderCreatedAt  time.Time
	OrderStatus     string
	Source          string
	TableCode       string
	CustomerName    *string
	CustomerPhone   *string
	OrderNotes      *string
}

// Row: uma linha achatada do relatório — um item de um pedido, ou uma linha
// sintética de resumo para pedido sem itens.
type Row struct {
	baseFields

	HasItem       bool
	DrinkName     string
	Qty           int
	UnitPrice     float64
	LineTotal     float64
	ItemNotes     *string
	OrderSubtotal float64
}

// normalizeSource: origem gravada vira rótulo do relatório. Só table_qr expõe
// o código da mesa; qualquer outro valor (counter, nulo, desconhecido) vira
// balcão com mesa vazia, mesmo que haja código de mesa gravado.
func normalizeSource(o models.Order) (label, table string) {
	if o.Source != nil && *o.Source == models.OrderSourceTableQR {
		if o.TableCode != nil {
			table = *o.TableCode
		}
		return sourceLabelTable, table
	}
	return sourceLabelCounter, ""
}

// Denormalize junta sessão, pedidos e itens em linhas achatadas. A ordem dos
// pedidos (mais recentes primeiro) vira a ordem final das linhas; os itens
// preservam a ordem em que chegaram da consulta. O subtotal do pedido se
// repete em todas as linhas dele para cada linha ser autossuficiente na
// planilha.
func Denormalize(sess *models.Session, orderList []models.Order, itemsByOrder map[uint][]models.OrderItem) ([]Row, error) {
	known := make(map[uint]bool, len(orderList))
	for _, o := range orderList {
		known[o.ID] = true
	}
	for id := range itemsByOrder {
		if !known[id] {
			return nil, fmt.Errorf("itens agrupados sob pedido desconhecido: %d", id)
		}
	}

	rows := make([]Row, 0, len(orderList))
	for _, o := range orderList {
		label, table := normalizeSource(o)
		base := baseFields{
			SessionCode:     sess.Code,
			SessionOpenedAt: sess.OpenedAt,
			SessionClosedAt: sess.ClosedAt,
			OrderCode:       o.Code,
			OrderCreatedAt:  o.CreatedAt,
			OrderStatus:     string(o.Status),
			Source:          label,
			TableCode:       table,
			CustomerName:    o.CustomerName,
			CustomerPhone:   o.CustomerPhone,
			OrderNotes:      o.Notes,
		}

		items := itemsByOrder[o.ID]
		if len(items) == 0 {
			// pedido sem itens: uma linha de resumo com campos de item vazios
			rows = append(rows, Row{baseFields: base, OrderSubtotal: o.Subtotal})
			continue
		}

		for _, it := range items {
			rows = append(rows, Row{
				baseFields:    base,
				HasItem:       true,
				DrinkName:     it.DrinkName,
				Qty:           it.Qty,
				UnitPrice:     it.UnitPrice,
				LineTotal:     it.LineTotal,
				ItemNotes:     it.Notes,
				OrderSubtotal: o.Subtotal,
			})
		}
	}
	return rows, nil
}
