package export

import (
	"context"
	"strings"

	"boteco-backend/internal/models"
)

// ResolveSession valida o identificador e busca exatamente uma sessão.
func ResolveSession(ctx context.Context, st Store, sessionID string) (*models.Session, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return nil, ErrInvalidIdentifier
	}

	sess, err := st.FindSession(ctx, id)
	if err != nil {
		return nil, &UpstreamError{Stage: StageSession, Err: err}
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// CollectOrders busca todos os pedidos da sessão, mais recentes primeiro.
// Sessão sem pedidos é válida: o relatório sai só com o cabeçalho.
func CollectOrders(ctx context.Context, st Store, sessionID string) ([]models.Order, error) {
	orderList, err := st.FindOrders(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return nil, &UpstreamError{Stage: StageOrders, Err: err}
	}
	return orderList, nil
}

// ReconcileItems busca os itens dos pedidos, agrupados por pedido.
//
// A coluna notes dos itens é opcional: a primeira tentativa a inclui; se a
// consulta falhar, repete uma única vez sem ela e os itens voltam com Notes
// nulo. A degradação é silenciosa: quando só o fallback funciona o chamador
// não vê erro, apenas perde as observações dos itens.
func ReconcileItems(ctx context.Context, st Store, orderIDs []uint) (map[uint][]models.OrderItem, error) {
	grouped := make(map[uint][]models.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return grouped, nil
	}

	items, err := st.FindItems(ctx, orderIDs, true)
	if err != nil {
		items, err = st.FindItems(ctx, orderIDs, false)
		if err != nil {
			return nil, &UpstreamError{Stage: StageItems, Err: err}
		}
		for i := range items {
			items[i].Notes = nil
		}
	}

	for _, it := range items {
		grouped[it.OrderID] = append(grouped[it.OrderID], it)
	}
	return grouped, nil
}

// BuildReport executa o pipeline completo: sessão -> pedidos -> itens ->
// linhas achatadas. Nada é emitido se qualquer estágio falhar.
func BuildReport(ctx context.Context, st Store, sessionID string) (*models.Session, []Row, error) {
	sess, err := ResolveSession(ctx, st, sessionID)
	if err != nil {
		return nil, nil, err
	}

	orderList, err := CollectOrders(ctx, st, sessionID)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uint, 0, len(orderList))
	for _, o := range orderList {
		ids = append(ids, o.ID)
	}

	itemsByOrder, err := ReconcileItems(ctx, st, ids)
	if err != nil {
		return nil, nil, err
	}

	rows, err := Denormalize(sess, orderList, itemsByOrder)
	if err != nil {
		return nil, nil, err
	}

	return sess, rows, nil
}
