package orders

import (
	"strings"

	"boteco-backend/internal/database"
	"boteco-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateOrderItemRequest struct {
	DrinkName string  `json:"drink_name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
	Notes     *string `json:"notes"`
}

type CreateOrderRequest struct {
	CustomerName  *string                  `json:"customer_name"`
	CustomerPhone *string                  `json:"customer_phone"`
	Notes         *string                  `json:"notes"`
	Source        string                   `json:"source"`     // "table_qr" | "counter"
	TableCode     *string                  `json:"table_code"` // obrigatório quando source = table_qr
	Items         []CreateOrderItemRequest `json:"items"`
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

type OrderItemResponse struct {
	ID        uint    `json:"id"`
	DrinkName string  `json:"drink_name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
	Notes     *string `json:"notes"`
}

type OrderResponse struct {
	ID            uint                `json:"id"`
	SessionID     uint                `json:"session_id"`
	Code          string              `json:"code"`
	CustomerName  *string             `json:"customer_name"`
	CustomerPhone *string             `json:"customer_phone"`
	Notes         *string             `json:"notes"`
	Status        models.OrderStatus  `json:"status"`
	Source        *models.OrderSource `json:"source"`
	TableCode     *string             `json:"table_code"`
	Subtotal      float64             `json:"subtotal"`
	CreatedAt     string              `json:"created_at"`
	Items         []OrderItemResponse `json:"items"`
}

func toResponse(o models.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		SessionID:     o.SessionID,
		Code:          o.Code,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Notes:         o.Notes,
		Status:        o.Status,
		Source:        o.Source,
		TableCode:     o.TableCode,
		Subtotal:      o.Subtotal,
		CreatedAt:     o.CreatedAt.Format("2006-01-02 15:04:05"),
		Items:         make([]OrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:        it.ID,
			DrinkName: it.DrinkName,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
			Notes:     it.Notes,
		})
	}
	return resp
}

// POST /api/sessions/:id/orders
// Cria um pedido com itens dentro de uma sessão aberta.
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Params("id")

		var sess models.Session
		if err := database.DB.First(&sess, "id = ?", sessionID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sessão não encontrada")
		}
		if sess.ClosedAt != nil {
			return fiber.NewError(fiber.StatusConflict, "Sessão já está fechada, não aceita novos pedidos")
		}

		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		source := models.OrderSource(body.Source)
		switch source {
		case models.OrderSourceTableQR, models.OrderSourceCounter:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Origem inválida (table_qr|counter)")
		}

		if source == models.OrderSourceTableQR {
			if body.TableCode == nil || strings.TrimSpace(*body.TableCode) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Pedido de mesa exige o código da mesa")
			}
		} else {
			// código de mesa só faz sentido em pedido de mesa
			body.TableCode = nil
		}

		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Pedido precisa de ao menos um item")
		}

		var subtotal float64
		items := make([]models.OrderItem, 0, len(body.Items))
		for _, it := range body.Items {
			if strings.TrimSpace(it.DrinkName) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Item sem nome de drink")
			}
			if it.Qty <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Quantidade do item deve ser maior que zero")
			}
			if it.UnitPrice < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Preço unitário não pode ser negativo")
			}
			lineTotal := float64(it.Qty) * it.UnitPrice
			subtotal += lineTotal
			items = append(items, models.OrderItem{
				DrinkName: strings.TrimSpace(it.DrinkName),
				Qty:       it.Qty,
				UnitPrice: it.UnitPrice,
				LineTotal: lineTotal,
				Notes:     it.Notes,
			})
		}

		order := models.Order{
			SessionID:     sess.ID,
			Code:          "PED-" + strings.ToUpper(uuid.NewString()[:8]),
			CustomerName:  body.CustomerName,
			CustomerPhone: body.CustomerPhone,
			Notes:         body.Notes,
			Status:        models.OrderStatusPending,
			Source:        &source,
			TableCode:     body.TableCode,
			Subtotal:      subtotal,
			Items:         items,
		}

		if err := database.DB.Create(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o pedido")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(order))
	}
}

// GET /api/sessions/:id/orders
// Pedidos da sessão, mais recentes primeiro; itens em ordem de comanda.
func ListSessionOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Params("id")

		var sess models.Session
		if err := database.DB.First(&sess, "id = ?", sessionID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sessão não encontrada")
		}

		var orderList []models.Order
		if err := database.DB.
			Preload("Items", func(db *gorm.DB) *gorm.DB {
				return db.Order("order_items.created_at ASC")
			}).
			Where("session_id = ?", sess.ID).
			Order("created_at DESC").
			Find(&orderList).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Falha ao listar pedidos")
		}

		resp := make([]OrderResponse, 0, len(orderList))
		for _, o := range orderList {
			resp = append(resp, toResponse(o))
		}
		return c.JSON(resp)
	}
}

// PUT /api/orders/:id/status
// Transições permitidas: pending -> in_progress -> done.
func UpdateOrderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		var order models.Order
		if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pedido não encontrado")
		}

		allowed := map[models.OrderStatus][]models.OrderStatus{
			models.OrderStatusPending:    {models.OrderStatusInProgress, models.OrderStatusDone},
			models.OrderStatusInProgress: {models.OrderStatusDone},
		}

		ok := false
		for _, next := range allowed[order.Status] {
			if next == body.Status {
				ok = true
				break
			}
		}
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Transição de status inválida")
		}

		order.Status = body.Status
		if err := database.DB.Save(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o pedido")
		}

		return c.JSON(toResponse(order))
	}
}
