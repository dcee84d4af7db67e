package sessions

import (
	"strings"
	"time"

	"boteco-backend/internal/database"
	"boteco-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OpenSessionRequest struct {
	Code string `json:"code"` // opcional; gerado quando vazio
}

type SessionResponse struct {
	ID       uint    `json:"id"`
	Code     string  `json:"code"`
	OpenedAt string  `json:"opened_at"`
	ClosedAt *string `json:"closed_at"`
}

func toResponse(s models.Session) SessionResponse {
	resp := SessionResponse{
		ID:       s.ID,
		Code:     s.Code,
		OpenedAt: s.OpenedAt.Format("2006-01-02 15:04:05"),
	}
	if s.ClosedAt != nil {
		v := s.ClosedAt.Format("2006-01-02 15:04:05")
		resp.ClosedAt = &v
	}
	return resp
}

// POST /api/sessions
// Abre uma sessão de operação. Só pode haver uma sessão aberta por vez.
func OpenSessionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OpenSessionRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
			}
		}

		var openCount int64
		if err := database.DB.Model(&models.Session{}).
			Where("closed_at IS NULL").
			Count(&openCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Falha ao consultar sessões")
		}
		if openCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Já existe uma sessão aberta")
		}

		code := strings.TrimSpace(body.Code)
		if code == "" {
			code = "SES-" + strings.ToUpper(uuid.NewString()[:8])
		}

		sess := models.Session{Code: code, OpenedAt: time.Now()}
		if err := database.DB.Create(&sess).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível abrir a sessão")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(sess))
	}
}

// POST /api/sessions/:id/close
func CloseSessionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var sess models.Session
		if err := database.DB.First(&sess, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sessão não encontrada")
		}

		if sess.ClosedAt != nil {
			return fiber.NewError(fiber.StatusConflict, "Sessão já está fechada")
		}

		now := time.Now()
		sess.ClosedAt = &now
		if err := database.DB.Save(&sess).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível fechar a sessão")
		}

		return c.JSON(toResponse(sess))
	}
}

// GET /api/sessions
// Sessões mais recentes primeiro.
func ListSessionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sessions []models.Session
		if err := database.DB.
			Order("opened_at DESC").
			Find(&sessions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Falha ao listar sessões")
		}

		resp := make([]SessionResponse, 0, len(sessions))
		for _, s := range sessions {
			resp = append(resp, toResponse(s))
		}
		return c.JSON(resp)
	}
}

// GET /api/sessions/:id
func GetSessionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var sess models.Session
		if err := database.DB.First(&sess, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sessão não encontrada")
		}

		return c.JSON(toResponse(sess))
	}
}
