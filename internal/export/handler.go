package export

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"
)

// As consultas da exportação rodam sob prazo próprio: se o cliente
// desconectar ou o banco travar, o pipeline aborta em vez de segurar a
// conexão.
const pipelineTimeout = 10 * time.Second

var filenameUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// sanitizeFilename: código da sessão vira nome de arquivo seguro.
// "BAR#1/2024" -> "BAR_1_2024"
func sanitizeFilename(code string) string {
	return filenameUnsafe.ReplaceAllString(code, "_")
}

func mapPipelineError(err error) error {
	var up *UpstreamError
	switch {
	case errors.Is(err, ErrInvalidIdentifier):
		return fiber.NewError(fiber.StatusBadRequest, "Identificador de sessão inválido")
	case errors.Is(err, ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Sessão não encontrada")
	case errors.As(err, &up):
		return fiber.NewError(fiber.StatusInternalServerError,
			fmt.Sprintf("Falha ao consultar %s", up.Stage))
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Falha ao gerar o relatório")
	}
}

// GET /api/admin/sessions/:id/export
// Exporta a atividade de uma sessão como CSV para download.
func SessionCSVHandler(st Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if st == nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Banco de dados não configurado")
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), pipelineTimeout)
		defer cancel()

		sess, rows, err := BuildReport(ctx, st, c.Params("id"))
		if err != nil {
			return mapPipelineError(err)
		}

		filename := sanitizeFilename(sess.Code) + ".csv"

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.SendString(Serialize(rows))
	}
}
