package export

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Pedidos"

// cellValues projeta a linha para células da planilha. Diferente do CSV, a
// planilha guarda números como números; a formatação de vírgula decimal é
// contrato só do CSV.
func (r Row) cellValues() []interface{} {
	var drink, qty, unitPrice, lineTotal, itemNotes interface{} = "", "", "", "", ""
	if r.HasItem {
		drink = r.DrinkName
		qty = r.Qty
		unitPrice = r.UnitPrice
		lineTotal = r.LineTotal
		itemNotes = strOrEmpty(r.ItemNotes)
	}

	return []interface{}{
		r.SessionCode,
		fmtTime(r.SessionOpenedAt),
		fmtTimePtr(r.SessionClosedAt),
		r.OrderCode,
		fmtTime(r.OrderCreatedAt),
		r.OrderStatus,
		r.Source,
		r.TableCode,
		strOrEmpty(r.CustomerName),
		strOrEmpty(r.CustomerPhone),
		strOrEmpty(r.OrderNotes),
		drink,
		qty,
		unitPrice,
		lineTotal,
		itemNotes,
		r.OrderSubtotal,
	}
}

func renderXLSX(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, err
	}

	for i, h := range csvHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for rIdx, r := range rows {
		for cIdx, v := range r.cellValues() {
			cell, err := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GET /api/admin/sessions/:id/export/xlsx
// Mesmo conjunto de linhas do CSV, renderizado como planilha XLSX.
func SessionXLSXHandler(st Store) fiber.Handler {
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

		body, err := renderXLSX(rows)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Falha ao gerar a planilha")
		}

		filename := sanitizeFilename(sess.Code) + ".xlsx"

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Send(body)
	}
}
