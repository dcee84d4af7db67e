package export

import (
	"strconv"
	"strings"
	"time"
)

// Cabeçalho fixo do CSV; a ordem das colunas é contrato com as planilhas que
// consomem o relatório.
var csvHeader = []string{
	"sessao_codigo", "sessao_aberta_em", "sessao_fechada_em",
	"pedido_codigo", "pedido_criado_em", "pedido_status",
	"origem", "mesa", "cliente", "telefone", "obs_pedido",
	"drink", "qtd", "preco_unitario", "subtotal_item", "obs_item",
	"subtotal_pedido",
}

const (
	csvSeparator = ";"
	timeLayout   = "2006-01-02 15:04:05"
	utf8BOM      = "\ufeff"
)

// quote envolve todo campo em aspas duplas, dobrando aspas internas. Vale
// também para campos numéricos: o parse fica igual em qualquer locale.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// money formata valores monetários com duas casas e vírgula decimal
// (12.5 -> "12,50"), como o Excel em pt-BR espera.
func money(v float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', 2, 64), ".", ",")
}

func fmtTime(t time.Time) string {
	return t.Format(timeLayout)
}

func fmtTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Serialize monta o corpo do CSV: BOM + cabeçalho + uma linha por Row, tudo
// separado por \n. Campos nulos são projetados para string vazia aqui, nunca
// antes: o modelo preserva a distinção entre nulo e vazio até a serialização.
func Serialize(rows []Row) string {
	var b strings.Builder
	b.WriteString(utf8BOM)
	b.WriteString(joinLine(csvHeader))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(joinLine(r.fields()))
	}
	return b.String()
}

func joinLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quote(f)
	}
	return strings.Join(quoted, csvSeparator)
}

// fields projeta a linha na ordem exata do cabeçalho. Linha sintética de
// pedido sem itens sai com os campos de item vazios, mas mantém o subtotal.
func (r Row) fields() []string {
	drink, qty, unitPrice, lineTotal, itemNotes := "", "", "", "", ""
	if r.HasItem {
		drink = r.DrinkName
		qty = strconv.Itoa(r.Qty)
		unitPrice = money(r.UnitPrice)
		lineTotal = money(r.LineTotal)
		itemNotes = strOrEmpty(r.ItemNotes)
	}

	return []string{
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
		money(r.OrderSubtotal),
	}
}
