package export

import (
	"errors"
	"fmt"
)

// Stage identifica em qual consulta o pipeline falhou; aparece na mensagem
// de erro devolvida ao cliente.
type Stage string

const (
	StageSession Stage = "sessao"
	StageOrders  Stage = "pedidos"
	StageItems   Stage = "itens"
)

var (
	ErrInvalidIdentifier = errors.New("identificador de sessão inválido")
	ErrSessionNotFound   = errors.New("sessão não encontrada")
)

// UpstreamError: falha de consulta ao banco em um estágio específico.
type UpstreamError struct {
	Stage Stage
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("falha ao consultar %s: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
