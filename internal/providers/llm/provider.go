package llm

import (
	"context"
	"errors"

	"github.com/yoockh/chatrel/internal/models"
	"github.com/yoockh/chatrel/internal/utils"
)

// Effort is the reasoning effort asked of the model.
type Effort string

const (
	EffortDefault Effort = ""
	EffortLow     Effort = "low"
	EffortHigh    Effort = "high"
)

// Request is one fully built inference call. Prompt is the user content for
// this turn; History holds earlier turns in order and is only set for chat.
type Request struct {
	Kind              models.TaskKind
	SystemInstruction string
	Prompt            string
	History           []models.Turn

	// Schema constrains the response to JSON of this shape. Nil means free text.
	Schema     map[string]any
	SchemaName string

	Effort Effort
}

// Provider submits a built request to the remote model and returns its text.
// Every failure is an AppError with CodeUnavailable.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
	Close() error
}

// ErrEmptyResponse marks a call that succeeded at the transport level but
// carried no usable text.
var ErrEmptyResponse = errors.New("no text in model response")

// ModelSet maps task kinds onto the two model variants.
type ModelSet struct {
	Deep string // high capability: deep analysis and chat
	Fast string // low latency: quick scan
}

func (m ModelSet) For(kind models.TaskKind) string {
	if kind == models.TaskQuickScan {
		return m.Fast
	}
	return m.Deep
}

func unavailable(op string, err error) error {
	return utils.E(utils.CodeUnavailable, op, "inference service unreachable", err)
}

func emptyResponse(op string) error {
	return utils.E(utils.CodeUnavailable, op, "inference service returned no text", ErrEmptyResponse)
}
