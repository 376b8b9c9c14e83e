package relay

import (
	"time"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	dnderr "github.com/KirkDiggler/macro-relay/internal/errors"
)

// Operation names a mutation the relay can perform
type Operation string

const (
	OperationApply  Operation = "apply"
	OperationUpdate Operation = "update"
	OperationRemove Operation = "remove"
)

// Request asks the privileged side to run one mutation
type Request struct {
	ID        string         `json:"id"`
	Operation Operation      `json:"operation"`
	CallerID  string         `json:"caller_id"`
	EntityID  string         `json:"entity_id"`
	EffectID  string         `json:"effect_id,omitempty"`
	Effect    *entity.Effect `json:"effect,omitempty"`
	Patch     *entity.Patch  `json:"patch,omitempty"`
	SentAt    time.Time      `json:"sent_at"`
}

// Response carries the result of a Request back to the caller
type Response struct {
	RequestID string           `json:"request_id"`
	Success   bool             `json:"success"`
	Code      string           `json:"code,omitempty"`
	Error     string           `json:"error,omitempty"`
	Action    string           `json:"action,omitempty"`
	Effects   []*entity.Effect `json:"effects,omitempty"`
}

// Validate checks the request carries what its operation needs
func (r *Request) Validate() error {
	if r == nil {
		return dnderr.InvalidArgument("request cannot be nil")
	}
	if r.ID == "" {
		return dnderr.InvalidArgument("request ID is required")
	}
	if r.EntityID == "" {
		return dnderr.InvalidArgument("entity ID is required")
	}

	switch r.Operation {
	case OperationApply:
		if r.Effect == nil {
			return dnderr.InvalidArgument("apply requires an effect payload")
		}
	case OperationUpdate:
		if r.EffectID == "" || r.Patch == nil {
			return dnderr.InvalidArgument("update requires an effect ID and a patch")
		}
	case OperationRemove:
		if r.EffectID == "" {
			return dnderr.InvalidArgument("remove requires an effect ID")
		}
	default:
		return dnderr.InvalidArgumentf("unknown operation %q", r.Operation)
	}

	return nil
}

// Err rebuilds the typed error a failed response describes
func (r *Response) Err(entityID, effectID string) error {
	if r == nil {
		return dnderr.Internalf("relay returned no response")
	}
	if r.Success {
		return nil
	}

	code := dnderr.Code(r.Code)
	if code == "" {
		code = dnderr.CodeUnknown
	}

	err := dnderr.New(code, r.Error).WithMeta("entity_id", entityID)
	if effectID != "" {
		err.WithMeta("effect_id", effectID)
	}
	return err
}
