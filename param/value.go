package param

import "github.com/shopspring/decimal"

// Typed forces a binding type without reflection, matching spec §3.2's
// "typed wrapper": { value, declared_type?, style_hint? }.
type Typed struct {
	Value       interface{}
	DeclaredType string // e.g. "numeric", "uuid", "jsonb"; empty if unset
	StyleHint   Style  // non-empty forces a specific rendering style for this value
}

// Decimal builds a Typed wrapper around an exact-precision numeric value,
// for user-supplied exact decimals. (Literals hoisted by
// processor.LiteralParameterizer are bound as int64 or float64.)
func Decimal(d decimal.Decimal) Typed {
	return Typed{Value: d, DeclaredType: "numeric"}
}

// Payload is the tagged union of accepted parameter payload shapes
// (spec §6.2): Positional, Named, Typed (wrapped in either), or Batch.
type Payload interface {
	isPayload()
}

// Positional is an ordered sequence of values addressed by position.
type Positional []interface{}

func (Positional) isPayload() {}

// Named is a mapping from placeholder name to value.
type Named map[string]interface{}

func (Named) isPayload() {}

// Batch is an ordered sequence of same-shape records, used for
// execute-many. Each record is itself a Positional or a Named payload.
type Batch []Payload

func (Batch) isPayload() {}

// Empty is the payload for statements with no parameters (scripts, DDL).
type Empty struct{}

func (Empty) isPayload() {}

// ExecStyle describes how an adapter expects to bind parameters.
type ExecStyle string

const (
	ExecPositionOnly ExecStyle = "position_only"
	ExecNameOnly     ExecStyle = "name_only"
	ExecEither       ExecStyle = "either"
)

// ExecParams is the reshaped, execution-ready parameter value: exactly
// one of Positional, Named, or a Batch of either (spec §3.7).
type ExecParams struct {
	Positional []interface{}
	Named      map[string]interface{}
	Batch      []ExecParams
}

// IsBatch reports whether this ExecParams represents an execute-many payload.
func (p ExecParams) IsBatch() bool { return p.Batch != nil }
