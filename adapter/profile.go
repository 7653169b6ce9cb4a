package adapter

import "github.com/sqlspec-go/sqlspec/param"

// JSONStrategy controls whether and how the core pre-serializes complex
// parameter values before handing them to an adapter (spec §6.4).
type JSONStrategy string

const (
	// JSONHelper: the core serializes map/slice parameter values to JSON
	// strings before hand-off.
	JSONHelper JSONStrategy = "helper"
	// JSONDriver: the core passes the value through; the adapter registers
	// its own codec (e.g. pgx's jsonb support).
	JSONDriver JSONStrategy = "driver"
	// JSONNone: the core neither serializes nor registers anything.
	JSONNone JSONStrategy = "none"
)

// TypeCoercion is a per-type coercion hook an adapter profile can
// register. Returning ok=false leaves the value untouched. Profile only
// carries these hooks: neither compiler.Compile nor param.Reshape calls
// them.
type TypeCoercion func(value interface{}) (coerced interface{}, ok bool)

// Profile is the immutable, per-adapter record of SQL-shaping
// preferences (spec §3.8). It carries no connection, pooling, or
// autocommit details beyond the one flag the spec calls out
// (AutocommitDefault) precisely because those never influence SQL shape.
type Profile struct {
	Key                     string
	DefaultParameterStyle   param.Style
	SupportedParameterStyles map[param.Style]bool
	ExecutionStyle          param.ExecStyle
	NativeListExpansion     bool
	JSONStrategy            JSONStrategy
	TypeCoercionOverrides   map[string]TypeCoercion
	AutocommitDefault       bool
}

// Supports reports whether style is one this profile's adapter accepts.
func (p *Profile) Supports(style param.Style) bool {
	return p.SupportedParameterStyles[style]
}
