// Package param implements the parameter model: placeholder styles, the
// typed parameter value shapes, and the scan/convert/reshape/expand
// operations that normalize a statement's placeholders between styles.
package param

// Style is the closed enumeration of placeholder syntaxes the pipeline
// recognizes and can render to.
type Style string

const (
	Qmark              Style = "qmark"
	NumericDollar      Style = "numeric_dollar"
	NumericColon       Style = "numeric_colon"
	NamedColon         Style = "named_colon"
	NamedAt            Style = "named_at"
	NamedDollar        Style = "named_dollar"
	PyformatPositional Style = "pyformat_positional"
	PyformatNamed      Style = "pyformat_named"
	Static             Style = "static"
)

// Positional reports whether the style addresses parameters by position
// rather than by name.
func (s Style) Positional() bool {
	switch s {
	case Qmark, NumericDollar, NumericColon, PyformatPositional:
		return true
	default:
		return false
	}
}

// Named reports whether the style addresses parameters by name.
func (s Style) Named() bool {
	switch s {
	case NamedColon, NamedAt, NamedDollar, PyformatNamed:
		return true
	default:
		return false
	}
}

func (s Style) String() string { return string(s) }

// Source describes where a ParameterInfo's placeholder originated.
type Source string

const (
	SourceUser    Source = "user"    // present in the input SQL
	SourceHoisted Source = "hoisted" // produced by the literal parameterizer
	SourceBuilder Source = "builder" // emitted by the fluent builder
)
