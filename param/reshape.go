package param

import (
	"fmt"

	"github.com/sqlspec-go/sqlspec/sqlspecerr"
)

// Reshape composes a user-supplied payload with the final parameter_info
// list into an ExecParams ready for an adapter, per spec §4.1. When the
// payload names parameters by name and execStyle wants positions, names
// are resolved against infos; unknown names are a NoSuchParameter error.
// When the payload is positional and execStyle wants positions, arity is
// checked against the distinct logical parameter count.
func Reshape(payload Payload, infos Infos, execStyle ExecStyle) (ExecParams, error) {
	switch p := payload.(type) {
	case Empty:
		if len(distinctKeys(infos)) != 0 {
			return ExecParams{}, sqlspecerr.New(sqlspecerr.ArityMismatch,
				"expected %d parameters, got none", len(distinctKeys(infos)))
		}
		return ExecParams{Positional: []interface{}{}}, nil

	case Positional:
		return reshapePositional([]interface{}(p), infos, execStyle)

	case Named:
		return reshapeNamed(map[string]interface{}(p), infos, execStyle)

	case Batch:
		out := make([]ExecParams, len(p))
		for i, rec := range p {
			reshaped, err := Reshape(rec, infos, execStyle)
			if err != nil {
				return ExecParams{}, fmt.Errorf("record %d: %w", i, err)
			}
			out[i] = reshaped
		}
		return ExecParams{Batch: out}, nil

	default:
		return ExecParams{}, sqlspecerr.New(sqlspecerr.CompilationInternal, "unrecognized payload type %T", payload)
	}
}

// distinctKeys returns the ordered, deduplicated logical parameter keys.
func distinctKeys(infos Infos) []string {
	sorted := infos.ByOrdinal()
	seen := make(map[string]bool, len(sorted))
	var keys []string
	for _, info := range sorted {
		k := info.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

func reshapePositional(values []interface{}, infos Infos, execStyle ExecStyle) (ExecParams, error) {
	keys := distinctKeys(infos)
	if len(values) != len(keys) {
		return ExecParams{}, sqlspecerr.New(sqlspecerr.ArityMismatch,
			"expected %d positional parameters, got %d", len(keys), len(values))
	}

	if execStyle == ExecNameOnly {
		named := make(map[string]interface{}, len(keys))
		sorted := infos.ByOrdinal()
		idxOfKey := make(map[string]int, len(keys))
		for i, k := range keys {
			idxOfKey[k] = i
		}
		for _, info := range sorted {
			name := info.Name
			if name == "" {
				name = fmt.Sprintf("param_%d", info.Ordinal)
			}
			named[name] = values[idxOfKey[info.Key()]]
		}
		return ExecParams{Named: named}, nil
	}

	return ExecParams{Positional: values}, nil
}

func reshapeNamed(values map[string]interface{}, infos Infos, execStyle ExecStyle) (ExecParams, error) {
	keys := distinctKeys(infos)
	// Build ordinal->name lookup for a friendly NoSuchParameter message and
	// for resolving to positions.
	nameForKey := make(map[string]string, len(keys))
	sorted := infos.ByOrdinal()
	for _, info := range sorted {
		k := info.Key()
		if _, ok := nameForKey[k]; ok {
			continue
		}
		if info.Name != "" {
			nameForKey[k] = info.Name
		} else {
			nameForKey[k] = fmt.Sprintf("param_%d", info.Ordinal)
		}
	}

	if execStyle == ExecPositionOnly {
		out := make([]interface{}, len(keys))
		for i, k := range keys {
			name := nameForKey[k]
			v, ok := values[name]
			if !ok {
				return ExecParams{}, sqlspecerr.New(sqlspecerr.NoSuchParameter,
					"no value supplied for named parameter %q", name)
			}
			out[i] = v
		}
		return ExecParams{Positional: out}, nil
	}

	out := make(map[string]interface{}, len(keys))
	for _, k := range keys {
		name := nameForKey[k]
		v, ok := values[name]
		if !ok {
			return ExecParams{}, sqlspecerr.New(sqlspecerr.NoSuchParameter,
				"no value supplied for named parameter %q", name)
		}
		out[name] = v
	}
	return ExecParams{Named: out}, nil
}
