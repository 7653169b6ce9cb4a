package param

import (
	"fmt"
	"strings"
)

// ListExpand implements spec §4.1's list_expansion: when the adapter
// profile does not support native list binding and a placeholder bound to
// a slice/array value sits alone inside an `IN ( ... )`, the single
// placeholder is rewritten to one placeholder per element and the value
// is split accordingly. Ordering is preserved. Placeholders not in that
// exact shape (not alone in an IN-list, or not bound to a slice) are left
// untouched.
//
// sql and infos must be in sync (infos' spans index into sql). payload
// must already be positional-or-named (not Batch); list expansion runs
// once against the statement template before per-record reshaping.
func ListExpand(sql string, infos Infos, values map[string]interface{}) (string, Infos, map[string]interface{}, error) {
	sorted := infos.ByOrdinal()

	type expansion struct {
		info     Info
		elements []interface{}
	}
	var expansions []expansion

	for _, info := range sorted {
		key := paramLookupKey(info)
		v, ok := values[key]
		if !ok {
			continue
		}
		elems, isList := asSlice(v)
		if !isList {
			continue
		}
		if !isAloneInINList(sql, info.Span) {
			continue
		}
		expansions = append(expansions, expansion{info: info, elements: elems})
	}

	if len(expansions) == 0 {
		return sql, infos, values, nil
	}

	// Rewrite right-to-left so earlier spans remain valid.
	newSQL := sql
	newValues := make(map[string]interface{}, len(values))
	for k, v := range values {
		newValues[k] = v
	}
	replacedKeys := make(map[string]bool, len(expansions))

	for i := len(expansions) - 1; i >= 0; i-- {
		e := expansions[i]
		key := paramLookupKey(e.info)
		replacedKeys[key] = true
		delete(newValues, key)

		var tokens []string
		for j := range e.elements {
			name := fmt.Sprintf("%s_%d", nonEmpty(e.info.Name, key), j)
			tokens = append(tokens, placeholderToken(e.info.Style, name))
			newValues[name] = e.elements[j]
		}
		replacement := strings.Join(tokens, ", ")
		newSQL = newSQL[:e.info.Span.Start] + replacement + newSQL[e.info.Span.End:]
	}

	newInfos := Detect(newSQL, "")
	return newSQL, newInfos, newValues, nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func paramLookupKey(info Info) string {
	if info.Name != "" {
		return info.Name
	}
	if info.key != "" {
		return info.key
	}
	return fmt.Sprintf("param_%d", info.Ordinal)
}

func placeholderToken(style Style, name string) string {
	switch style {
	case Qmark:
		return "?"
	case NumericDollar:
		return "$" + name
	case NumericColon:
		return ":" + name
	case NamedColon:
		return ":" + name
	case NamedAt:
		return "@" + name
	case NamedDollar:
		return "$" + name
	case PyformatPositional:
		return "%s"
	case PyformatNamed:
		return "%(" + name + ")s"
	default:
		return ":" + name
	}
}

func asSlice(v interface{}) ([]interface{}, bool) {
	switch vv := v.(type) {
	case []interface{}:
		return vv, true
	case []int:
		out := make([]interface{}, len(vv))
		for i, x := range vv {
			out[i] = x
		}
		return out, true
	case []int64:
		out := make([]interface{}, len(vv))
		for i, x := range vv {
			out[i] = x
		}
		return out, true
	case []string:
		out := make([]interface{}, len(vv))
		for i, x := range vv {
			out[i] = x
		}
		return out, true
	default:
		return nil, false
	}
}

// isAloneInINList reports whether the placeholder at span sits as the sole
// content of a parenthesized group immediately preceded by the keyword IN
// (case-insensitive), e.g. "... IN (:p) ...".
func isAloneInINList(sql string, span Span) bool {
	before := strings.TrimRight(sql[:span.Start], " \t\n\r")
	if len(before) == 0 || before[len(before)-1] != '(' {
		return false
	}
	before = strings.TrimRight(before[:len(before)-1], " \t\n\r")
	if !strings.HasSuffix(strings.ToUpper(before), "IN") {
		return false
	}

	after := strings.TrimLeft(sql[span.End:], " \t\n\r")
	return len(after) > 0 && after[0] == ')'
}
