package param

import (
	"fmt"
	"sort"
	"strings"
)

// Convert rewrites every placeholder token described by infos to target,
// returning the rewritten SQL. Numeric target styles are assigned in
// order of first appearance of each logical parameter (see Info.Key);
// named placeholders rendered to a positional target style are renamed
// param_<ordinal> using the ordinal of their first occurrence.
//
// infos must describe every placeholder present in sql, each with an
// accurate Span; Convert performs a single left-to-right rewrite pass
// using those spans and never re-scans the string.
func Convert(sql string, infos Infos, target Style) string {
	if len(infos) == 0 {
		return sql
	}

	sorted := infos.ByOrdinal()

	// Assign a target-style slot number/name to each distinct logical key,
	// in order of first appearance.
	slotOf := make(map[string]int, len(sorted))
	nameOf := make(map[string]string, len(sorted))
	next := 1
	for _, info := range sorted {
		key := info.Key()
		if _, ok := slotOf[key]; ok {
			continue
		}
		slotOf[key] = next
		if info.Name != "" {
			nameOf[key] = info.Name
		} else {
			nameOf[key] = fmt.Sprintf("param_%d", info.Ordinal)
		}
		next++
	}

	// Rewrite left to right using the original spans.
	var b strings.Builder
	cursor := 0
	bySpan := make([]Info, len(sorted))
	copy(bySpan, sorted)
	sort.Slice(bySpan, func(i, j int) bool { return bySpan[i].Span.Start < bySpan[j].Span.Start })

	for _, info := range bySpan {
		if info.Span.Start < cursor {
			continue // overlapping/invalid span; skip defensively
		}
		b.WriteString(sql[cursor:info.Span.Start])
		key := info.Key()
		b.WriteString(renderToken(target, slotOf[key], nameOf[key]))
		cursor = info.Span.End
	}
	b.WriteString(sql[cursor:])
	return b.String()
}

// renderToken renders a single placeholder in the target style, given its
// 1-based positional slot (for numeric/positional styles) and its name
// (original name, or the synthetic param_<ordinal> fallback).
func renderToken(target Style, slot int, name string) string {
	switch target {
	case Qmark:
		return "?"
	case NumericDollar:
		return fmt.Sprintf("$%d", slot)
	case NumericColon:
		return fmt.Sprintf(":%d", slot)
	case NamedColon:
		return ":" + name
	case NamedAt:
		return "@" + name
	case NamedDollar:
		return "$" + name
	case PyformatPositional:
		return "%s"
	case PyformatNamed:
		return fmt.Sprintf("%%(%s)s", name)
	default:
		return "?"
	}
}

// RetargetInfos produces a new Infos describing the placeholders that
// Convert(sql, infos, target) would produce, without re-scanning the
// rewritten SQL. Ordinals are preserved and Style becomes target. For a
// named target, Name is the target-style name; for a positional target,
// Name keeps the source placeholder's name (empty for unnamed sources),
// so Reshape can still resolve a named payload against the result.
func RetargetInfos(infos Infos, target Style) Infos {
	sorted := infos.ByOrdinal()
	slotOf := make(map[string]int, len(sorted))
	nameOf := make(map[string]string, len(sorted))
	next := 1
	for _, info := range sorted {
		key := info.Key()
		if _, ok := slotOf[key]; ok {
			continue
		}
		slotOf[key] = next
		if info.Name != "" {
			nameOf[key] = info.Name
		} else {
			nameOf[key] = fmt.Sprintf("param_%d", info.Ordinal)
		}
		next++
	}

	out := make(Infos, len(sorted))
	for i, info := range sorted {
		key := info.Key()
		name := info.Name
		if target.Named() {
			name = nameOf[key]
		}
		out[i] = Info{
			Ordinal: info.Ordinal,
			Style:   target,
			Name:    name,
			Source:  info.Source,
			Span:    info.Span,
			key:     info.key,
		}
	}
	return out
}
