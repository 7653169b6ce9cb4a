package param

import "strconv"

// Span is a byte range in the source SQL string, used only for
// diagnostics (error messages, tooling) and never for semantic decisions.
type Span struct {
	Start int
	End   int
}

// Info describes one placeholder discovered in (or hoisted into) a
// statement, in appearance order.
type Info struct {
	Ordinal int    // 0-based index in appearance order
	Style   Style  // the detected or assigned style
	Name    string // non-empty if the placeholder is named, or was named before RetargetInfos moved it to a positional style
	Source  Source
	Span    Span

	// key groups re-occurrences of the same logical parameter (e.g. the
	// original numeral of a $1/$1 pair, or the name for named styles) so
	// Convert can assign a single target-style slot to all of them. It is
	// not part of the public contract; Name already exposes the name for
	// diagnostics, and Ordinal the position of this specific occurrence.
	key string
}

// Key returns the identity used to group re-occurrences of the same
// logical parameter: the name for named styles, the original numeral for
// already-numeric styles, or a synthetic per-occurrence key (so each
// occurrence is its own logical parameter) for purely positional styles
// like Qmark and PyformatPositional.
func (info Info) Key() string {
	if info.Name != "" && info.Style != Qmark && info.Style != PyformatPositional {
		return "n:" + info.Name
	}
	if info.key != "" {
		return "k:" + info.key
	}
	return "o:" + strconv.Itoa(info.Ordinal)
}

// Infos is an ordered list of placeholder descriptors, the shape threaded
// through detect/convert/reshape/list-expansion.
type Infos []Info

// Styles returns the distinct styles present, for mixed-style detection.
func (infos Infos) Styles() map[Style]bool {
	out := make(map[Style]bool, 2)
	for _, info := range infos {
		out[info.Style] = true
	}
	return out
}

// Names returns the set of named placeholders present, in order of first
// appearance, deduplicated (the same :name may appear more than once).
func (infos Infos) Names() []string {
	seen := make(map[string]bool, len(infos))
	var names []string
	for _, info := range infos {
		if info.Name == "" || seen[info.Name] {
			continue
		}
		seen[info.Name] = true
		names = append(names, info.Name)
	}
	return names
}

// ByOrdinal returns the infos in strictly increasing ordinal order; the
// scanner already produces them this way, but callers that splice infos
// together (script rendering, list expansion) should re-sort defensively.
func (infos Infos) ByOrdinal() Infos {
	out := make(Infos, len(infos))
	copy(out, infos)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Ordinal < out[j-1].Ordinal; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
