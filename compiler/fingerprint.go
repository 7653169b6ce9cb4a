package compiler

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/sqlspec-go/sqlspec/param"
	"github.com/sqlspec-go/sqlspec/sqlctx"
)

// Fingerprint is the compiled-statement cache key (spec §4.6): a
// structural hash over the SQL text, dialect, the configuration subset
// that affects compilation, the target style, and the parameter_info
// shape — deliberately excluding parameter values, so two compiles that
// differ only in bound values collide and reuse the cached SQL. Splitting
// into two independent xxhash passes (one over the SQL+dialect+style
// triple, one over the rest) mirrors the teacher's own practice of
// combining a handful of narrow hashes rather than hashing one
// concatenated blob, and keeps collision probability low without pulling
// in a 128-bit hash dependency the examples never use.
type Fingerprint [2]uint64

func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x%016x", f[0], f[1])
}

// computeFingerprint hashes the structural key described above. infos is
// reduced to its (ordinal, style, name-presence) shape, since the exact
// byte spans are a property of this particular SQL string, not of the
// logical statement shape two differently-formatted-but-equivalent
// inputs would share.
func computeFingerprint(sql, dialect string, style param.Style, infos param.Infos, strict bool, allowedStyles map[param.Style]bool) Fingerprint {
	h1 := xxhash.New()
	fmt.Fprintf(h1, "%s\x00%s\x00%s", sql, dialect, style)

	h2 := xxhash.New()
	fmt.Fprintf(h2, "strict=%t\x00", strict)
	for _, s := range sortedStyles(allowedStyles) {
		fmt.Fprintf(h2, "allow=%s\x00", s)
	}
	for _, info := range infos.ByOrdinal() {
		fmt.Fprintf(h2, "p%d:%s:%s\x00", info.Ordinal, info.Style, strconv.FormatBool(info.Name != ""))
	}

	return Fingerprint{h1.Sum64(), h2.Sum64()}
}

func sortedStyles(m map[param.Style]bool) []param.Style {
	out := make([]param.Style, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return strings.Compare(string(out[i]), string(out[j])) < 0 })
	return out
}

func sortedTableNames(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// PreCompileKey computes a Fingerprint from everything that determines a
// compile's outcome *before* the pipeline runs: the raw SQL text exactly
// as handed to Compile (after any per-Statement filters the caller
// already applied), the dialect, script/many mode, the requested target
// style, and the configuration subset spec §4.6 names ("sql_text,
// dialect, configuration subset that affects compilation, target_style,
// parameter_info structure") — everything except parameter_info, which
// is not yet known at this point.
//
// Unlike Fingerprint's own computeFingerprint (run after render, over
// the *rendered* SQL and the final parameter_info shape), PreCompileKey
// only needs inputs a caller already has on hand before invoking Compile,
// so a cache keyed on it can skip parse/transform/validate/analyze/render
// entirely on a hit rather than only the render step — the pre-compile
// lookup spec §4.6 describes as "the primary performance lever". It is
// deliberately not used for statements where parameter_info could still
// turn out to depend on bound values (parameterize_literals, Static
// target style, or adapter-driven list expansion); callers gate those
// cases out rather than rely on this key alone (see statement.Statement's
// Compile).
func PreCompileKey(rawSQL string, cfg sqlctx.ConfigView, opts Options) Fingerprint {
	targetStyle := opts.TargetStyle
	if targetStyle == "" {
		targetStyle = cfg.TargetParameterStyle()
	}

	h1 := xxhash.New()
	fmt.Fprintf(h1, "%s\x00%s\x00%s\x00%t\x00%t", rawSQL, cfg.Dialect(), targetStyle, opts.IsScript, opts.IsMany)

	h2 := xxhash.New()
	fmt.Fprintf(h2, "parse=%t\x00validate=%t\x00transform=%t\x00analyze=%t\x00strict=%t\x00litparam=%t\x00mixed=%t\x00ddl=%t\x00riskydml=%t\x00requpd=%t\x00reqdel=%t\x00maxjoins=%d\x00maxdepth=%d\x00json=%s",
		cfg.EnableParsing(), cfg.EnableValidation(), cfg.EnableTransformations(), cfg.EnableAnalysis(),
		cfg.StrictMode(), cfg.ParameterizeLiterals(), cfg.AllowMixedParameterStyles(),
		cfg.AllowDDL(), cfg.AllowRiskyDML(), cfg.RequireWhereForUpdate(), cfg.RequireWhereForDelete(),
		cfg.MaxJoins(), cfg.MaxSubqueryDepth(), cfg.JSONStrategy())
	for _, s := range sortedStyles(cfg.AllowedParameterStyles()) {
		fmt.Fprintf(h2, "\x00allow=%s", s)
	}
	for _, t := range sortedTableNames(cfg.ProtectedTables()) {
		fmt.Fprintf(h2, "\x00protected=%s", t)
	}
	for _, kw := range cfg.ForbiddenKeywords() {
		fmt.Fprintf(h2, "\x00forbidden=%s", kw)
	}
	for _, p := range cfg.PreservePatterns() {
		fmt.Fprintf(h2, "\x00preserve=%s", p)
	}

	return Fingerprint{h1.Sum64(), h2.Sum64()}
}
