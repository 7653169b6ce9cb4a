package compiler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sqlspec-go/sqlspec/adapter"
	"github.com/sqlspec-go/sqlspec/param"
	"github.com/sqlspec-go/sqlspec/processor"
	"github.com/sqlspec-go/sqlspec/sqlast"
	"github.com/sqlspec-go/sqlspec/sqlctx"
	"github.com/sqlspec-go/sqlspec/sqlspecerr"
)

// Input is the raw statement source Compile accepts: a SQL string, or a
// pre-built sqlast.Node (e.g. from package builder or a filter's output).
// Per spec §4.5 "the compiler skips parsing and goes straight to
// transformers" when the input already is a Node.
type Input interface{}

// Filter is a rendered-SQL-level rewrite applied before the pipeline
// proper runs, the mechanism package statement and package builder use to
// thread WHERE/ORDER BY/LIMIT/CTE filters into an already-built
// statement (spec §4.7 "Applying filters re-enters the compiler at the
// AST stage, not the parse stage"). This implementation re-enters at the
// rendered-SQL stage rather than true AST-node splicing — the same
// choice the rest of this pipeline already makes for every transformer
// (they all rewrite ctx.RawSQL text, never the parsed AST in place) — see
// DESIGN.md "Open Question Decisions".
type Filter func(sql string) (string, error)

// Options carries the per-call knobs spec §6.1's compile entry point
// exposes beyond (input, parameters, config): script/many mode, an
// explicit target style override, pre-parse filters, and the adapter
// profile consulted for list expansion (spec §4.1 list_expansion,
// §4.4 step 8).
type Options struct {
	IsScript    bool
	IsMany      bool
	TargetStyle param.Style // zero value: use cfg.TargetParameterStyle()
	Filters     []Filter
	Profile     *adapter.Profile // nil: skip list expansion (native support assumed)
}

// Compile implements the nine-step algorithm of spec §4.4, the single
// entry point every other compile-triggering API (package statement,
// package builder, the root sqlspec.Compile facade) eventually calls.
func Compile(input Input, payload param.Payload, cfg sqlctx.ConfigView, opts Options) (*CompiledStatement, error) {
	if payload == nil {
		payload = param.Empty{}
	}

	ctx := &sqlctx.Context{
		Config:    cfg,
		RawParams: payload,
		IsScript:  opts.IsScript,
		IsMany:    opts.IsMany,
		Values:    map[string]interface{}{},
	}

	switch v := input.(type) {
	case string:
		ctx.RawSQL = v
	case sqlast.Node:
		ctx.AST = v
		ctx.ParsedOK = true
		ctx.RawSQL = v.Render(cfg.Dialect())
	default:
		return nil, sqlspecerr.New(sqlspecerr.CompilationInternal, "unsupported compile input type %T", input)
	}

	for _, f := range opts.Filters {
		out, err := f(ctx.RawSQL)
		if err != nil {
			return nil, err
		}
		ctx.RawSQL = out
		ctx.AST = nil
		ctx.ParsedOK = false
	}

	if strings.TrimSpace(ctx.RawSQL) == "" {
		return nil, sqlspecerr.New(sqlspecerr.EmptyStatement, "input SQL is blank")
	}

	if opts.IsScript {
		ctx.RawParams = param.Empty{}
		payload = param.Empty{}
	}

	ctx.InputHadPlaceholders = len(param.Detect(ctx.RawSQL, cfg.Dialect())) > 0

	// Steps 1-2: parse (sqlast.Parse auto-detects multi-statement input
	// and returns a Script even when AsScript is false, folding spec's
	// separate "script detection" + "re-parse as script" steps into one
	// call).
	if cfg.EnableParsing() && ctx.AST == nil {
		node, err := sqlast.Parse(ctx.RawSQL, cfg.Dialect(), sqlast.ParseOptions{AsScript: opts.IsScript})
		if err != nil {
			return nil, err
		}
		ctx.AST = node
		ctx.ParsedOK = true
	}
	if ctx.AST != nil && sqlast.IsScript(ctx.AST) {
		ctx.IsScript = true
	}

	// Step 3: transformers. Every transformer rewrites ctx.RawSQL text
	// (identifier sanitizing, literal hoisting, comment stripping), so
	// ctx.AST is stale the moment any of them changes something; re-parse
	// once afterward rather than have each transformer keep the AST in
	// sync itself.
	if err := processor.Run(ctx, processor.Transformers()); err != nil {
		return nil, err
	}
	if cfg.EnableParsing() {
		node, err := sqlast.Parse(ctx.RawSQL, cfg.Dialect(), sqlast.ParseOptions{AsScript: ctx.IsScript})
		if err != nil {
			return nil, err
		}
		ctx.AST = node
		ctx.ParsedOK = true
	}

	// ctx.ParameterInfo must be populated before validators run: it is
	// the field processor.ParameterStyleValidator reads to enforce
	// allowed/mixed-style gates (spec §4.3.2, §7 StyleNotSupported /
	// MixedStyles). Detect against the post-transformer RawSQL, the same
	// text the render step below will re-detect against once transformers
	// have finished rewriting literals/identifiers.
	ctx.ParameterInfo = param.Detect(ctx.RawSQL, cfg.Dialect())

	// Step 4: validators.
	if err := processor.Run(ctx, processor.Validators()); err != nil {
		return nil, err
	}
	blocked := ctx.HasBlockingFinding()
	if blocked && cfg.StrictMode() {
		return nil, sqlspecerr.New(sqlspecerr.ValidationBlocked,
			"a validation finding reached High severity under strict mode").WithSQL(ctx.RawSQL)
	}

	// Step 5: analyzer.
	if err := processor.Run(ctx, []processor.Processor{processor.TheAnalyzer()}); err != nil {
		return nil, err
	}

	targetStyle := opts.TargetStyle
	if targetStyle == "" {
		targetStyle = cfg.TargetParameterStyle()
	}

	var renderedSQL string
	var infos param.Infos
	var opKind sqlast.Kind

	if ctx.IsScript {
		script, ok := sqlast.AsScript(ctx.AST)
		if !ok {
			// Explicit is_script with unparsed/unparseable input: treat the
			// raw text as a single opaque statement for scripting purposes.
			script = sqlast.NewScript([]sqlast.Node{rawNode{sql: ctx.RawSQL}})
		}
		renderedSQL, infos = renderScript(script, cfg.Dialect(), targetStyle)
		opKind = sqlast.KindScript
	} else {
		var sourceSQL string
		if ctx.ParsedOK && ctx.AST != nil {
			sourceSQL = ctx.AST.Render(cfg.Dialect())
			opKind = ctx.AST.Kind()
		} else {
			sourceSQL = ctx.RawSQL
			opKind = sqlast.KindOther
		}
		detected := param.Detect(sourceSQL, cfg.Dialect())
		if targetStyle == param.Static {
			renderedSQL = sourceSQL
			infos = detected
		} else {
			renderedSQL = param.Convert(sourceSQL, detected, targetStyle)
			infos = param.RetargetInfos(detected, targetStyle)
		}
	}

	// Refresh ctx.ParameterInfo with the final, post-conversion infos so
	// any diagnostics built from ctx after this point (not just the
	// pre-validator detection above) see the same infos the compiled
	// output carries.
	ctx.ParameterInfo = infos

	// Step 7: reshape, composing hoisted literal values (always named
	// lit_<n>, since the literal parameterizer only ever runs against SQL
	// that had zero pre-existing placeholders — see processor's
	// LiteralParameterizer.ShouldRun) ahead of the adapter's list
	// expansion and the final Reshape call.
	effectivePayload := mergeHoisted(payload, ctx.HoistedValues)

	if opts.Profile != nil && !opts.Profile.NativeListExpansion && targetStyle != param.Static {
		if named, ok := effectivePayload.(param.Named); ok {
			newSQL, newInfos, newValues, err := param.ListExpand(renderedSQL, infos, map[string]interface{}(named))
			if err != nil {
				return nil, err
			}
			renderedSQL = newSQL
			infos = newInfos
			effectivePayload = param.Named(newValues)
		}
	}

	if targetStyle == param.Static {
		values, err := namedValuesFor(effectivePayload, infos)
		if err != nil {
			return nil, err
		}
		rendered, err := param.RenderStatic(renderedSQL, infos, values, cfg.Dialect())
		if err != nil {
			return nil, err
		}
		renderedSQL = rendered
		infos = nil
		effectivePayload = param.Empty{}
	}

	execStyle := execStyleFor(targetStyle)
	var execParams param.ExecParams
	if opts.IsScript {
		// A declared script binds no parameters (its payload was forced to
		// Empty above), so its placeholders are left unbound.
		execParams = param.ExecParams{Positional: []interface{}{}}
	} else {
		var err error
		execParams, err = param.Reshape(effectivePayload, infos, execStyle)
		if err != nil {
			return nil, err
		}
	}
	applyJSONStrategy(&execParams, cfg.JSONStrategy())

	fp := computeFingerprint(renderedSQL, cfg.Dialect(), targetStyle, infos, cfg.StrictMode(), cfg.AllowedParameterStyles())

	return &CompiledStatement{
		RenderedSQL:       renderedSQL,
		Parameters:        execParams,
		PlaceholderStyle:  targetStyle,
		ParameterInfo:     infos,
		OperationKind:     opKind,
		ValidationSummary: ValidationSummary{Findings: ctx.Findings, Blocked: blocked},
		AnalysisSummary:   ctx.Analysis,
		CacheFingerprint:  fp,
	}, nil
}

// Reshape replays steps 7 and 9 of the compile algorithm (reshape,
// JSON-strategy) against an already-compiled template and a *new*
// parameter payload, producing a fresh CompiledStatement without
// re-running parse/transform/validate/analyze/render (steps 1-6) or list
// expansion/static rendering (the other halves of steps 8-9, which a
// caller must not skip this way — see PreCompileKey's doc comment on when
// this is valid to use). This is what lets a compiled-statement cache hit
// be "indistinguishable from a miss in its output" (spec §4.6) for the
// common case of two calls differing only in bound values: tpl supplies
// RenderedSQL/ParameterInfo/OperationKind/ValidationSummary/AnalysisSummary/
// PlaceholderStyle/CacheFingerprint unchanged, only Parameters is
// recomputed from payload.
func Reshape(tpl *CompiledStatement, payload param.Payload, cfg sqlctx.ConfigView) (*CompiledStatement, error) {
	if payload == nil {
		payload = param.Empty{}
	}
	execParams, err := param.Reshape(payload, tpl.ParameterInfo, execStyleFor(tpl.PlaceholderStyle))
	if err != nil {
		return nil, err
	}
	applyJSONStrategy(&execParams, cfg.JSONStrategy())

	out := *tpl
	out.Parameters = execParams
	return &out, nil
}

// execStyleFor derives the ExecParams shape from the target placeholder
// style: positional styles reshape to a slice, named styles to a map.
// Static carries no bound parameters at all.
func execStyleFor(style param.Style) param.ExecStyle {
	if style.Positional() {
		return param.ExecPositionOnly
	}
	if style.Named() {
		return param.ExecNameOnly
	}
	return param.ExecEither
}

// mergeHoisted folds literal-parameterizer output into payload. The
// literal parameterizer only ever runs when the input SQL had no
// pre-existing placeholders (ctx.InputHadPlaceholders false), so the
// hoisted values are always the statement's *entire* parameter set and
// payload is, in practice, always param.Empty{} when hoisted is
// non-empty.
func mergeHoisted(payload param.Payload, hoisted []interface{}) param.Payload {
	if len(hoisted) == 0 {
		return payload
	}
	named := make(param.Named, len(hoisted))
	for i, v := range hoisted {
		named[fmt.Sprintf("lit_%d", i)] = v
	}
	return named
}

// namedValuesFor normalizes a payload into the name-keyed map
// param.RenderStatic expects, resolving positional payloads against
// infos' first-appearance order.
func namedValuesFor(payload param.Payload, infos param.Infos) (map[string]interface{}, error) {
	switch p := payload.(type) {
	case param.Named:
		return map[string]interface{}(p), nil
	case param.Empty:
		return map[string]interface{}{}, nil
	case param.Positional:
		out := make(map[string]interface{}, len(p))
		sorted := infos.ByOrdinal()
		seen := make(map[string]bool, len(sorted))
		idx := 0
		for _, info := range sorted {
			key := info.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			name := info.Name
			if name == "" {
				name = fmt.Sprintf("param_%d", info.Ordinal)
			}
			if idx < len(p) {
				out[name] = p[idx]
			}
			idx++
		}
		return out, nil
	default:
		return nil, sqlspecerr.New(sqlspecerr.CompilationInternal, "unsupported payload type %T for static rendering", payload)
	}
}

// applyJSONStrategy pre-serializes map/slice values to JSON strings when
// the adapter profile asked for JSONHelper (spec §6.4); it is a no-op for
// JSONDriver/JSONNone, which leave the value untouched for the adapter to
// handle itself.
func applyJSONStrategy(p *param.ExecParams, strategy adapter.JSONStrategy) {
	if strategy != adapter.JSONHelper {
		return
	}
	for i, v := range p.Positional {
		p.Positional[i] = jsonHelperValue(v)
	}
	for k, v := range p.Named {
		p.Named[k] = jsonHelperValue(v)
	}
	for i := range p.Batch {
		applyJSONStrategy(&p.Batch[i], strategy)
	}
}

func jsonHelperValue(v interface{}) interface{} {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return v
}

// rawNode adapts a bare SQL string to sqlast.Node for the is_script
// fallback path when the input could not be parsed (enable_parsing
// false, or a ParseError the caller chose to tolerate is never reached
// here since Compile returns on ParseError; this only covers
// enable_parsing=false with is_script=true).
type rawNode struct{ sql string }

func (r rawNode) Kind() sqlast.Kind                  { return sqlast.KindOther }
func (r rawNode) Render(dialect string) string       { return r.sql }
func (r rawNode) Walk(fn func(sqlast.Node) bool)     { fn(r) }
func (r rawNode) Supports(op sqlast.Op) bool         { return false }
func (r rawNode) Underlying() interface{}            { return r.sql }
