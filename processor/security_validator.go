package processor

import (
	"fmt"
	"strings"

	"github.com/sqlspec-go/sqlspec/sqlast"
	"github.com/sqlspec-go/sqlspec/sqlctx"
)

// SecurityValidator is the highest-severity validator (spec §4.3.2):
// forbidden keywords and disallowed DDL. It runs against ctx.RawSQL (the
// post-transformer SQL text) for forbidden-keyword matching (a keyword ban is a lexical
// policy, not a structural one) and against the parsed Kind for the DDL
// gate.
type SecurityValidator struct{}

func (v *SecurityValidator) Name() string { return "security_validator" }

func (v *SecurityValidator) ShouldRun(ctx *sqlctx.Context) bool {
	return ctx.Config.EnableValidation()
}

func (v *SecurityValidator) Process(ctx *sqlctx.Context) error {
	v.checkForbiddenKeywords(ctx)
	v.checkDDL(ctx)
	return nil
}

func (v *SecurityValidator) checkForbiddenKeywords(ctx *sqlctx.Context) {
	forbidden := ctx.Config.ForbiddenKeywords()
	if len(forbidden) == 0 {
		return
	}
	upper := strings.ToUpper(ctx.RawSQL)
	for _, kw := range forbidden {
		if kw == "" {
			continue
		}
		if strings.Contains(upper, strings.ToUpper(kw)) {
			ctx.AddFinding(sqlctx.Finding{
				Kind:     "forbidden_keyword",
				Severity: sqlctx.SeverityCritical,
				Message:  fmt.Sprintf("statement contains forbidden keyword %q", kw),
			})
		}
	}
}

func (v *SecurityValidator) checkDDL(ctx *sqlctx.Context) {
	if ctx.AST == nil || ctx.Config.AllowDDL() {
		return
	}
	if ctx.AST.Kind() == sqlast.KindCommand {
		ctx.AddFinding(sqlctx.Finding{
			Kind:     "ddl_not_allowed",
			Severity: sqlctx.SeverityCritical,
			Message:  "DDL statements are disabled for this configuration",
		})
	}
}
