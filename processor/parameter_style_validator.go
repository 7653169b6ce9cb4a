package processor

import (
	"fmt"

	"github.com/sqlspec-go/sqlspec/sqlctx"
)

// ParameterStyleValidator is the lowest-severity validator (spec §4.3.2):
// it checks the placeholder styles Detect found against the configured
// allow-list and the mixed-styles policy. Style *conversion* happens
// later, in the compiler's render step; this stage only gates whether
// compilation is allowed to proceed at all.
type ParameterStyleValidator struct{}

func (v *ParameterStyleValidator) Name() string { return "parameter_style_validator" }

func (v *ParameterStyleValidator) ShouldRun(ctx *sqlctx.Context) bool {
	return ctx.Config.EnableValidation()
}

func (v *ParameterStyleValidator) Process(ctx *sqlctx.Context) error {
	styles := ctx.ParameterInfo.Styles()
	allowed := ctx.Config.AllowedParameterStyles()

	for s := range styles {
		if !allowed[s] {
			ctx.AddFinding(sqlctx.Finding{
				Kind:     "parameter_style_not_allowed",
				Severity: sqlctx.SeverityHigh,
				Message:  fmt.Sprintf("placeholder style %q is not in the allowed set for this configuration", s),
			})
		}
	}

	if len(styles) > 1 && !ctx.Config.AllowMixedParameterStyles() {
		ctx.AddFinding(sqlctx.Finding{
			Kind:     "mixed_parameter_styles",
			Severity: sqlctx.SeverityHigh,
			Message:  "statement mixes more than one placeholder style, which is disabled for this configuration",
		})
	}
	return nil
}
