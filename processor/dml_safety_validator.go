package processor

import (
	"fmt"

	"github.com/sqlspec-go/sqlspec/sqlast"
	"github.com/sqlspec-go/sqlspec/sqlctx"
)

// DMLSafetyValidator flags UPDATE/DELETE statements without a WHERE
// clause and writes against protected tables (spec §4.3.2), in the same
// spirit as the teacher's SQLDetector.warnDangerousOperation
// (storage/detector.go), generalized from a code-generation warning into
// a blocking validation finding.
type DMLSafetyValidator struct{}

func (v *DMLSafetyValidator) Name() string { return "dml_safety_validator" }

func (v *DMLSafetyValidator) ShouldRun(ctx *sqlctx.Context) bool {
	return ctx.Config.EnableValidation() && ctx.AST != nil
}

func (v *DMLSafetyValidator) Process(ctx *sqlctx.Context) error {
	kind := ctx.AST.Kind()
	stmt := rootAST(ctx.AST)
	if stmt == nil {
		return nil
	}

	table := targetTableOf(stmt)
	if table != "" && ctx.Config.ProtectedTables()[table] {
		ctx.AddFinding(sqlctx.Finding{
			Kind:     "protected_table_write",
			Severity: sqlctx.SeverityCritical,
			Message:  fmt.Sprintf("statement writes to protected table %q", table),
			Location: table,
		})
	}

	switch kind {
	case sqlast.KindUpdate:
		v.checkMissingWhere(ctx, whereOf(stmt) == nil, ctx.Config.RequireWhereForUpdate(), "UPDATE", table)
	case sqlast.KindDelete:
		v.checkMissingWhere(ctx, whereOf(stmt) == nil, ctx.Config.RequireWhereForDelete(), "DELETE", table)
	}
	return nil
}

func (v *DMLSafetyValidator) checkMissingWhere(ctx *sqlctx.Context, missing, required bool, op, table string) {
	if !missing {
		return
	}
	severity := sqlctx.SeverityMedium
	if required || !ctx.Config.AllowRiskyDML() {
		severity = sqlctx.SeverityCritical
	}
	ctx.AddFinding(sqlctx.Finding{
		Kind:     "missing_where_clause",
		Severity: severity,
		Message:  fmt.Sprintf("%s on %q has no WHERE clause and will affect every row", op, table),
		Location: table,
	})
}
