package builder

import (
	"strings"
	"testing"
)

func TestSelectBuildBasic(t *testing.T) {
	sql, values := NewSelect("users").
		Columns("id", "email").
		Where(Eq(Col("id"), Val(1))).
		Build()

	if !strings.Contains(sql, "SELECT id, email FROM users WHERE") {
		t.Errorf("unexpected SQL: %q", sql)
	}
	if values["p0"] != 1 {
		t.Errorf("expected bound value 1 under p0, got %+v", values)
	}
}

func TestSelectWithJoinGroupHavingOrderLimitOffset(t *testing.T) {
	sql, _ := NewSelect("orders").
		As("o").
		Join("JOIN users u ON u.id = o.user_id").
		GroupBy("o.user_id").
		Having(Gt(Col("COUNT(*)"), Val(1))).
		OrderBy("o.created_at", true).
		Limit(10).
		Offset(5).
		Build()

	for _, want := range []string{"AS o", "JOIN users u", "GROUP BY o.user_id", "HAVING", "ORDER BY o.created_at DESC", "LIMIT 10", "OFFSET 5"} {
		if !strings.Contains(sql, want) {
			t.Errorf("expected SQL to contain %q, got %q", want, sql)
		}
	}
}

func TestSelectWithCTE(t *testing.T) {
	inner := NewSelect("orders").Where(Eq(Col("status"), Val("open")))
	sql, _ := NewSelect("recent").With("recent", inner).Build()
	if !strings.HasPrefix(sql, "WITH recent AS (SELECT") {
		t.Errorf("expected a leading WITH clause, got %q", sql)
	}
}

func TestSelectIsImmutable(t *testing.T) {
	base := NewSelect("users")
	withWhere := base.Where(Eq(Col("id"), Val(1)))

	baseSQL, _ := base.Build()
	whereSQL, _ := withWhere.Build()

	if strings.Contains(baseSQL, "WHERE") {
		t.Error("base Select must be unaffected by a derived copy's Where call")
	}
	if !strings.Contains(whereSQL, "WHERE") {
		t.Error("expected the derived copy to carry the WHERE clause")
	}
}

func TestInsertInfersColumnOrderFromFirstRow(t *testing.T) {
	sql, values := NewInsert("users").
		Values(map[string]interface{}{"email": "a@example.com", "id": 1}).
		Build()

	if !strings.Contains(sql, "INSERT INTO users (email, id) VALUES") {
		t.Errorf("unexpected SQL: %q", sql)
	}
	if len(values) != 2 {
		t.Errorf("expected 2 bound values, got %d", len(values))
	}
}

func TestInsertMultipleRows(t *testing.T) {
	sql, values := NewInsert("users").
		Columns("id", "email").
		Values(map[string]interface{}{"id": 1, "email": "a@example.com"}).
		Values(map[string]interface{}{"id": 2, "email": "b@example.com"}).
		Build()

	if strings.Count(sql, "(:p") != 2 {
		t.Errorf("expected two value tuples, got %q", sql)
	}
	if len(values) != 4 {
		t.Errorf("expected 4 bound values across two rows, got %d", len(values))
	}
}

func TestUpdateSetReplacesEarlierValueSameColumn(t *testing.T) {
	sql, values := NewUpdate("users").
		Set("active", false).
		Set("active", true).
		Where(Eq(Col("id"), Val(1))).
		Build()

	if strings.Count(sql, "active =") != 1 {
		t.Errorf("expected a single SET clause for a repeated column, got %q", sql)
	}
	found := false
	for _, v := range values {
		if v == true {
			found = true
		}
	}
	if !found {
		t.Error("expected the later Set call's value to win")
	}
}

func TestDeleteWithWhere(t *testing.T) {
	sql, values := NewDelete("sessions").Where(Lt(Col("expires_at"), Val("now"))).Build()
	if !strings.HasPrefix(sql, "DELETE FROM sessions WHERE") {
		t.Errorf("unexpected SQL: %q", sql)
	}
	if len(values) != 1 {
		t.Errorf("expected 1 bound value, got %d", len(values))
	}
}

func TestMergeUpsertShape(t *testing.T) {
	sql, values := NewMerge("target", "source").
		On(Eq(Col("target.id"), Col("source.id"))).
		WhenMatchedSet("name", "updated").
		WhenNotMatchedInsert(map[string]interface{}{"id": 1, "name": "new"}).
		Build()

	for _, want := range []string{"MERGE INTO target USING source ON", "WHEN MATCHED THEN UPDATE SET", "WHEN NOT MATCHED THEN INSERT"} {
		if !strings.Contains(sql, want) {
			t.Errorf("expected SQL to contain %q, got %q", want, sql)
		}
	}
	if len(values) != 3 {
		t.Errorf("expected 3 bound values, got %d", len(values))
	}
}

func TestExprCombinators(t *testing.T) {
	e := And(
		Eq(Col("a"), Val(1)),
		Or(IsNull(Col("b")), In(Col("c"), 1, 2, 3)),
		Not(Like(Col("d"), Val("%x%"))),
	)
	sink := newParamSink()
	out := e.renderWith(sink)
	for _, want := range []string{"AND", "OR", "IS NULL", "IN (", "NOT (", "LIKE"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected rendered expression to contain %q, got %q", want, out)
		}
	}
}

func TestInWithNoValuesRendersFalse(t *testing.T) {
	sink := newParamSink()
	out := In(Col("x")).renderWith(sink)
	if out != "FALSE" {
		t.Errorf("expected FALSE for an empty IN list, got %q", out)
	}
}

func TestRawRewritesPositionalTokens(t *testing.T) {
	sink := newParamSink()
	out := Raw("x BETWEEN ? AND ?", 1, 10).renderWith(sink)
	if !strings.Contains(out, "BETWEEN :p0 AND :p1") {
		t.Errorf("unexpected rendering: %q", out)
	}
}

func TestWhereFilterInsertsClauseWhenAbsent(t *testing.T) {
	out, err := WhereFilter{Predicate: "active = true"}.Apply("SELECT * FROM users LIMIT 10")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !strings.Contains(out, "WHERE active = true") {
		t.Errorf("expected an inserted WHERE clause, got %q", out)
	}
}

func TestWhereFilterANDsExistingClause(t *testing.T) {
	out, err := WhereFilter{Predicate: "active = true"}.Apply("SELECT * FROM users WHERE id = 1")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !strings.Contains(out, "(active = true) AND id = 1") {
		t.Errorf("unexpected rendering: %q", out)
	}
}

func TestLimitOffsetFilter(t *testing.T) {
	out, err := LimitOffsetFilter{Limit: 25, Offset: 50}.Apply("SELECT * FROM users")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out != "SELECT * FROM users LIMIT 25 OFFSET 50" {
		t.Errorf("unexpected rendering: %q", out)
	}
}

func TestCTEFilter(t *testing.T) {
	out, err := CTEFilter{Name: "recent", Query: "SELECT * FROM orders"}.Apply("SELECT * FROM recent")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out != "WITH recent AS (SELECT * FROM orders) SELECT * FROM recent" {
		t.Errorf("unexpected rendering: %q", out)
	}
}
