package param

import (
	"reflect"
	"testing"
)

func TestDetectSkipsQuotedAndComments(t *testing.T) {
	sql := `SELECT * FROM u WHERE name = '?' AND note = "contains :x" -- ? trailing
	AND tag = $tag$ literal @foo $tag$ AND id = ?`

	infos := Detect(sql, "postgres")
	if len(infos) != 1 {
		t.Fatalf("expected exactly 1 real placeholder, got %d: %+v", len(infos), infos)
	}
	if infos[0].Style != Qmark {
		t.Errorf("expected Qmark, got %s", infos[0].Style)
	}
}

func TestDetectAllStyles(t *testing.T) {
	cases := []struct {
		sql   string
		style Style
		name  string
	}{
		{"SELECT ?", Qmark, ""},
		{"SELECT $1", NumericDollar, ""},
		{"SELECT :1", NumericColon, ""},
		{"SELECT :name", NamedColon, "name"},
		{"SELECT @name", NamedAt, "name"},
		{"SELECT $name", NamedDollar, "name"},
		{"SELECT %s", PyformatPositional, ""},
		{"SELECT %(name)s", PyformatNamed, "name"},
	}
	for _, c := range cases {
		infos := Detect(c.sql, "")
		if len(infos) != 1 {
			t.Fatalf("%q: expected 1 placeholder, got %d", c.sql, len(infos))
		}
		if infos[0].Style != c.style {
			t.Errorf("%q: expected style %s, got %s", c.sql, c.style, infos[0].Style)
		}
		if infos[0].Name != c.name {
			t.Errorf("%q: expected name %q, got %q", c.sql, c.name, infos[0].Name)
		}
	}
}

// E1: positional qmark input rendered to numeric dollar target.
func TestE1PositionalToNumericDollar(t *testing.T) {
	sql := "SELECT * FROM u WHERE id = ? AND name = ?"
	infos := Detect(sql, "postgres")
	got := Convert(sql, infos, NumericDollar)
	want := "SELECT * FROM u WHERE id = $1 AND name = $2"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

// E2: named colon input, qmark target.
func TestE2NamedToQmark(t *testing.T) {
	sql := "SELECT 1 WHERE a = :alpha AND b = :beta"
	infos := Detect(sql, "")
	got := Convert(sql, infos, Qmark)
	want := "SELECT 1 WHERE a = ? AND b = ?"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}

	retargeted := RetargetInfos(infos, Qmark)
	payload := Named{"alpha": 1, "beta": 2}
	exec, err := Reshape(payload, retargeted, ExecPositionOnly)
	if err != nil {
		t.Fatalf("reshape: %v", err)
	}
	if !reflect.DeepEqual(exec.Positional, []interface{}{1, 2}) {
		t.Errorf("got %+v", exec.Positional)
	}
}

func TestConvertRepeatedNumericKeepsSameSlot(t *testing.T) {
	sql := "SELECT * FROM u WHERE a = $1 OR b = $1 OR c = $2"
	infos := Detect(sql, "postgres")
	got := Convert(sql, infos, NumericColon)
	want := "SELECT * FROM u WHERE a = :1 OR b = :1 OR c = :2"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestReshapeArityMismatch(t *testing.T) {
	sql := "SELECT ? , ?"
	infos := Detect(sql, "")
	_, err := Reshape(Positional{1}, infos, ExecPositionOnly)
	if err == nil {
		t.Fatal("expected arity mismatch error")
	}
}

func TestReshapeNoSuchParameter(t *testing.T) {
	sql := "SELECT :a, :b"
	infos := Detect(sql, "")
	_, err := Reshape(Named{"a": 1}, infos, ExecNameOnly)
	if err == nil {
		t.Fatal("expected no-such-parameter error")
	}
}

// E5: list expansion under non-native adapters.
func TestE5ListExpansion(t *testing.T) {
	sql := "SELECT * FROM u WHERE id IN (:ids)"
	values := map[string]interface{}{"ids": []int{1, 2, 3}}

	newSQL, newInfos, newValues, err := ListExpand(sql, Detect(sql, ""), values)
	if err != nil {
		t.Fatalf("list expand: %v", err)
	}
	wantSQL := "SELECT * FROM u WHERE id IN (:ids_0, :ids_1, :ids_2)"
	if newSQL != wantSQL {
		t.Errorf("got %q want %q", newSQL, wantSQL)
	}
	if len(newInfos) != 3 {
		t.Fatalf("expected 3 placeholders, got %d", len(newInfos))
	}
	for i := 0; i < 3; i++ {
		want := int(1 + i)
		if newValues[newInfos[i].Name] != want {
			t.Errorf("ids_%d: got %v want %v", i, newValues[newInfos[i].Name], want)
		}
	}
}

func TestListExpandLeavesScalarAlone(t *testing.T) {
	sql := "SELECT * FROM u WHERE id = :id"
	values := map[string]interface{}{"id": 5}
	newSQL, _, _, err := ListExpand(sql, Detect(sql, ""), values)
	if err != nil {
		t.Fatalf("list expand: %v", err)
	}
	if newSQL != sql {
		t.Errorf("expected no change, got %q", newSQL)
	}
}
