package param

import "testing"

func TestRenderStaticSubstitutesLiterals(t *testing.T) {
	sql := "SELECT * FROM users WHERE name = :name AND age > :age"
	infos := Detect(sql, "postgres")
	values := map[string]interface{}{"name": "O'Brien", "age": 30}

	out, err := RenderStatic(sql, infos, values, "postgres")
	if err != nil {
		t.Fatalf("RenderStatic: %v", err)
	}
	want := "SELECT * FROM users WHERE name = 'O''Brien' AND age > 30"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRenderStaticMissingValue(t *testing.T) {
	sql := "SELECT * FROM users WHERE id = :id"
	infos := Detect(sql, "postgres")
	if _, err := RenderStatic(sql, infos, map[string]interface{}{}, "postgres"); err == nil {
		t.Fatal("expected an error for a missing static value")
	}
}

func TestRenderStaticBinaryCap(t *testing.T) {
	sql := "SELECT :blob"
	infos := Detect(sql, "postgres")
	big := make([]byte, MaxStaticBinaryBytes+1)
	_, err := RenderStatic(sql, infos, map[string]interface{}{"blob": big}, "postgres")
	if err == nil {
		t.Fatal("expected an error for an oversized binary literal")
	}
}

func TestRenderStaticPostgresHexLiteral(t *testing.T) {
	sql := "SELECT :blob"
	infos := Detect(sql, "postgres")
	out, err := RenderStatic(sql, infos, map[string]interface{}{"blob": []byte{0xde, 0xad}}, "postgres")
	if err != nil {
		t.Fatalf("RenderStatic: %v", err)
	}
	if out != `SELECT '\xdead'` {
		t.Errorf("got %q", out)
	}
}
