package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "name").
		From("players").
		Where(EqFold("name", "Viktor Axelsen"), IsNull("deleted_at")).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, name FROM players WHERE LOWER(name) = LOWER($1) AND deleted_at IS NULL ORDER BY id LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "Viktor Axelsen" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestContainsFoldEscapesWildcards(t *testing.T) {
	query, args, err := Select("public_id").
		From("players").
		Where(ContainsFold("name", `50%_off\`)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := `SELECT public_id FROM players WHERE name ILIKE $1 ESCAPE '\'`
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != `%50\%\_off\\%` {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("scraped_dates").
		Columns("date", "scraped_at").
		Values("12. Jan", "now").
		Values("11. Jan", "now").
		Suffix("ON CONFLICT (date) DO UPDATE SET scraped_at = EXCLUDED.scraped_at").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO scraped_dates (date, scraped_at) VALUES ($1, $2), ($3, $4) ON CONFLICT (date) DO UPDATE SET scraped_at = EXCLUDED.scraped_at"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "12. Jan" || args[2] != "11. Jan" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderRejectsShortRow(t *testing.T) {
	_, _, err := InsertInto("matches").
		Columns("name", "date").
		Values("World Tour Finals").
		ToSQL()
	if err == nil {
		t.Fatalf("expected error for mismatched row")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Name    string `db:"name"`
		Skipped string `db:"-"`
		Date    string `db:"date"`
		hidden  string
	}

	query, args, err := InsertModel("matches", row{Name: "India Open", Date: "2026-01-12", hidden: "x"}, "RETURNING public_id")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO matches (name, date) VALUES ($1, $2) RETURNING public_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "India Open" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
