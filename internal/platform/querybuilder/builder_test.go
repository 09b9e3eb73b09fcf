package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("user_id", "total_points").
		From("leaderboard_entries").
		Where(Eq("rank", 1), IsNull("deleted_at")).
		OrderBy("total_points DESC", "user_id ASC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT user_id, total_points FROM leaderboard_entries WHERE rank = $1 AND deleted_at IS NULL ORDER BY total_points DESC, user_id ASC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_InCondition(t *testing.T) {
	query, args, err := Select("public_id").
		From("events").
		Where(In("public_id", []any{"gp-sakhir", "gp-jeddah"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id FROM events WHERE public_id IN ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("public_id").
		From("events").
		Where(In("public_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id FROM events WHERE 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ExprRewritesPlaceholders(t *testing.T) {
	query, args, err := Select("user_id").
		From("picks").
		Where(Eq("event_public_id", "gp-sakhir"), Expr("penalty > ? AND penalty <= ?", 0.0, 1.0)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT user_id FROM picks WHERE event_public_id = $1 AND penalty > $2 AND penalty <= $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_MultiRowWithSuffix(t *testing.T) {
	query, args, err := InsertInto("leaderboard_entries").
		Columns("user_id", "total_points").
		Values("user-a", 25).
		Values("user-b", 18).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET total_points = EXCLUDED.total_points").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO leaderboard_entries (user_id, total_points) VALUES ($1, $2), ($3, $4) ON CONFLICT (user_id) DO UPDATE SET total_points = EXCLUDED.total_points"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RejectsRaggedRows(t *testing.T) {
	_, _, err := InsertInto("leaderboard_entries").
		Columns("user_id", "total_points").
		Values("user-a").
		ToSQL()
	if err == nil {
		t.Fatal("expected error for row/column mismatch")
	}
}

func TestDeleteBuilder_RequiresWhere(t *testing.T) {
	if _, _, err := DeleteFrom("picks").ToSQL(); err == nil {
		t.Fatal("expected error for delete without where clause")
	}

	query, args, err := DeleteFrom("picks").Where(Eq("user_id", "user-a")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM picks WHERE user_id = $1" || len(args) != 1 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		UserID string `db:"user_id"`
		Points int    `db:"total_points"`
		Skip   string `db:"-"`
		NoTag  string
	}

	query, args, err := InsertModel("leaderboard_entries", row{UserID: "user-a", Points: 25, Skip: "x"}, "")
	if err != nil {
		t.Fatalf("build insert from model: %v", err)
	}

	wantQuery := "INSERT INTO leaderboard_entries (user_id, total_points) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "user-a" || args[1] != 25 {
		t.Fatalf("unexpected args: %+v", args)
	}
}
