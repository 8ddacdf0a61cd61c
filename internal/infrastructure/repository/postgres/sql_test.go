package postgres

import (
	"database/sql"
	"testing"

	crerr "github.com/cockroachdb/errors"
)

func TestIsBindParameterMismatch(t *testing.T) {
	t.Run("matches bind mismatch error", func(t *testing.T) {
		err := fakeErr("pq: bind message supplies 2 parameters, but prepared statement \"\" requires 1 (08P01)")
		if !isBindParameterMismatch(err) {
			t.Fatalf("expected true for bind mismatch error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		err := fakeErr("pq: relation matches does not exist")
		if isBindParameterMismatch(err) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUnnamedPreparedStatementMissing(t *testing.T) {
	t.Run("matches statement missing message", func(t *testing.T) {
		err := fakeErr("pq: unnamed prepared statement does not exist (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for statement missing error")
		}
	})

	t.Run("matches by 26000 code", func(t *testing.T) {
		err := fakeErr("pq: prepared statement missing (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for 26000 prepared statement error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		err := fakeErr("pq: relation matches does not exist")
		if isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestWrapQueryErr(t *testing.T) {
	t.Run("adds pooler hint", func(t *testing.T) {
		err := wrapQueryErr(fakeErr("pq: unnamed prepared statement does not exist (26000)"), "select players")
		hints := crerr.GetAllHints(err)
		if len(hints) != 1 {
			t.Fatalf("expected one hint, got %v", hints)
		}
	})

	t.Run("keeps not found detectable", func(t *testing.T) {
		err := wrapQueryErr(sql.ErrNoRows, "find player")
		if !isNotFound(err) {
			t.Fatalf("expected wrapped sql.ErrNoRows to be detected")
		}
	})

	t.Run("nil stays nil", func(t *testing.T) {
		if wrapQueryErr(nil, "noop") != nil {
			t.Fatalf("expected nil")
		}
	})
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
