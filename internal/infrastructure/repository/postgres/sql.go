package postgres

import (
	"database/sql"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

func isNotFound(err error) bool {
	return crerr.Is(err, sql.ErrNoRows)
}

// isBindParameterMismatch reports pgbouncer transaction pooling reusing an unnamed statement
// prepared with a different parameter count.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "prepared statement")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unnamed prepared statement does not exist") {
		return true
	}
	return strings.Contains(msg, "prepared statement") && strings.Contains(msg, "26000")
}

// wrapQueryErr annotates err, adding a configuration hint for pooled-connection statement errors.
func wrapQueryErr(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	wrapped := crerr.Wrapf(err, format, args...)
	if isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) {
		return crerr.WithHint(wrapped, "set DB_DISABLE_PREPARED_BINARY_RESULT=true when connecting through a transaction pooler")
	}
	return wrapped
}

func dedupeStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
