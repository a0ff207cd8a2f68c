// Package sqlutil holds small database/sql helpers shared by the journal
// queries.
package sqlutil

import (
	"database/sql"
	"strings"
)

// MatchAny builds a "column IN (?, ...)" condition over the distinct values,
// keeping their first-seen order. With no values it returns an empty
// condition, which callers treat as "no filter".
func MatchAny(column string, values []string) (cond string, args []any) {
	seen := make(map[string]struct{}, len(values))
	var ph []string
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		ph = append(ph, "?")
		args = append(args, v)
	}
	if len(ph) == 0 {
		return "", nil
	}
	return column + " IN (" + strings.Join(ph, ", ") + ")", args
}

// ScanRows decodes every row with scan, then closes rows.
func ScanRows[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
