package repositories

import (
	"context"
	"strconv"
	"strings"

	"transportbooking/internal/db"
)

// NextID produces the next sequential identifier for a record type, e.g.
// "b12" for bookings. It scans every existing id of the type, strips the
// prefix and returns prefix+(max+1), or prefix+"1" for an empty table.
//
// This is a full scan on every insert and two concurrent inserts can compute
// the same id; the unique primary key turns that race into an insert error.
// The format is kept because clients rely on the human-readable ids.
func NextID(ctx context.Context, q db.Querier, table, idColumn, prefix string) (string, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+idColumn+` FROM `+table)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	maxID := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		num, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil {
			continue
		}
		if num > maxID {
			maxID = num
		}
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	return prefix + strconv.Itoa(maxID+1), nil
}
