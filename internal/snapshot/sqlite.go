package snapshot

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

// snapshotTable is the single table a SQLite snapshot contains.
const snapshotTable = "canonical_records"

// WriteSQLite dumps the canonical table into a SQLite database at path. The
// database holds one table, canonical_records, with a row_idx column for
// the positional index plus one TEXT column per schema column. All rows are
// inserted in a single transaction.
func WriteSQLite(table *types.Table, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening snapshot database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(snapshotDDL(table.Columns)); err != nil {
		return fmt.Errorf("creating %s: %w", snapshotTable, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertSQL(table.Columns))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range table.Rows {
		row, err := renderRow(table, i)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		args := make([]any, 0, len(row)+1)
		args = append(args, i)
		for _, cell := range row {
			args = append(args, cell)
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// snapshotDDL builds the CREATE TABLE statement. Column names are quoted:
// the canonical schema includes identifiers like False_positive that are
// fine, but a configured schema may carry anything.
func snapshotDDL(columns []string) string {
	defs := make([]string, 0, len(columns)+1)
	defs = append(defs, "row_idx INTEGER PRIMARY KEY")
	for _, col := range columns {
		defs = append(defs, fmt.Sprintf("%q TEXT", col))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", snapshotTable, strings.Join(defs, ", "))
}

// insertSQL builds the parameterized insert for one row.
func insertSQL(columns []string) string {
	names := make([]string, 0, len(columns)+1)
	names = append(names, "row_idx")
	placeholders := []string{"?"}
	for _, col := range columns {
		names = append(names, fmt.Sprintf("%q", col))
		placeholders = append(placeholders, "?")
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		snapshotTable,
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
	)
}
