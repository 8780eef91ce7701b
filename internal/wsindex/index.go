// Package wsindex is the `lsp` subcommand's workspace symbol index: an
// in-memory SQLite table (module path, body name, kind, span) populated
// as open buffers are parsed, queried by hover and go-to-definition handlers.
//
// Modeled on database/sql usage backing the scripting runtime's `sql`
// builtin module: a modernc.org/sqlite driver registered under the
// "sqlite" name and opened via sql.Open. Knot reuses that same driver
// for a purpose the original never needed — session-scoped symbol
// lookup rather than user-script database access — so the schema and
// query set below are new, but the driver wiring matches.
package wsindex

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/knotlang/knotc/internal/source"
)

// Kind classifies what a symbol row names.
type Kind string

const (
	KindFunc    Kind = "func"
	KindExtern  Kind = "extern"
	KindNewtype Kind = "newtype"
	KindVariant Kind = "variant"
)

// Symbol is one declaration recorded in the index.
type Symbol struct {
	Module string
	Name   string
	Kind   Kind
	Span   source.Span
}

// Index is a session-scoped, in-memory symbol table. It holds no state
// beyond the current session's buffers and is never written to disk —
// editor session state, not compiler output.
type Index struct {
	db *sql.DB
}

func Open() (*Index, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("wsindex: opening in-memory database: %w", err)
	}
	schema := `
	CREATE TABLE symbols (
		module   TEXT NOT NULL,
		name     TEXT NOT NULL,
		kind     TEXT NOT NULL,
		src_id   TEXT NOT NULL,
		span_lo  INTEGER NOT NULL,
		span_hi  INTEGER NOT NULL
	);
	CREATE INDEX idx_symbols_name ON symbols(name);
	CREATE INDEX idx_symbols_module ON symbols(module);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("wsindex: creating schema: %w", err)
	}
	return &Index{db: db}, nil
}

func (ix *Index) Close() error { return ix.db.Close() }

// Reindex replaces every row belonging to module with syms — called
// after each parse of an open buffer that reports no errors, so a
// buffer's symbols are current with its last error-free parse.
func (ix *Index) Reindex(module string, syms []Symbol) error {
	tx, err := ix.db.Begin()
	if err != nil {
		return fmt.Errorf("wsindex: beginning transaction: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM symbols WHERE module = ?`, module); err != nil {
		tx.Rollback()
		return fmt.Errorf("wsindex: clearing module %s: %w", module, err)
	}
	stmt, err := tx.Prepare(`INSERT INTO symbols (module, name, kind, src_id, span_lo, span_hi) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("wsindex: preparing insert: %w", err)
	}
	defer stmt.Close()
	for _, s := range syms {
		if _, err := stmt.Exec(s.Module, s.Name, string(s.Kind), s.Span.SourceID.String(), s.Span.Lo, s.Span.Hi); err != nil {
			tx.Rollback()
			return fmt.Errorf("wsindex: inserting symbol %s: %w", s.Name, err)
		}
	}
	return tx.Commit()
}

// ByName finds every symbol named name across the whole workspace, for
// go-to-definition on an unqualified or final path segment.
func (ix *Index) ByName(name string) ([]Symbol, error) {
	rows, err := ix.db.Query(`SELECT module, name, kind, src_id, span_lo, span_hi FROM symbols WHERE name = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("wsindex: querying name %s: %w", name, err)
	}
	defer rows.Close()
	return scanSymbols(rows)
}

// AtOffset finds the symbol (if any) whose span contains offset within
// the given source file, for hover.
func (ix *Index) AtOffset(srcID source.ID, offset uint32) ([]Symbol, error) {
	rows, err := ix.db.Query(
		`SELECT module, name, kind, src_id, span_lo, span_hi FROM symbols
		 WHERE src_id = ? AND span_lo <= ? AND ? < span_hi`,
		srcID.String(), offset, offset)
	if err != nil {
		return nil, fmt.Errorf("wsindex: querying offset: %w", err)
	}
	defer rows.Close()
	return scanSymbols(rows)
}

func scanSymbols(rows *sql.Rows) ([]Symbol, error) {
	var out []Symbol
	for rows.Next() {
		var s Symbol
		var kind, srcID string
		if err := rows.Scan(&s.Module, &s.Name, &kind, &srcID, &s.Span.Lo, &s.Span.Hi); err != nil {
			return nil, fmt.Errorf("wsindex: scanning row: %w", err)
		}
		s.Kind = Kind(kind)
		out = append(out, s)
	}
	return out, rows.Err()
}
