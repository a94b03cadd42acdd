// Package sqlite stores console command schemas in an SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/mwantia/codeconsole"
	"github.com/mwantia/codeconsole/catalog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var ErrSourceClosed = errors.New("sqlite: source already closed")

// SQLiteSource keeps commands in two tables:
//
//	console_commands  (name, help)
//	console_arguments (command, position, tag, display_name, value_type, help, required, default_value)
//
// Arguments are read back in position order, so declaration order survives a round trip.
type SQLiteSource struct {
	mu sync.RWMutex
	db *sql.DB

	path string
}

// NewSQLiteSource opens (and initializes) the database at dbPath.
// The dbPath can be ":memory:" for an in-memory database or a file path.
func NewSQLiteSource(dbPath string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}

	source := &SQLiteSource{
		db:   db,
		path: dbPath,
	}

	if err := source.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return source, nil
}

func (ss *SQLiteSource) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS console_commands (
		name TEXT PRIMARY KEY,
		help TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS console_arguments (
		command TEXT NOT NULL REFERENCES console_commands(name) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		tag TEXT NOT NULL,
		display_name TEXT NOT NULL DEFAULT '',
		value_type TEXT NOT NULL,
		help TEXT NOT NULL DEFAULT '',
		required INTEGER NOT NULL DEFAULT 0,
		default_value TEXT,
		PRIMARY KEY (command, tag)
	);

	CREATE INDEX IF NOT EXISTS idx_console_arguments_position ON console_arguments(command, position);
	`

	_, err := ss.db.Exec(schema)
	return err
}

func (ss *SQLiteSource) Name() string {
	return "sqlite:" + ss.path
}

// Save inserts or replaces a command together with all of its arguments.
func (ss *SQLiteSource) Save(ctx context.Context, cmd catalog.Command) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.db == nil {
		return ErrSourceClosed
	}

	tx, err := ss.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteCommand(ctx, tx, cmd.Name); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO console_commands (name, help) VALUES (?, ?)`, cmd.Name, cmd.Help); err != nil {
		return err
	}

	for i, arg := range cmd.Arguments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO console_arguments (command, position, tag, display_name, value_type, help, required, default_value)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, cmd.Name, i, arg.Tag, arg.Name, arg.Type, arg.Help, arg.Required, nullString(arg.Default))
		if err != nil {
			return fmt.Errorf("failed to save argument %s of %s: %w", arg.Tag, cmd.Name, err)
		}
	}

	return tx.Commit()
}

// Delete removes a command and its arguments. Deleting an unknown name is not an error.
func (ss *SQLiteSource) Delete(ctx context.Context, name string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.db == nil {
		return ErrSourceClosed
	}

	tx, err := ss.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteCommand(ctx, tx, name); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteCommand(ctx context.Context, tx *sql.Tx, name string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM console_arguments WHERE command = ?`, name); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `DELETE FROM console_commands WHERE name = ?`, name)
	return err
}

// Commands returns the stored commands ordered by name.
func (ss *SQLiteSource) Commands(ctx context.Context) ([]catalog.Command, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	if ss.db == nil {
		return nil, ErrSourceClosed
	}

	rows, err := ss.db.QueryContext(ctx, `
		SELECT c.name, c.help, a.tag, a.display_name, a.value_type, a.help, a.required, a.default_value
		FROM console_commands c
		LEFT JOIN console_arguments a ON a.command = c.name
		ORDER BY c.name, a.position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cmds []catalog.Command
	for rows.Next() {
		var name, help string
		var tag, displayName, valueType, argHelp, def sql.NullString
		var required sql.NullBool

		if err := rows.Scan(&name, &help, &tag, &displayName, &valueType, &argHelp, &required, &def); err != nil {
			return nil, err
		}

		if len(cmds) == 0 || cmds[len(cmds)-1].Name != name {
			cmds = append(cmds, catalog.Command{Name: name, Help: help})
		}
		if !tag.Valid {
			continue
		}

		arg := catalog.Argument{
			Tag:      tag.String,
			Name:     displayName.String,
			Type:     valueType.String,
			Help:     argHelp.String,
			Required: required.Bool,
		}
		if def.Valid {
			value := def.String
			arg.Default = &value
		}

		last := &cmds[len(cmds)-1]
		last.Arguments = append(last.Arguments, arg)
	}

	return cmds, rows.Err()
}

func (ss *SQLiteSource) Load(ctx context.Context) ([]*codeconsole.CommandDefinition, error) {
	cmds, err := ss.Commands(ctx)
	if err != nil {
		return nil, err
	}

	doc := catalog.Document{Commands: cmds}
	return doc.Definitions()
}

func (ss *SQLiteSource) Close() error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.db == nil {
		return ErrSourceClosed
	}

	err := ss.db.Close()
	ss.db = nil
	return err
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
