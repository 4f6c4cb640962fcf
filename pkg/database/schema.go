package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Table and column identifiers shared by the repositories and the mirror.
const (
	TableTeachers  = "teachers"
	TableCourses   = "courses"
	TableInstances = "class_instances"
)

// CurrentSchemaVersion is the version a fresh database is created at.
const CurrentSchemaVersion = 3

const createSchemaVersionTable = `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`

const createTeachersTable = `CREATE TABLE IF NOT EXISTS teachers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT,
	phone TEXT
)`

// createCoursesTableV1 is the layout before price, difficulty and type existed.
const createCoursesTableV1 = `CREATE TABLE IF NOT EXISTS courses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT,
	teacher_id INTEGER NOT NULL,
	day_of_week TEXT NOT NULL,
	time TEXT NOT NULL,
	duration INTEGER NOT NULL,
	max_capacity INTEGER NOT NULL,
	FOREIGN KEY(teacher_id) REFERENCES teachers(id)
)`

const createCoursesTable = `CREATE TABLE IF NOT EXISTS courses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT,
	teacher_id INTEGER NOT NULL,
	day_of_week TEXT NOT NULL,
	time TEXT NOT NULL,
	duration INTEGER NOT NULL,
	max_capacity INTEGER NOT NULL,
	price REAL NOT NULL,
	difficulty TEXT,
	type TEXT,
	FOREIGN KEY(teacher_id) REFERENCES teachers(id)
)`

const createInstancesTable = `CREATE TABLE IF NOT EXISTS class_instances (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	course_id INTEGER NOT NULL,
	teacher_id INTEGER NOT NULL,
	date TEXT NOT NULL,
	FOREIGN KEY(course_id) REFERENCES courses(id),
	FOREIGN KEY(teacher_id) REFERENCES teachers(id)
)`

type migration struct {
	version    int
	statements []string
}

// migrations upgrade an existing database one version at a time.
var migrations = []migration{
	{version: 2, statements: []string{
		`ALTER TABLE courses ADD COLUMN price REAL NOT NULL DEFAULT 0`,
	}},
	{version: 3, statements: []string{
		`ALTER TABLE courses ADD COLUMN difficulty TEXT`,
		`ALTER TABLE courses ADD COLUMN type TEXT`,
	}},
}

// Migrate brings the database up to CurrentSchemaVersion. A database without a
// version row gets the full current schema; older versions are upgraded in
// place. Running it again on an up-to-date database does nothing.
func Migrate(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	version, err := SchemaVersion(ctx, db)
	if err != nil {
		return err
	}

	if version == 0 {
		if err := withTx(ctx, db, func(tx *sqlx.Tx) error {
			for _, stmt := range []string{createSchemaVersionTable, createTeachersTable, createCoursesTable, createInstancesTable} {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("create schema: %w", err)
				}
			}
			return setSchemaVersion(ctx, tx, CurrentSchemaVersion)
		}); err != nil {
			return err
		}
		logger.Info("database schema initialised", zap.Int("version", CurrentSchemaVersion))
		return nil
	}

	if version >= CurrentSchemaVersion {
		logger.Debug("database schema up to date", zap.Int("version", version))
		return nil
	}

	for _, m := range migrations {
		if m.version <= version {
			continue
		}
		if err := withTx(ctx, db, func(tx *sqlx.Tx) error {
			for _, stmt := range m.statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("migrate to v%d: %w", m.version, err)
				}
			}
			return setSchemaVersion(ctx, tx, m.version)
		}); err != nil {
			return err
		}
		logger.Info("database schema migrated", zap.Int("from_version", version), zap.Int("to_version", m.version))
		version = m.version
	}
	return nil
}

// CreateV1Schema lays down the first released schema (version 1). It exists so
// upgrade paths can be exercised against a realistic old database.
func CreateV1Schema(ctx context.Context, db *sqlx.DB) error {
	return withTx(ctx, db, func(tx *sqlx.Tx) error {
		for _, stmt := range []string{createSchemaVersionTable, createTeachersTable, createCoursesTableV1, createInstancesTable} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("create v1 schema: %w", err)
			}
		}
		return setSchemaVersion(ctx, tx, 1)
	})
}

// Reset drops every studio table and recreates the current schema.
func Reset(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	if err := withTx(ctx, db, func(tx *sqlx.Tx) error {
		// children first so foreign keys never dangle
		for _, table := range []string{TableInstances, TableCourses, TableTeachers, "schema_version"} {
			if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
				return fmt.Errorf("drop %s: %w", table, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	return Migrate(ctx, db, logger)
}

// SchemaVersion returns the stored schema version, or 0 for a new database.
func SchemaVersion(ctx context.Context, db *sqlx.DB) (int, error) {
	var name string
	err := db.GetContext(ctx, &name, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'`)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lookup schema_version: %w", err)
	}

	var version int
	err = db.GetContext(ctx, &version, `SELECT version FROM schema_version LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema_version: %w", err)
	}
	return version, nil
}

func setSchemaVersion(ctx context.Context, tx *sqlx.Tx, version int) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM schema_version`); err != nil {
		return fmt.Errorf("clear schema_version: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, version); err != nil {
		return fmt.Errorf("set schema_version: %w", err)
	}
	return nil
}

func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
