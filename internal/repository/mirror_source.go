package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/yoga-studio-admin/internal/models"
	"github.com/noah-isme/yoga-studio-admin/pkg/database"
)

// MirroredTables lists the local tables copied to the mirror, parents first.
var MirroredTables = []string{
	database.TableTeachers,
	database.TableCourses,
	database.TableInstances,
}

// MirrorSource dumps local rows for the remote mirror.
type MirrorSource struct {
	db *sqlx.DB
}

// NewMirrorSource constructs a MirrorSource.
func NewMirrorSource(db *sqlx.DB) *MirrorSource {
	return &MirrorSource{db: db}
}

// Rows returns every row of table keyed by its id column. Column values are
// coerced to int64, float64, string or nil.
func (s *MirrorSource) Rows(ctx context.Context, table string) ([]models.MirrorRow, error) {
	if !isMirroredTable(table) {
		return nil, fmt.Errorf("table %q is not mirrored", table)
	}

	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM "+table+" ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("dump %s: %w", table, err)
	}
	defer rows.Close()

	var out []models.MirrorRow
	for rows.Next() {
		raw := map[string]interface{}{}
		if err := rows.MapScan(raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		fields := make(map[string]interface{}, len(raw))
		for column, value := range raw {
			fields[column] = coerceValue(value)
		}
		out = append(out, models.MirrorRow{ID: rowID(fields["id"]), Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

func isMirroredTable(table string) bool {
	for _, t := range MirroredTables {
		if t == table {
			return true
		}
	}
	return false
}

func coerceValue(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return v
	case float32:
		return float64(v)
	case bool:
		if v {
			return int64(1)
		}
		return int64(0)
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func rowID(value interface{}) string {
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
