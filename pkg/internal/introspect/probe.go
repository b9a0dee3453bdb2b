package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/TechXTT/scaffold/internal/dsl"
	"github.com/TechXTT/scaffold/internal/typeconv"
)

// Querier is the subset of *sql.DB the probe needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

const columnsQuery = `SELECT column_name, udt_name
             FROM information_schema.columns
             WHERE table_schema = $1 AND table_name = $2`

// Mismatch is a column whose type differs from the one the field maps to.
type Mismatch struct {
	Field string
	Want  string
	Got   string
}

// ModelReport describes how one model lines up with the live database.
type ModelReport struct {
	Model string
	// Table is the matched table, empty when none exists.
	Table          string
	MissingColumns []string
	Mismatches     []Mismatch
}

// OK reports a matched table with every column present and well typed.
func (r ModelReport) OK() bool {
	return r.Table != "" && len(r.MissingColumns) == 0 && len(r.Mismatches) == 0
}

var mapAttrRe = regexp.MustCompile(`@map\("([^"]+)"\)`)

// columnName honours a field-level @map("...") attribute.
func columnName(f dsl.Field) string {
	if m := mapAttrRe.FindStringSubmatch(f.Attributes); m != nil {
		return m[1]
	}
	return f.Name
}

// Probe compares every model of ast against the tables of dbSchema. It only
// reads information_schema.
func Probe(ctx context.Context, db Querier, ast dsl.AST, dbSchema string, logger *zap.Logger) ([]ModelReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dbSchema == "" {
		dbSchema = "public"
	}

	reports := make([]ModelReport, 0, len(ast.Entities))
	for _, ent := range ast.Entities {
		report := ModelReport{Model: ent.Name}

		var types map[string]string // lower-case column -> udt_name
		for _, table := range candidateTables(ent) {
			cols, err := columns(ctx, db, dbSchema, table)
			if err != nil {
				return nil, fmt.Errorf("introspect table %s: %w", table, err)
			}
			if len(cols) > 0 {
				report.Table = table
				types = cols
				break
			}
		}
		if report.Table == "" {
			logger.Debug("no table for model", zap.String("model", ent.Name))
			reports = append(reports, report)
			continue
		}

		for _, f := range ent.Fields {
			if f.Kind == dsl.KindRelation {
				continue
			}
			col := strings.ToLower(columnName(f))
			udt, ok := types[col]
			if !ok {
				report.MissingColumns = append(report.MissingColumns, columnName(f))
				continue
			}
			if f.Kind != dsl.KindScalar || f.List {
				continue
			}
			want := typeconv.SQLType(f.Type, f.IsUUID())
			if got := typeconv.CanonicalType(udt); want != "" && got != want {
				report.Mismatches = append(report.Mismatches, Mismatch{Field: f.Name, Want: want, Got: got})
			}
		}
		logger.Debug("probed model",
			zap.String("model", ent.Name),
			zap.String("table", report.Table),
			zap.Int("missing", len(report.MissingColumns)),
			zap.Int("mismatched", len(report.Mismatches)),
		)
		reports = append(reports, report)
	}
	return reports, nil
}

// candidateTables lists the names Prisma may have created for a model: the
// @@map table first, then the model name and its lower-case form.
func candidateTables(ent dsl.Entity) []string {
	var out []string
	for _, name := range []string{ent.Map, ent.Name, strings.ToLower(ent.Name)} {
		if name != "" && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

func columns(ctx context.Context, db Querier, dbSchema, table string) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, columnsQuery, dbSchema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := map[string]string{}
	for rows.Next() {
		var col, udtName string
		if err := rows.Scan(&col, &udtName); err != nil {
			return nil, fmt.Errorf("scan column for %s: %w", table, err)
		}
		cols[strings.ToLower(col)] = strings.ToUpper(udtName)
	}
	return cols, rows.Err()
}
