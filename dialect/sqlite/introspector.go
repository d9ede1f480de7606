package sqlite

import (
	"context"
	"fmt"

	"github.com/edgekit/actorsql/dialect"
)

// Introspector reads SQLite schema metadata through a backend
// connection. It issues plain queries against sqlite_master and the
// pragma_table_info table-valued function, so it works over any
// Queryable regardless of how the backend executes statements.
type Introspector struct {
	q dialect.Queryable
}

// NewIntrospector returns an Introspector bound to the given query
// surface.
func NewIntrospector(q dialect.Queryable) *Introspector {
	return &Introspector{q: q}
}

// Tables lists user tables and views, excluding SQLite internals.
func (in *Introspector) Tables(ctx context.Context) ([]dialect.TableMetadata, error) {
	res, err := in.q.ExecuteQuery(ctx, dialect.CompiledQuery{
		SQL: `SELECT name, type FROM sqlite_master
WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
ORDER BY name`,
	})
	if err != nil {
		return nil, err
	}
	tables := make([]dialect.TableMetadata, 0, len(res.Rows))
	for _, row := range res.Rows {
		tables = append(tables, dialect.TableMetadata{
			Name:   asString(row["name"]),
			IsView: asString(row["type"]) == "view",
		})
	}
	return tables, nil
}

// Columns lists the columns of the named table in declaration order.
func (in *Introspector) Columns(ctx context.Context, table string) ([]dialect.ColumnMetadata, error) {
	if !isValidIdentifier(table) {
		return nil, fmt.Errorf("sqlite: introspect: invalid table name %q", table)
	}
	res, err := in.q.ExecuteQuery(ctx, dialect.CompiledQuery{
		SQL:        `SELECT name, type, "notnull", dflt_value, pk FROM pragma_table_info(?) ORDER BY cid`,
		Parameters: []any{table},
	})
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, fmt.Errorf("sqlite: introspect: table %q not found", table)
	}
	cols := make([]dialect.ColumnMetadata, 0, len(res.Rows))
	for _, row := range res.Rows {
		cols = append(cols, dialect.ColumnMetadata{
			Name:         asString(row["name"]),
			DataType:     asString(row["type"]),
			NotNull:      asBool(row["notnull"]),
			HasDefault:   row["dflt_value"] != nil,
			IsPrimaryKey: asBool(row["pk"]),
		})
	}
	return cols, nil
}

// asString converts a driver-native row value to a string.
func asString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// asBool interprets SQLite's integer booleans. pragma_table_info reports
// pk as a 1-based index within the primary key, so any non-zero value
// counts as true.
func asBool(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

var _ dialect.Introspector = (*Introspector)(nil)
