package query

import (
	"fmt"
	"reflect"
	"strings"
)

// SortField is one ORDER BY term, named by view field.
type SortField struct {
	Field      string
	Descending bool
}

type condition struct {
	clause string
	arg    any
}

// Builder accumulates equality filters and ordering with numbered parameters.
type Builder struct {
	projection *ProjectionMap
	conditions []condition
	sort       []SortField
}

// NewBuilder creates a Builder ordered by sort.
func NewBuilder(projection *ProjectionMap, sort ...SortField) *Builder {
	return &Builder{
		projection: projection,
		sort:       sort,
	}
}

// WhereEquals adds "field = value". Nil values (including typed nil pointers)
// are ignored so optional filters can be passed straight through.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	b.conditions = append(b.conditions, condition{
		clause: b.projection.Column(field) + " = $%d",
		arg:    value,
	})
	return b
}

// Build returns the SELECT statement and its arguments.
func (b *Builder) Build() (string, []any) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", b.projection.Columns(), b.projection.From())

	args := make([]any, 0, len(b.conditions))
	for i, c := range b.conditions {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		args = append(args, c.arg)
		fmt.Fprintf(&sb, c.clause, len(args))
	}

	if len(b.sort) > 0 {
		parts := make([]string, len(b.sort))
		for i, s := range b.sort {
			dir := "ASC"
			if s.Descending {
				dir = "DESC"
			}
			parts[i] = b.projection.Column(s.Field) + " " + dir
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(parts, ", "))
	}

	return sb.String(), args
}

// BuildSingle returns a SELECT for the row whose idField equals id.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	q := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(),
		b.projection.From(),
		b.projection.Column(idField),
	)
	return q, []any{id}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
