package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// FieldKind selects how a field value is bound.
type FieldKind int

const (
	// KindValue binds the value as is.
	KindValue FieldKind = iota
	// KindBool binds through Dialect.Bool.
	KindBool
	// KindJSON encodes a StringList or LinkMap into JSON text.
	KindJSON
)

// Field is one present entry of a sparse update, keyed by its logical name.
type Field struct {
	Name  string
	Kind  FieldKind
	Value any
}

// appendField adds name to fields when o is set.
func appendField[T any](fields []Field, name string, kind FieldKind, o models.Optional[T]) []Field {
	if !o.Set {
		return fields
	}
	return append(fields, Field{Name: name, Kind: kind, Value: o.Value})
}

// bindValue converts v into the engine representation for kind.
func bindValue(d Dialect, kind FieldKind, v any) (any, error) {
	switch kind {
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", v)
		}
		return d.Bool(b), nil
	case KindJSON:
		switch val := v.(type) {
		case models.StringList:
			return models.EncodeStringList(val), nil
		case []string:
			return models.EncodeStringList(val), nil
		case models.LinkMap:
			return models.EncodeLinkMap(val), nil
		case map[string]string:
			return models.EncodeLinkMap(val), nil
		default:
			return nil, fmt.Errorf("expected list or map, got %T", v)
		}
	default:
		// optional text columns bind as NULL or their value
		if s, ok := v.(*string); ok {
			if s == nil {
				return nil, nil
			}
			return *s, nil
		}
		return v, nil
	}
}

func placeholderFor(d Dialect, kind FieldKind, n int) string {
	if kind == KindJSON {
		return d.JSONPlaceholder(n)
	}
	return d.Placeholder(n)
}

// CompileUpdate renders the SET clause for fields. Logical names are mapped
// to stored columns through columns; a name missing from columns is an error.
// ok is false when fields is empty, in which case nothing must be executed.
// updated_at is always set to now otherwise.
func CompileUpdate(d Dialect, columns map[string]string, fields []Field, now time.Time) (setClause string, args []any, ok bool, err error) {
	if len(fields) == 0 {
		return "", nil, false, nil
	}

	parts := make([]string, 0, len(fields)+1)
	args = make([]any, 0, len(fields)+1)
	for _, f := range fields {
		column, known := columns[f.Name]
		if !known {
			return "", nil, false, fmt.Errorf("field %q is not updatable", f.Name)
		}
		v, err := bindValue(d, f.Kind, f.Value)
		if err != nil {
			return "", nil, false, fmt.Errorf("field %q: %w", f.Name, err)
		}
		args = append(args, v)
		parts = append(parts, column+" = "+placeholderFor(d, f.Kind, len(args)))
	}

	args = append(args, now)
	parts = append(parts, "updated_at = "+d.Placeholder(len(args)))
	return strings.Join(parts, ", "), args, true, nil
}

// BuildUpdate renders a full UPDATE of the row with the given id. ok mirrors
// CompileUpdate.
func BuildUpdate(d Dialect, table string, columns map[string]string, fields []Field, id string, now time.Time) (string, []any, bool, error) {
	set, args, ok, err := CompileUpdate(d, columns, fields, now)
	if err != nil || !ok {
		return "", nil, ok, err
	}
	args = append(args, id)
	stmt := "UPDATE " + table + " SET " + set + " WHERE id = " + d.Placeholder(len(args))
	return stmt, args, true, nil
}

// BuildInsert renders an INSERT of every field. Field names are used as
// column names.
func BuildInsert(d Dialect, table string, fields []Field) (string, []any, error) {
	columns := make([]string, 0, len(fields))
	placeholders := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		v, err := bindValue(d, f.Kind, f.Value)
		if err != nil {
			return "", nil, fmt.Errorf("column %q: %w", f.Name, err)
		}
		args = append(args, v)
		columns = append(columns, f.Name)
		placeholders = append(placeholders, placeholderFor(d, f.Kind, len(args)))
	}

	stmt := "INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"
	return stmt, args, nil
}
