// Package schema derives relational table declarations and JSON-schema
// descriptors from tagged entity structs.
//
// An entity struct is the only place a table is declared. Each exported field
// carries:
//
//	db:"column"        column name (also used by pgx row scanning)
//	json:"name"        wire name; omitempty marks the field optional
//	validate:"..."     go-playground/validator rules
//	col:"..."          storage hints: pk, auto, default=<sql>, ref=<schema.table>, type=<sql type>
package schema

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Column describes one table column.
type Column struct {
	Name       string
	JSONName   string
	FieldName  string
	FieldIndex int
	SQLType    string
	NotNull    bool
	Default    string
	PrimaryKey bool
	// Auto columns are assigned by the server and never accepted from callers.
	Auto       bool
	References string
}

// Required reports whether callers must supply the column on insert.
func (c Column) Required() bool {
	return c.NotNull && c.Default == "" && !c.Auto
}

// Table is the declaration of one relational table.
type Table struct {
	Schema  string
	Name    string
	Title   string
	Columns []Column
	model   reflect.Type
}

// Assignment is a single column = value pair of an UPDATE statement.
type Assignment struct {
	Column string
	Value  any
}

var (
	uuidType        = reflect.TypeOf(uuid.UUID{})
	timeType        = reflect.TypeOf(time.Time{})
	decimalType     = reflect.TypeOf(decimal.Decimal{})
	nullDecimalType = reflect.TypeOf(decimal.NullDecimal{})
)

// DecimalSQLType is the storage type used for fixed-precision amounts.
const DecimalSQLType = "numeric(20,4)"

// Describe builds the table declaration for model, which must be a struct value.
func Describe(schemaName, table, title string, model any) (Table, error) {
	typ := reflect.TypeOf(model)
	if typ == nil || typ.Kind() != reflect.Struct {
		return Table{}, fmt.Errorf("schema: %s.%s: model must be a struct", schemaName, table)
	}
	t := Table{Schema: schemaName, Name: table, Title: title, model: typ}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name := field.Tag.Get("db")
		if !field.IsExported() || name == "" || name == "-" {
			continue
		}
		col, err := describeColumn(field, i, name)
		if err != nil {
			return Table{}, fmt.Errorf("schema: %s.%s: %w", schemaName, table, err)
		}
		t.Columns = append(t.Columns, col)
	}
	if _, ok := t.PrimaryKey(); !ok {
		return Table{}, fmt.Errorf("schema: %s.%s: no primary key column", schemaName, table)
	}
	return t, nil
}

// MustDescribe is Describe for package-level declarations.
func MustDescribe(schemaName, table, title string, model any) Table {
	t, err := Describe(schemaName, table, title, model)
	if err != nil {
		panic(err)
	}
	return t
}

func describeColumn(field reflect.StructField, index int, name string) (Column, error) {
	col := Column{
		Name:       name,
		JSONName:   jsonName(field),
		FieldName:  field.Name,
		FieldIndex: index,
		NotNull:    true,
	}
	typ := field.Type
	if typ.Kind() == reflect.Pointer {
		col.NotNull = false
		typ = typ.Elem()
	}
	switch {
	case typ == uuidType:
		col.SQLType = "uuid"
	case typ == timeType:
		col.SQLType = "timestamptz"
	case typ == decimalType:
		col.SQLType = DecimalSQLType
	case typ == nullDecimalType:
		col.SQLType = DecimalSQLType
		col.NotNull = false
	case typ.Kind() == reflect.String:
		col.SQLType = "text"
	case typ.Kind() == reflect.Bool:
		col.SQLType = "boolean"
	case typ.Kind() >= reflect.Int && typ.Kind() <= reflect.Int32:
		col.SQLType = "integer"
	case typ.Kind() == reflect.Int64:
		col.SQLType = "bigint"
	case typ.Kind() == reflect.Float32 || typ.Kind() == reflect.Float64:
		col.SQLType = "double precision"
	default:
		return Column{}, fmt.Errorf("column %s: unsupported type %s", name, field.Type)
	}

	for _, opt := range strings.Split(field.Tag.Get("col"), ",") {
		opt = strings.TrimSpace(opt)
		key, value, _ := strings.Cut(opt, "=")
		switch key {
		case "":
		case "pk":
			col.PrimaryKey = true
			col.Auto = true
		case "auto":
			col.Auto = true
		case "default":
			col.Default = value
		case "ref":
			col.References = value
		case "type":
			col.SQLType = value
		default:
			return Column{}, fmt.Errorf("column %s: unknown col option %q", name, key)
		}
	}
	return col, nil
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}

// FullName returns the schema-qualified table name.
func (t Table) FullName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// PrimaryKey returns the primary key column.
func (t Table) PrimaryKey() (Column, bool) {
	for _, c := range t.Columns {
		if c.PrimaryKey {
			return c, true
		}
	}
	return Column{}, false
}

// Column looks a column up by its column name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Has reports whether the table declares the named column.
func (t Table) Has(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// ByJSON looks a column up by its wire name.
func (t Table) ByJSON(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.JSONName == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames lists all column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnList is the comma separated column list for SELECT and RETURNING.
func (t Table) ColumnList() string {
	return strings.Join(t.ColumnNames(), ", ")
}

// RequiredFields lists the wire names callers must send on insert.
func (t Table) RequiredFields() []string {
	var out []string
	for _, c := range t.Columns {
		if c.Required() {
			out = append(out, c.JSONName)
		}
	}
	return out
}

// Values returns the column values of row in declaration order.
func (t Table) Values(row any) ([]any, error) {
	v, err := t.structValue(row)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = v.Field(c.FieldIndex).Interface()
	}
	return out, nil
}

// Assignments converts the present wire fields of row into update assignments.
// Server-managed columns are skipped.
func (t Table) Assignments(row any, fields []string) ([]Assignment, error) {
	v, err := t.structValue(row)
	if err != nil {
		return nil, err
	}
	var out []Assignment
	for _, c := range t.Columns {
		if c.Auto || !contains(fields, c.JSONName) {
			continue
		}
		out = append(out, Assignment{Column: c.Name, Value: v.Field(c.FieldIndex).Interface()})
	}
	return out, nil
}

// FieldNames maps wire names onto Go struct field names, dropping unknown names.
func (t Table) FieldNames(jsonNames []string) []string {
	var out []string
	for _, name := range jsonNames {
		if c, ok := t.ByJSON(name); ok {
			out = append(out, c.FieldName)
		}
	}
	return out
}

func (t Table) structValue(row any) (reflect.Value, error) {
	v := reflect.ValueOf(row)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Type() != t.model {
		return reflect.Value{}, fmt.Errorf("schema: %s: expected %s, got %s", t.FullName(), t.model, v.Type())
	}
	return v, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
