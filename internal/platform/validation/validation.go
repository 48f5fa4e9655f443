// Package validation checks request bodies against entity declarations.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/bizcore/bizcore/internal/platform/httpx"
	"github.com/bizcore/bizcore/internal/platform/schema"
)

// Errors maps wire field names to rule failures.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e[k]
	}
	return httpx.ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap makes validation errors match httpx.ErrValidation.
func (e Errors) Unwrap() error { return httpx.ErrValidation }

// FieldErrors implements httpx.FieldErrors.
func (e Errors) FieldErrors() map[string]string { return e }

// Validator validates entity rows for insert and partial update.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator reporting fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
	return &Validator{validate: v}
}

func decimalValue(field reflect.Value) any {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		return d.InexactFloat64()
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}
		return d.Decimal.InexactFloat64()
	}
	return nil
}

// Insert checks that every required field is present and that row satisfies
// its validate rules. Keys must match a column's JSON name exactly.
func (v *Validator) Insert(table schema.Table, row any, present []string) error {
	errs := Errors{}
	for _, name := range table.RequiredFields() {
		if !containsString(present, name) {
			errs[name] = "required"
		}
	}
	for _, name := range present {
		c, ok := table.ByJSON(name)
		switch {
		case !ok:
			errs[name] = "unknown field"
		case c.Auto:
			errs[name] = "read only"
		}
	}
	v.collect(errs, v.validate.Struct(row))
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Update validates only the fields present in a partial body.
func (v *Validator) Update(table schema.Table, row any, present []string) error {
	errs := Errors{}
	var writable []string
	for _, name := range present {
		c, ok := table.ByJSON(name)
		if !ok {
			errs[name] = "unknown field"
			continue
		}
		if c.Auto {
			errs[name] = "read only"
			continue
		}
		writable = append(writable, name)
	}
	if len(writable) == 0 && len(errs) == 0 {
		return fmt.Errorf("%w: no fields to update", httpx.ErrValidation)
	}
	if len(writable) > 0 {
		v.collect(errs, v.validate.StructPartial(row, table.FieldNames(writable)...))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *Validator) collect(errs Errors, err error) {
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return
	}
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		errs[fe.Field()] = rule
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
