package schema

import (
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
)

// Descriptor returns the JSON-schema descriptor of the table's request body.
// Required fields are taken from the table declaration.
func (t Table) Descriptor() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper:                    mapType,
	}
	s := reflector.ReflectFromType(t.model)
	s.Version = ""
	s.ID = ""
	s.Title = t.Title
	s.Required = t.RequiredFields()
	if s.Properties != nil {
		for _, c := range t.Columns {
			prop, ok := s.Properties.Get(c.JSONName)
			if !ok || prop == nil {
				continue
			}
			if c.Auto {
				prop.ReadOnly = true
			}
			if c.SQLType == "timestamptz" {
				prop.Examples = []any{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)}
			}
		}
	}
	return s
}

func mapType(t reflect.Type) *jsonschema.Schema {
	switch t {
	case uuidType:
		return &jsonschema.Schema{Type: "string", Format: "uuid"}
	case decimalType, nullDecimalType:
		return &jsonschema.Schema{Type: "number"}
	}
	return nil
}
