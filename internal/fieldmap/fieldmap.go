// Package fieldmap translates between the camelCase field names used on the wire and the
// snake_case column names used in storage.
//
// A model's struct tags are the only schema: `json:"..."` names the wire field, the column
// comes from GORM's naming (or an explicit `gorm:"column:..."`), `patch:"-"` marks fields
// that clients may read but never write, and `binding:"..."` holds validation rules.
package fieldmap

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"portfolio-admin/internal/apperr"

	"gorm.io/gorm/schema"
)

type Field struct {
	JSON      string
	Column    string
	Type      reflect.Type
	Patchable bool
	// Rules are the field's `binding` validation rules.
	Rules string
}

type Schema struct {
	Entity   string
	fields   []Field
	byJSON   map[string]Field
	byColumn map[string]Field
}

// For builds the schema of a GORM model. entity names the model in error messages.
func For(model any, entity string) (*Schema, error) {
	parsed, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("parse %s schema: %w", entity, err)
	}

	s := &Schema{
		Entity:   entity,
		byJSON:   make(map[string]Field, len(parsed.Fields)),
		byColumn: make(map[string]Field, len(parsed.Fields)),
	}
	for _, f := range parsed.Fields {
		if f.DBName == "" {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		field := Field{
			JSON:      name,
			Column:    f.DBName,
			Type:      f.FieldType,
			Patchable: !f.PrimaryKey && f.Tag.Get("patch") != "-",
			Rules:     f.Tag.Get("binding"),
		}
		s.fields = append(s.fields, field)
		s.byJSON[field.JSON] = field
		s.byColumn[field.Column] = field
	}
	return s, nil
}

// MustFor is For for package-level schema variables.
func MustFor(model any, entity string) *Schema {
	s, err := For(model, entity)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

func (s *Schema) Column(jsonName string) (string, bool) {
	f, ok := s.byJSON[jsonName]
	return f.Column, ok
}

func (s *Schema) JSONName(column string) (string, bool) {
	f, ok := s.byColumn[column]
	return f.JSON, ok
}

// Columns decodes a partial camelCase object into column values ready for an UPDATE.
// Values are decoded into the model's own field types, so a type mismatch is rejected here
// rather than by the database.
func (s *Schema) Columns(patch map[string]json.RawMessage) (map[string]any, error) {
	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(patch))
	for _, key := range keys {
		f, ok := s.byJSON[key]
		if !ok {
			return nil, &apperr.Error{
				Kind:    apperr.KindValidation,
				Message: fmt.Sprintf("Unknown %s field %q", s.Entity, key),
				Field:   key,
			}
		}
		if !f.Patchable {
			return nil, &apperr.Error{
				Kind:    apperr.KindValidation,
				Message: fmt.Sprintf("Field %q of %s cannot be changed", key, s.Entity),
				Field:   key,
			}
		}

		ptr := reflect.New(f.Type)
		if err := json.Unmarshal(patch[key], ptr.Interface()); err != nil {
			return nil, &apperr.Error{
				Kind:    apperr.KindInvalidFormat,
				Message: fmt.Sprintf("Field %q has the wrong type", key),
				Field:   key,
				Detail:  err.Error(),
				Err:     err,
			}
		}
		out[f.Column] = ptr.Elem().Interface()
	}
	return out, nil
}

// Encode renames column keys to wire names. Columns the schema does not know are dropped.
func (s *Schema) Encode(columns map[string]any) map[string]any {
	out := make(map[string]any, len(columns))
	for col, v := range columns {
		if f, ok := s.byColumn[col]; ok {
			out[f.JSON] = v
		}
	}
	return out
}
