package fieldmap

import (
	"errors"
	"reflect"
	"strings"

	"portfolio-admin/internal/apperr"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm/clause"
)

// validate reads the same `binding` rules gin checks on request bodies.
var validate = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}()

// Check validates a whole record against its binding rules.
func (s *Schema) Check(rec any) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return ruleError(topField(ve[0].Namespace()), ve[0], err)
	}
	return ruleError("", nil, err)
}

// Validate checks column values from Columns against the binding rules of their fields. A
// patch only names fields it sets, so omitempty does not apply. SQL expressions are skipped.
func (s *Schema) Validate(cols map[string]any) error {
	for col, v := range cols {
		f, ok := s.byColumn[col]
		if !ok || f.Rules == "" {
			continue
		}
		if _, isExpr := v.(clause.Expr); isExpr {
			continue
		}
		rules := strings.TrimPrefix(strings.TrimPrefix(f.Rules, "omitempty"), ",")
		if rules == "" {
			continue
		}
		if err := validate.Var(v, rules); err != nil {
			var ve validator.ValidationErrors
			if errors.As(err, &ve) && len(ve) > 0 {
				return ruleError(f.JSON, ve[0], err)
			}
			return ruleError(f.JSON, nil, err)
		}
	}
	return nil
}

// topField returns the first field of a namespace like "Artwork.exhibitionHistory[0].name".
func topField(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	if i := strings.IndexAny(ns, ".["); i >= 0 {
		ns = ns[:i]
	}
	return ns
}

func ruleError(field string, fe validator.FieldError, err error) error {
	if fe != nil && fe.Tag() == "required" {
		name := fe.Field()
		if name == "" {
			name = field
		}
		return &apperr.Error{Kind: apperr.KindRequiredField, Message: name + " is required", Field: field, Detail: err.Error(), Err: err}
	}
	return &apperr.Error{Kind: apperr.KindValidation, Message: "Invalid value for " + field, Field: field, Detail: err.Error(), Err: err}
}
