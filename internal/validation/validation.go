// Package validation checks inbound requests against declarative field schemas
// before they reach the staff handlers.
package validation

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Location names the part of the request a field is read from.
type Location string

const (
	InBody   Location = "body"
	InParams Location = "params"
	InQuery  Location = "query"
)

// Kind is the type a field value must have after decoding.
type Kind int

const (
	KindString Kind = iota
	KindInt
)

// Rule pairs a validator tag with the message reported when it fails.
type Rule struct {
	Tag     string
	Message string
}

// Field declares the checks applied to one request field.
type Field struct {
	Name     string
	In       Location
	Kind     Kind
	Optional bool
	Rules    []Rule
}

// Schema is the ordered set of fields checked for an operation.
type Schema []Field

// Input is the decoded request presented to a schema.
type Input struct {
	Body   map[string]any
	Params map[string]string
	Query  map[string]string
}

// FieldError describes a single failing field.
type FieldError struct {
	Field    string   `json:"field"`
	Location Location `json:"location"`
	Message  string   `json:"message"`
	Value    any      `json:"value,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("string", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.String
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// Validate returns every failing field, reporting the first failed rule per field.
// An empty result means the input passes.
func (s Schema) Validate(in Input) []FieldError {
	var errs []FieldError
	for _, field := range s {
		if fe, ok := field.check(in); !ok {
			errs = append(errs, fe)
		}
	}
	return errs
}

func (f Field) check(in Input) (FieldError, bool) {
	raw, present := f.lookup(in)
	if !present {
		if f.Optional {
			return FieldError{}, true
		}
		raw = ""
	}

	value := raw
	if f.Kind == KindInt {
		parsed, ok := toInt(raw)
		if !ok {
			return f.fail(raw, f.typeMessage()), false
		}
		value = parsed
	}

	for _, rule := range f.Rules {
		if err := validate.Var(value, rule.Tag); err != nil {
			return f.fail(raw, rule.Message), false
		}
	}
	return FieldError{}, true
}

func (f Field) lookup(in Input) (any, bool) {
	switch f.In {
	case InBody:
		v, ok := in.Body[f.Name]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	case InParams:
		v, ok := in.Params[f.Name]
		return v, ok && v != ""
	case InQuery:
		v, ok := in.Query[f.Name]
		return v, ok && v != ""
	}
	return nil, false
}

func (f Field) fail(value any, message string) FieldError {
	return FieldError{Field: f.Name, Location: f.In, Message: message, Value: value}
}

func (f Field) typeMessage() string {
	for _, rule := range f.Rules {
		if rule.Message != "" {
			return rule.Message
		}
	}
	return "Invalid value"
}

func toInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}
