// Package validation checks request schemas and reports failures per JSON field.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Message is the top-level message of every validation failure response.
const Message = "Validation failed"

// Error lists the failed rules of a request, keyed by JSON field name.
type Error struct {
	Fields map[string][]string
}

// NewError returns an Error with a single message for field.
func NewError(field, message string) *Error {
	e := &Error{Fields: map[string][]string{}}
	e.Add(field, message)
	return e
}

// Add appends a message for field.
func (e *Error) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed on %s", strings.Join(fields, ", "))
}

// Messages overrides the default message of a rule. Keys are "<json field>.<rule tag>",
// e.g. "name.required". The pseudo rule "type" covers JSON values of the wrong type.
type Messages map[string]string

// Describer is implemented by schemas that carry custom messages.
type Describer interface {
	Messages() Messages
}

func messagesOf(schema interface{}) Messages {
	if d, ok := schema.(Describer); ok {
		return d.Messages()
	}
	return nil
}

// Validator validates request schemas with go-playground/validator and English messages.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator that names fields after their json (or query) tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	locale := en.New()
	trans, _ := ut.New(locale, locale).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		// Only fails on a broken translation table, which is a programming error.
		panic(fmt.Sprintf("validation: register translations: %v", err))
	}
	return &Validator{validate: v, trans: trans}
}

// Validate checks schema against its validate tags. It returns nil, an *Error
// describing every failed field, or a non-validation error for an unusable schema.
func (v *Validator) Validate(schema interface{}) error {
	err := v.validate.Struct(schema)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validation: %w", err)
	}

	custom := messagesOf(schema)
	out := &Error{}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if msg, ok := custom[field+"."+fe.Tag()]; ok {
			out.Add(field, msg)
			continue
		}
		out.Add(field, fe.Translate(v.trans))
	}
	return out
}

// FromDecodeError turns a JSON type mismatch in a request body into an *Error for
// the offending field. It returns false for any other decode failure.
func FromDecodeError(err error, schema interface{}) (*Error, bool) {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return nil, false
	}
	field := typeErr.Field
	if msg, ok := messagesOf(schema)[field+".type"]; ok {
		return NewError(field, msg), true
	}
	return NewError(field, fmt.Sprintf("%s must be %s", field, describeKind(typeErr.Type))), true
}

func describeKind(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	}
	return "a valid value"
}
