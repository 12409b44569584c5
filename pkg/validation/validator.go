package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	filenamePattern   = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	extensionPattern  = regexp.MustCompile(`\.[a-zA-Z0-9]+$`)
	personNamePattern = regexp.MustCompile(`^[\p{L}\p{M}' .-]+$`)
	localePattern     = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)
	whitespacePattern = regexp.MustCompile(`\s`)
	aspectPattern     = regexp.MustCompile(`^[1-9][0-9]?:[1-9][0-9]?$`)
)

var (
	engine     *validator.Validate
	engineOnce sync.Once
)

// Engine returns the shared validator with the domain rule tags registered.
// - identifier: letters, digits, underscore and hyphen
// - filename:   letters, digits, dot, underscore and hyphen
// - fileext:    ends with a dot followed by an alphanumeric extension
// - personname: unicode letters, spaces, apostrophes, dots and hyphens
// - locale:     "en" or "en-US"
// - nowhitespace, aspectratio
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonTagName)
		mustRegister(v, "identifier", identifierPattern.MatchString)
		mustRegister(v, "filename", filenamePattern.MatchString)
		mustRegister(v, "fileext", extensionPattern.MatchString)
		mustRegister(v, "personname", personNamePattern.MatchString)
		mustRegister(v, "locale", localePattern.MatchString)
		mustRegister(v, "nowhitespace", func(s string) bool { return !whitespacePattern.MatchString(s) })
		mustRegister(v, "aspectratio", aspectPattern.MatchString)
		engine = v
	})
	return engine
}

func mustRegister(v *validator.Validate, tag string, match func(string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return match(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// RegisterAliases installs the aliases shared by the HTTP binding validator.
func RegisterAliases(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonTagName)
	v.RegisterAlias("uuid4", "uuid")
	v.RegisterAlias("nonzero", "required")
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// Violations evaluates every rule independently against value and returns one
// message per failed rule, in rule order. An empty result means the value passed.
func Violations(value any, rules ...string) []string {
	var out []string
	for _, rule := range rules {
		err := Engine().Var(value, rule)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				out = append(out, FieldMessage(fe))
			}
			continue
		}
		out = append(out, err.Error())
	}
	return out
}

// StructViolations validates the `validate` tags of s and returns one
// "field: message" entry per failure.
func StructViolations(s any) []string {
	err := Engine().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field()+": "+FieldMessage(fe))
	}
	return out
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = FieldMessage(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

// FieldMessage renders a single validator failure as a short human message.
func FieldMessage(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	// ===== PRESENCE =====
	case "required":
		return "is required"
	case "required_with":
		return "is required when " + param + " is present"
	case "required_without":
		return "is required when " + param + " is not present"
	case "required_if":
		return "is required if " + param

	// ===== STRING FORMAT =====
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "uri":
		return "must be a valid URI"
	case "uuid":
		return "must be a valid UUID"
	case "alphanum":
		return "must contain alphanumeric characters only"
	case "lowercase":
		return "must be in lowercase"
	case "startswith":
		return "must start with '" + param + "'"
	case "endswith":
		return "must end with '" + param + "'"

	// ===== SIZE/LENGTH =====
	case "len":
		if param != "" {
			return fmt.Sprintf("must be exactly %s characters long", param)
		}
		return "invalid length"
	case "min":
		if isNumberKind(kind) {
			return "must be at least " + param
		}
		if kind == reflect.Slice || kind == reflect.Map {
			return "must contain at least " + param + " items"
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(kind) {
			return "must be at most " + param
		}
		if kind == reflect.Slice || kind == reflect.Map {
			return "must contain at most " + param + " items"
		}
		return "must be at most " + param + " characters long"

	// ===== NUMERIC =====
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "lt":
		return "must be less than " + param
	case "lte":
		return "must be less than or equal to " + param

	// ===== INCLUSION =====
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "unique":
		return "must contain unique items"
	case "dive":
		return "array validation failed"

	// ===== DOMAIN RULES =====
	case "identifier":
		return "must contain only letters, numbers, underscores and hyphens"
	case "filename":
		return "must contain only letters, numbers, dots, underscores and hyphens"
	case "fileext":
		return "must have a file extension"
	case "personname":
		return "must contain only letters, spaces, apostrophes, dots and hyphens"
	case "locale":
		return "must be a locale such as 'en' or 'en-US'"
	case "nowhitespace":
		return "must not contain whitespace"
	case "aspectratio":
		return "must be an aspect ratio such as '4:5'"

	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
