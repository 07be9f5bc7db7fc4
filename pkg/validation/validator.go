package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/navarrastar/appointment-intake/pkg/models"
	"github.com/navarrastar/appointment-intake/pkg/utils"
)

const selectDayMessage = "Please select at least one preferred day"

// FieldViolation describes one rejected field
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every violated field of a rejected appointment request
type Error struct {
	Violations []FieldViolation
}

func (e *Error) Error() string {
	messages := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		messages = append(messages, v.Message)
	}
	return strings.Join(messages, "; ")
}

// Validator checks raw submissions against the appointment request schema
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator reading the `binding` struct tags of the models
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(jsonName)
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		_, ok := utils.PhoneDigits(fl.Field().String())
		return ok
	})

	return &Validator{validate: v}
}

// Validate decodes raw and returns the trimmed request, or an *Error
// naming every violated field. A field of the wrong JSON type is reported
// alongside the other violations. Unknown fields are ignored.
func (v *Validator) Validate(raw []byte) (models.AppointmentRequest, error) {
	req, typeErrs, err := decode(raw)
	if err != nil {
		return models.AppointmentRequest{}, err
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.AdditionalNotes = strings.TrimSpace(req.AdditionalNotes)
	req.SourceURL = strings.TrimSpace(req.SourceURL)

	var fieldErrs validator.ValidationErrors
	if err := v.validate.Struct(req); err != nil && !errors.As(err, &fieldErrs) {
		return models.AppointmentRequest{}, fmt.Errorf("validating appointment request: %w", err)
	}

	if len(typeErrs) == 0 && len(fieldErrs) == 0 {
		return req, nil
	}
	return models.AppointmentRequest{}, toError(typeErrs, fieldErrs)
}

// decode fills the request one field at a time so a field of the wrong type
// does not hide the rest. It only fails when raw is not a JSON object.
func decode(raw []byte) (models.AppointmentRequest, map[string]FieldViolation, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return models.AppointmentRequest{}, nil, &Error{Violations: []FieldViolation{
			{Field: "body", Message: "request body must be a valid JSON object"},
		}}
	}

	var req models.AppointmentRequest
	typeErrs := make(map[string]FieldViolation)
	rv := reflect.ValueOf(&req).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		name := jsonName(rt.Field(i))
		value, ok := fields[name]
		if !ok || name == "" {
			continue
		}
		target := rv.Field(i)
		if err := json.Unmarshal(value, target.Addr().Interface()); err != nil {
			target.Set(reflect.Zero(target.Type()))
			typeErrs[name] = FieldViolation{Field: name, Message: typeMessage(name, target.Type())}
		}
	}
	return req, typeErrs, nil
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func typeMessage(field string, t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return field + " must be true or false"
	case reflect.Slice:
		return field + " must be a list of strings"
	case reflect.Map:
		return field + " must be an object of string values"
	default:
		return field + " must be a string"
	}
}

// toError merges type and rule violations, one per field, in the order the
// fields are declared on the request.
func toError(typeErrs map[string]FieldViolation, fieldErrs validator.ValidationErrors) *Error {
	byField := make(map[string]FieldViolation, len(typeErrs)+len(fieldErrs))
	for name, v := range typeErrs {
		byField[name] = v
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		// Report each bad weekday entry once under the list name.
		if strings.HasPrefix(field, "preferredDays[") {
			field = "preferredDays"
		}
		if _, seen := byField[field]; seen {
			continue
		}
		byField[field] = FieldViolation{Field: field, Message: message(field, fe)}
	}

	out := &Error{}
	rt := reflect.TypeOf(models.AppointmentRequest{})
	for i := 0; i < rt.NumField(); i++ {
		if v, ok := byField[jsonName(rt.Field(i))]; ok {
			out.Violations = append(out.Violations, v)
		}
	}
	return out
}

func message(field string, fe validator.FieldError) string {
	switch {
	case field == "preferredDays" && (fe.Tag() == "required" || fe.Tag() == "min"):
		return selectDayMessage
	case field == "preferredDays":
		return "preferredDays may only contain monday, tuesday, wednesday, thursday, friday"
	case field == "emergency":
		return "emergency must be true or false"
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min", "max":
		if field == "firstName" || field == "lastName" {
			return field + " must be between 1 and 40 characters"
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return "email must be a valid email address"
	case "phone10":
		return "phone must contain exactly 10 digits"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "http_url":
		return field + " must be an absolute http or https URL"
	default:
		return field + " is invalid"
	}
}
