package roi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validRegions = []string{"LATAM", "North America", "Europe", "Asia Pacific", "Other"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates all field-level failures for a request.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid roi request: " + strings.Join(parts, "; ")
}

// Validate checks a Request before computation. It collects every problem
// instead of stopping at the first so clients can fix a form in one pass.
func Validate(req Request) error {
	var fields []FieldError

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields = append(fields, FieldError{
					Field:   fieldPath(fe),
					Message: tagMessage(fe),
				})
			}
		} else {
			return fmt.Errorf("validate roi request: %w", err)
		}
	}

	if !regionValid(req.Region) {
		fields = append(fields, FieldError{
			Field:   "region",
			Message: "must be one of: " + strings.Join(validRegions, ", "),
		})
	}
	if req.TimeHorizonMonths > 0 && req.Inputs.EngagementDurationMonths >= float64(req.TimeHorizonMonths) {
		fields = append(fields, FieldError{
			Field:   "inputs.engagement_duration_months",
			Message: "must be less than time_horizon_months",
		})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func regionValid(region string) bool {
	for _, r := range validRegions {
		if region == r {
			return true
		}
	}
	return false
}

// fieldPath drops the root struct name from the namespace, leaving the
// JSON path (e.g. "inputs.engagement_cost_usd").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must be >= " + fe.Param()
	case "gt":
		return "must be > " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "required":
		return "is required"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
