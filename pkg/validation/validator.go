package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
)

var initOnce sync.Once

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags and the domain enum validators.
// Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		Register(v)
	})
}

// Register installs tag names, aliases and custom validators on v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	v.RegisterAlias("pwd", "min=6")
	v.RegisterAlias("nonzero", "required")
	v.RegisterAlias("phone", "e164")

	_ = v.RegisterValidation("jobtype", func(fl validator.FieldLevel) bool {
		return entity.JobType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("appstatus", func(fl validator.FieldLevel) bool {
		return entity.ApplicationStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("signuprole", func(fl validator.FieldLevel) bool {
		r := entity.Role(fl.Field().String())
		return r == entity.RoleEmployer || r == entity.RoleSeeker
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return entity.Role(fl.Field().String()).Valid()
	})
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return map[string]string{"payload": "request body is required"}
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		field := ute.Field
		if field == "" {
			field = "payload"
		}
		return map[string]string{field: "must be a " + ute.Type.String()}
	}
	if errors.As(err, &se) {
		return map[string]string{"payload": "invalid json"}
	}

	// Validation errors from validator.v10
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required", "nonzero":
		return "is required"
	case "required_with":
		return "is required when " + param + " is present"
	case "required_if":
		return "is required if " + param

	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "e164", "phone":
		return "must be a valid phone number in E.164 format"

	case "len":
		if kind == reflect.String {
			return fmt.Sprintf("must be exactly %s characters", param)
		}
		return fmt.Sprintf("must contain exactly %s items", param)
	case "min", "pwd":
		if tag == "pwd" {
			param = "6"
		}
		if kind == reflect.String {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		if kind == reflect.Slice || kind == reflect.Map || kind == reflect.Array {
			return fmt.Sprintf("must contain at least %s items", param)
		}
		return "must be at least " + param
	case "max":
		if kind == reflect.String {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		if kind == reflect.Slice || kind == reflect.Map || kind == reflect.Array {
			return fmt.Sprintf("must contain at most %s items", param)
		}
		return "must be at most " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param

	case "oneof":
		return "must be one of: " + strings.Join(splitParams(param), ", ")
	case "jobtype":
		return "must be one of: FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP, REMOTE, HYBRID"
	case "appstatus":
		names := make([]string, 0, len(entity.ApplicationStatuses))
		for _, s := range entity.ApplicationStatuses {
			names = append(names, string(s))
		}
		return "must be one of: " + strings.Join(names, ", ")
	case "signuprole":
		return "must be one of: EMPLOYER, SEEKER"
	case "role":
		return "must be one of: ADMIN, EMPLOYER, SEEKER"
	}
	return "failed on " + tag + " validation"
}

func splitParams(p string) []string {
	if p == "" {
		return nil
	}
	parts := strings.Fields(p)
	if len(parts) > 1 {
		return parts
	}
	if strings.Contains(p, ",") {
		return strings.Split(p, ",")
	}
	return []string{p}
}
