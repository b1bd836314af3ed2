package application

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"merchant-admin-layer/internal/domain"

	"github.com/go-playground/validator/v10"
)

// validate is shared by all services; validator.Validate caches struct metadata and is safe
// for concurrent use
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their form names so messages match what the admin UI submits
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("badgeicon", func(fl validator.FieldLevel) bool {
		return domain.BadgeIcon(fl.Field().String()).Valid()
	})

	return v
}

// checkInput validates a tagged input struct.
// When a required field is missing the error carries requiredMsg; an empty requiredMsg
// lists the missing fields instead.
func checkInput(input interface{}, requiredMsg string) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	fields := make(map[string]string, len(validationErrors))
	var missing []string
	firstInvalid := ""
	for _, e := range validationErrors {
		field := e.Field()
		switch {
		case strings.HasPrefix(e.Tag(), "required"):
			fields[field] = "This field is required"
			missing = append(missing, field)
			continue
		case e.Tag() == "badgeicon":
			fields[field] = "Must be one of: " + badgeIconList()
		case e.Tag() == "oneof":
			fields[field] = "Must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
		default:
			fields[field] = "Invalid value"
		}
		if firstInvalid == "" {
			firstInvalid = field + ": " + fields[field]
		}
	}

	message := firstInvalid
	if len(missing) > 0 {
		message = requiredMsg
		if message == "" {
			message = "Missing required fields: " + strings.Join(missing, ", ")
		}
	}

	return &domain.ValidationError{Message: message, Fields: fields}
}

func badgeIconList() string {
	names := make([]string, len(domain.BadgeIcons))
	for i, icon := range domain.BadgeIcons {
		names[i] = string(icon)
	}
	return strings.Join(names, ", ")
}
