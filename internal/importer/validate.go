package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/alexanderramin/tably/internal/domain"
	"github.com/alexanderramin/tably/internal/scheduler"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCatalogSchema checks the schema before conversion and returns
// every problem found, not just the first.
func ValidateCatalogSchema(schema *CatalogSchema) []error {
	var errs []error

	if err := validate.Struct(schema); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return []error{fmt.Errorf("validating catalog: %w", err)}
		}
		for _, fe := range fieldErrs {
			errs = append(errs, describeFieldError(fe))
		}
	}

	seen := make(map[string]int, len(schema.Courses))
	for i, c := range schema.Courses {
		if strings.ContainsAny(c.ID, " \t") {
			errs = append(errs, fmt.Errorf("courses[%d].id: %q must not contain whitespace", i, c.ID))
		}
		if c.ID != "" {
			if first, dup := seen[c.ID]; dup {
				errs = append(errs, fmt.Errorf("courses[%d].id: duplicate id %q (first at courses[%d])", i, c.ID, first))
			} else {
				seen[c.ID] = i
			}
		}
		errs = append(errs, validateMeetings(i, c.Meetings)...)
	}
	return errs
}

func validateMeetings(idx int, meetings []string) []error {
	var errs []error
	var slots []domain.TimeSlot
	for j, m := range meetings {
		if m == "" {
			continue
		}
		slot, err := domain.ParseTimeSlot(m)
		if err != nil {
			errs = append(errs, fmt.Errorf("courses[%d].meetings[%d]: %w", idx, j, err))
			continue
		}
		for _, prev := range slots {
			if scheduler.Overlaps(prev, slot) {
				errs = append(errs, fmt.Errorf("courses[%d].meetings[%d]: %s overlaps %s of the same course", idx, j, slot, prev))
			}
		}
		slots = append(slots, slot)
	}
	return errs
}

// describeFieldError renders a validator error against the file's json
// field path, e.g. "courses[2].credits".
func describeFieldError(fe validator.FieldError) error {
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", path)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Errorf("%s needs at least %s entr(ies)", path, fe.Param())
		}
		return fmt.Errorf("%s must be at least %s (got %v)", path, fe.Param(), fe.Value())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Errorf("%s must be at most %s characters", path, fe.Param())
		}
		return fmt.Errorf("%s must be at most %s (got %v)", path, fe.Param(), fe.Value())
	case "oneof":
		return fmt.Errorf("%s: invalid value %q (expected one of %s)", path, fe.Value(), fe.Param())
	}
	return fmt.Errorf("%s failed %s validation", path, fe.Tag())
}
