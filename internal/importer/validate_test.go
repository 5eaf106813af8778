package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMinimalSchema() *CatalogSchema {
	return &CatalogSchema{
		Term: "2025-FALL",
		Courses: []CourseImport{
			{ID: "CS101", Name: "Intro to Programming", Credits: 3, Meetings: []string{"MON 09:00-10:15", "WED 09:00-10:15"}},
		},
	}
}

func joinErrs(errs []error) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

func TestValidateCatalogSchema_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateCatalogSchema(validMinimalSchema()))
}

func TestValidateCatalogSchema_NoCourses(t *testing.T) {
	errs := ValidateCatalogSchema(&CatalogSchema{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "courses is required")
}

func TestValidateCatalogSchema_FieldErrorsUseJSONPaths(t *testing.T) {
	schema := validMinimalSchema()
	schema.Courses = append(schema.Courses,
		CourseImport{ID: "", Name: "Nameless id", Credits: 3},
		CourseImport{ID: "ART100", Name: "", Credits: 0, Delivery: "remote"},
	)

	errs := ValidateCatalogSchema(schema)
	all := joinErrs(errs)
	assert.Contains(t, all, "courses[1].id is required")
	assert.Contains(t, all, "courses[2].name is required")
	assert.Contains(t, all, "courses[2].credits must be at least 1")
	assert.Contains(t, all, `courses[2].delivery: invalid value "remote"`)
}

func TestValidateCatalogSchema_CrossRowChecks(t *testing.T) {
	schema := validMinimalSchema()
	schema.Courses = append(schema.Courses,
		CourseImport{ID: "CS101", Name: "Again", Credits: 3, Meetings: []string{"TUE 09:00-10:00"}},
		CourseImport{ID: "MATH 201", Name: "Spaced", Credits: 3, Meetings: []string{"FRI 25:00-26:00"}},
		CourseImport{ID: "BIO110", Name: "Overlap", Credits: 4, Meetings: []string{"THU 09:00-11:00", "THU 10:00-12:00"}},
	)

	all := joinErrs(ValidateCatalogSchema(schema))
	assert.Contains(t, all, `courses[1].id: duplicate id "CS101"`)
	assert.Contains(t, all, "courses[2].id")
	assert.Contains(t, all, "courses[2].meetings[0]")
	assert.Contains(t, all, "courses[3].meetings[1]: THU 10:00-12:00 overlaps THU 09:00-11:00")
}

func TestValidateCatalogSchema_TouchingMeetingsDoNotOverlap(t *testing.T) {
	schema := validMinimalSchema()
	schema.Courses = append(schema.Courses,
		CourseImport{ID: "LAB200", Name: "Double lab", Credits: 2, Meetings: []string{"TUE 09:00-10:00", "TUE 10:00-11:00", "WED 09:30-10:30"}},
	)
	assert.Empty(t, ValidateCatalogSchema(schema))
}

func TestValidateCatalogSchema_MeetinglessCourseAllowed(t *testing.T) {
	schema := validMinimalSchema()
	schema.Courses = append(schema.Courses, CourseImport{ID: "ONL300", Name: "Self-paced", Credits: 2, Delivery: "online"})
	assert.Empty(t, ValidateCatalogSchema(schema))
}
