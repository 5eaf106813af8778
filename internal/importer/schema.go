package importer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
)

// CatalogSchema is the top-level structure of a catalog import file.
type CatalogSchema struct {
	Term    string         `json:"term"`
	Courses []CourseImport `json:"courses" validate:"required,min=1,dive"`
}

// CourseImport is one course as written in the import file. Meetings use
// the "MON 09:00-10:15" form.
type CourseImport struct {
	ID          string   `json:"id" validate:"required,max=32"`
	Name        string   `json:"name" validate:"required,max=200"`
	Credits     int      `json:"credits" validate:"min=1,max=12"`
	Meetings    []string `json:"meetings" validate:"dive,required"`
	Delivery    string   `json:"delivery,omitempty" validate:"omitempty,oneof=ONLINE OFFLINE HYBRID online offline hybrid"`
	Tags        []string `json:"tags,omitempty" validate:"dive,required"`
	Tracks      []string `json:"tracks,omitempty" validate:"dive,required"`
	TeamProject bool     `json:"team_project,omitempty"`
}

// courseRow is the CSV shape. List columns are split on listSep.
type courseRow struct {
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	Credits     int    `csv:"credits"`
	Meetings    string `csv:"meetings"`
	Delivery    string `csv:"delivery,omitempty"`
	Tags        string `csv:"tags,omitempty"`
	Tracks      string `csv:"tracks,omitempty"`
	TeamProject bool   `csv:"team_project,omitempty"`
}

const listSep = ";"

// LoadCatalogSchema reads a .json or .csv catalog file. CSV files carry no
// term; the caller supplies one.
func LoadCatalogSchema(path string) (*CatalogSchema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCatalogCSV(f, ',')
	case ".tsv":
		return ParseCatalogCSV(f, '\t')
	default:
		return ParseCatalogJSON(f)
	}
}

func ParseCatalogJSON(r io.Reader) (*CatalogSchema, error) {
	var schema CatalogSchema
	if err := json.NewDecoder(r).Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	return &schema, nil
}

// ParseCatalogCSV reads a header-first CSV catalog with the given delimiter.
func ParseCatalogCSV(r io.Reader, delim rune) (*CatalogSchema, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.TrimLeadingSpace = true

	var rows []*courseRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("parsing catalog csv: %w", err)
	}

	schema := &CatalogSchema{Courses: make([]CourseImport, 0, len(rows))}
	for _, row := range rows {
		schema.Courses = append(schema.Courses, CourseImport{
			ID:          strings.TrimSpace(row.ID),
			Name:        strings.TrimSpace(row.Name),
			Credits:     row.Credits,
			Meetings:    splitCell(row.Meetings),
			Delivery:    strings.TrimSpace(row.Delivery),
			Tags:        splitCell(row.Tags),
			Tracks:      splitCell(row.Tracks),
			TeamProject: row.TeamProject,
		})
	}
	return schema, nil
}

func splitCell(s string) []string {
	var out []string
	for _, part := range strings.Split(s, listSep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
