package clearpdf

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// ExportRow is one line of the all-clearances export: a user joined with one
// of their archived snapshots.
type ExportRow struct {
	Name          string
	StudentNumber string
	Course        string
	Year          int
	Section       string
	Major         string
	SubmittedDate string
}

var csvHeader = []string{"Name", "Student Number", "Course", "Year Level", "Section", "Major", "Submitted Date"}

// WriteClearanceCSV renders the export as UTF-8 CSV with RFC 4180 quoting, so
// names containing commas or quotes survive round-tripping.
func WriteClearanceCSV(rows []ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, row := range rows {
		year := ""
		if row.Year > 0 {
			year = strconv.Itoa(row.Year)
		}

		record := []string{
			row.Name,
			row.StudentNumber,
			row.Course,
			year,
			row.Section,
			row.Major,
			row.SubmittedDate,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
