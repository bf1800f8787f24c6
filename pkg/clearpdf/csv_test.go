package clearpdf

import (
	"strings"
	"testing"
)

func TestWriteClearanceCSV(t *testing.T) {
	tests := []struct {
		name     string
		rows     []ExportRow
		expected string
	}{
		{
			name:     "Empty export",
			rows:     nil,
			expected: "Name,Student Number,Course,Year Level,Section,Major,Submitted Date\n",
		},
		{
			name: "Basic rows",
			rows: []ExportRow{
				{Name: "John Doe", StudentNumber: "0221-1001", Course: "IT", Year: 3, Section: "A", Major: "WMAD", SubmittedDate: "2025-06-01 09:30:00"},
				{Name: "Jane Smith", StudentNumber: "0222-1002", Course: "CS", Year: 2, Section: "B", SubmittedDate: "2025-06-02 10:00:00"},
			},
			expected: "Name,Student Number,Course,Year Level,Section,Major,Submitted Date\n" +
				"John Doe,0221-1001,IT,3,A,WMAD,2025-06-01 09:30:00\n" +
				"Jane Smith,0222-1002,CS,2,B,,2025-06-02 10:00:00\n",
		},
		{
			name: "Name containing comma is quoted",
			rows: []ExportRow{
				{Name: "Doe, John", StudentNumber: "0221-1001", Course: "IT", Year: 3, Section: "A", SubmittedDate: "2025-06-01 09:30:00"},
			},
			expected: "Name,Student Number,Course,Year Level,Section,Major,Submitted Date\n" +
				"\"Doe, John\",0221-1001,IT,3,A,,2025-06-01 09:30:00\n",
		},
		{
			name: "Missing year stays empty",
			rows: []ExportRow{
				{Name: "No Year", StudentNumber: "0223-1003", SubmittedDate: "2025-06-03 08:00:00"},
			},
			expected: "Name,Student Number,Course,Year Level,Section,Major,Submitted Date\n" +
				"No Year,0223-1003,,,,,2025-06-03 08:00:00\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WriteClearanceCSV(tt.rows)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("expected:\n%q\ngot:\n%q", tt.expected, string(got))
			}
		})
	}
}

func TestWriteClearanceCSVQuoteCharacter(t *testing.T) {
	rows := []ExportRow{
		{Name: `Johnny "JD" Doe`, StudentNumber: "0221-1001", SubmittedDate: "2025-06-01 09:30:00"},
	}

	got, err := WriteClearanceCSV(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(string(got), `"Johnny ""JD"" Doe"`) {
		t.Errorf("expected RFC 4180 quote escaping, got: %s", got)
	}
}
