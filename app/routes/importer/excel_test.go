package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows into an in-memory xlsx for the parser tests.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf.Bytes())
}

var header = []interface{}{"Student Name", "Roll Number", "Branch", "Semester", "Exam Type", "Math", "Eng"}

func TestParseWorkbook(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		header,
		{"Asha Verma", "CS-01", "CSE", "3", "Final", 80, 60},
		{"Ravi Kumar", "CS-02", "CSE", "3", "Final", 45, 90},
	})

	candidates, err := ParseWorkbook(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}

	first := candidates[0]
	if first.StudentName != "Asha Verma" || first.RollNo != "CS-01" {
		t.Errorf("unexpected first candidate: %+v", first)
	}
	if len(first.Subjects) != 2 {
		t.Fatalf("got %d subjects, want 2", len(first.Subjects))
	}
	if first.Subjects[0].Name != "Math" || first.Subjects[0].Marks != 80 || first.Subjects[0].MaxMarks != 100 {
		t.Errorf("unexpected subject: %+v", first.Subjects[0])
	}
}

func TestParseWorkbookMissingColumns(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Student Name", "Branch", "Math"},
		{"Asha Verma", "CSE", 80},
	})

	_, err := ParseWorkbook(r)
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	for _, want := range []string{"Roll Number", "Semester", "Exam Type"} {
		if !strings.Contains(missing.Error(), want) {
			t.Errorf("error %q missing column name %q", missing.Error(), want)
		}
	}
}

func TestParseWorkbookSkipsInvalidMarks(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		header,
		// 150 is out of range, "abs" is not numeric; only Eng survives
		{"Asha Verma", "CS-01", "CSE", "3", "Final", 150, 70},
		{"Ravi Kumar", "CS-02", "CSE", "3", "Final", "abs", 55},
	})

	candidates, err := ParseWorkbook(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	for _, candidate := range candidates {
		if len(candidate.Subjects) != 1 || candidate.Subjects[0].Name != "Eng" {
			t.Errorf("%s: subjects = %+v, want only Eng", candidate.RollNo, candidate.Subjects)
		}
	}
}

func TestParseWorkbookDropsRowWithNoValidSubjects(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		header,
		{"Asha Verma", "CS-01", "CSE", "3", "Final", 150, "absent"},
		{"Ravi Kumar", "CS-02", "CSE", "3", "Final", 45, 90},
	})

	candidates, err := ParseWorkbook(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	if candidates[0].RollNo != "CS-02" {
		t.Errorf("surviving candidate = %s, want CS-02", candidates[0].RollNo)
	}
}

func TestParseWorkbookSkipsBlankRows(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		header,
		{"", "", "", "", "", "", ""},
		{"Ravi Kumar", "CS-02", "CSE", "3", "Final", 45, 90},
	})

	candidates, err := ParseWorkbook(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
}
