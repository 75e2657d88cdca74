package grades

import "testing"

func TestGradeBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		wantLetter string
		wantRemark string
	}{
		{"exactly 90", 90.0, "A+", "Outstanding Performance"},
		{"just below 90", 89.999, "A", "Excellent Performance"},
		{"exactly 80", 80.0, "A", "Excellent Performance"},
		{"exactly 70", 70.0, "B+", "Very Good Performance"},
		{"exactly 60", 60.0, "B", "Good Performance"},
		{"exactly 50", 50.0, "C", "Satisfactory Performance"},
		{"exactly 40", 40.0, "D", "Needs Improvement"},
		{"just below 40", 39.999, "F", "Failed - Requires Re-examination"},
		{"zero", 0.0, "F", "Failed - Requires Re-examination"},
		{"above 100", 120.0, "A+", "Outstanding Performance"},
		{"negative", -5.0, "F", "Failed - Requires Re-examination"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			letter, remark := Grade(test.percentage)
			if letter != test.wantLetter {
				t.Errorf("Grade(%v) letter = %q, want %q", test.percentage, letter, test.wantLetter)
			}
			if remark != test.wantRemark {
				t.Errorf("Grade(%v) remark = %q, want %q", test.percentage, remark, test.wantRemark)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	sheet, err := Aggregate([]SubjectEntry{
		{Name: "Math", Marks: 40, MaxMarks: 50},
		{Name: "Eng", Marks: 30, MaxMarks: 50},
	})
	if err != nil {
		t.Fatal(err)
	}

	if sheet.TotalMarks != 70 || sheet.MaxMarks != 100 {
		t.Errorf("totals = (%d, %d), want (70, 100)", sheet.TotalMarks, sheet.MaxMarks)
	}
	if sheet.Percentage != 70.0 {
		t.Errorf("percentage = %v, want 70.0", sheet.Percentage)
	}
	if sheet.Grade != "B+" {
		t.Errorf("grade = %q, want B+", sheet.Grade)
	}

	if sheet.Subjects[0].Grade != "A" {
		t.Errorf("Math grade = %q, want A (80%%)", sheet.Subjects[0].Grade)
	}
	if sheet.Subjects[1].Grade != "B" {
		t.Errorf("Eng grade = %q, want B (60%%)", sheet.Subjects[1].Grade)
	}
}

func TestAggregateRounding(t *testing.T) {
	sheet, err := Aggregate([]SubjectEntry{
		{Name: "Physics", Marks: 1, MaxMarks: 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	if sheet.Percentage != 33.33 {
		t.Errorf("percentage = %v, want 33.33", sheet.Percentage)
	}
}

func TestAggregateRejectsZeroMaxMarks(t *testing.T) {
	if _, err := Aggregate([]SubjectEntry{{Name: "Math", Marks: 10, MaxMarks: 0}}); err == nil {
		t.Error("expected error for zero max marks")
	}
	if _, err := Aggregate([]SubjectEntry{{Name: "Math", Marks: 10, MaxMarks: -5}}); err == nil {
		t.Error("expected error for negative max marks")
	}
}

func TestAggregateRejectsEmpty(t *testing.T) {
	if _, err := Aggregate(nil); err == nil {
		t.Error("expected error for empty entry list")
	}
}
