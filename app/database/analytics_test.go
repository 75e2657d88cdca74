package database

import (
	"strings"
	"testing"
)

func TestBuildTopPerformersQuery(t *testing.T) {
	tests := []struct {
		name      string
		filters   TopPerformerFilters
		wantArgs  int
		wantParts []string
	}{
		{
			"no filters",
			TopPerformerFilters{},
			1,
			[]string{"ORDER BY percentage DESC LIMIT $1"},
		},
		{
			"all sentinel ignored",
			TopPerformerFilters{Branch: "all", Semester: "all", ExamType: "all"},
			1,
			[]string{"LIMIT $1"},
		},
		{
			"branch only",
			TopPerformerFilters{Branch: "CSE"},
			2,
			[]string{"branch = $1", "LIMIT $2"},
		},
		{
			"every filter",
			TopPerformerFilters{Branch: "CSE", Semester: "3", ExamType: "Final"},
			4,
			[]string{"branch = $1", "semester = $2", "exam_type = $3", "LIMIT $4"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			query, args := buildTopPerformersQuery(test.filters, 10)
			if len(args) != test.wantArgs {
				t.Errorf("got %d args, want %d", len(args), test.wantArgs)
			}
			for _, part := range test.wantParts {
				if !strings.Contains(query, part) {
					t.Errorf("query missing %q:\n%s", part, query)
				}
			}
			if args[len(args)-1] != 10 {
				t.Errorf("last arg = %v, want limit 10", args[len(args)-1])
			}
		})
	}
}

func TestBuildTopPerformersQueryNeverInlinesValues(t *testing.T) {
	query, _ := buildTopPerformersQuery(TopPerformerFilters{Branch: "'; DROP TABLE students; --"}, 10)
	if strings.Contains(query, "DROP TABLE") {
		t.Fatal("filter value leaked into SQL text")
	}
}
