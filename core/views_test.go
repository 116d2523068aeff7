package core

import (
	"strings"
	"testing"

	"github.com/huangsam/debtboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByDirectory(t *testing.T) {
	files := []schema.FileDebtScore{
		{File: "src/legacy/OldParser.js"},
		{File: "README.md"},
		{File: "src/views/Dashboard.tsx"},
		{File: "src/legacy/ProcessHandler.ts"},
		{File: "/abs.go"},
		{File: "Makefile"},
	}

	groups := GroupByDirectory(files)

	assert.Equal(t, []string{"src/legacy", schema.RootDir, "src/views", ""}, groups.Dirs())
	assert.Equal(t, len(files), groups.FileCount())

	legacy, ok := groups.Lookup("src/legacy")
	require.True(t, ok)
	require.Len(t, legacy, 2)
	assert.Equal(t, "OldParser.js", legacy[0].FileName)
	assert.Equal(t, "ProcessHandler.ts", legacy[1].FileName)
	assert.Equal(t, "src/legacy/ProcessHandler.ts", legacy[1].File)

	root, ok := groups.Lookup(schema.RootDir)
	require.True(t, ok)
	assert.Equal(t, "README.md", root[0].FileName)
	assert.Equal(t, "Makefile", root[1].FileName)

	abs, ok := groups.Lookup("")
	require.True(t, ok)
	assert.Equal(t, "abs.go", abs[0].FileName)

	_, ok = groups.Lookup("src")
	assert.False(t, ok, "only the immediate parent is a key")
}

func TestGroupByDirectoryEmpty(t *testing.T) {
	groups := GroupByDirectory(nil)
	assert.Empty(t, groups)
	assert.Equal(t, 0, groups.FileCount())
}

func TestGroupByDirectoryPartition(t *testing.T) {
	files := schema.MockReport().Files
	groups := GroupByDirectory(files)

	seen := make(map[string]int)
	for _, g := range groups {
		for _, f := range g.Files {
			seen[f.File]++
			assert.Equal(t, schema.BaseName(f.File), f.FileName)
		}
	}
	require.Len(t, seen, len(files))
	for _, f := range files {
		assert.Equal(t, 1, seen[f.File], f.File)
	}

	var union []schema.FileDebtScore
	for _, g := range groups {
		for _, f := range g.Files {
			union = append(union, f.FileDebtScore)
		}
	}
	assert.ElementsMatch(t, files, union)
}

func TestFilterAndSortCriticalSample(t *testing.T) {
	files := schema.MockReport().Files
	got := FilterAndSort(files, "", schema.FilterCritical, schema.SortByScore, schema.SortDesc)

	require.Len(t, got, 3)
	assert.Equal(t, "src/legacy/OldParser.js", got[0].File)
	assert.Equal(t, 92.0, got[0].Score)
	assert.Equal(t, "src/legacy/ProcessHandler.ts", got[1].File)
	assert.Equal(t, 85.0, got[1].Score)
	assert.Equal(t, "src/components/ComplexGrid.tsx", got[2].File)
	assert.Equal(t, 65.0, got[2].Score)
}

func TestFilterAndSortSearch(t *testing.T) {
	files := schema.MockReport().Files

	tests := []struct {
		name   string
		search string
		status schema.StatusFilter
		want   []string
	}{
		{name: "case insensitive", search: "LEGACY", status: schema.FilterAll, want: []string{"src/legacy/ProcessHandler.ts", "src/legacy/OldParser.js"}},
		{name: "search and status", search: "views", status: schema.FilterWarning, want: []string{"src/views/Settings.tsx"}},
		{name: "no match", search: "missing", status: schema.FilterAll, want: nil},
		{name: "status only", search: "", status: schema.FilterGood, want: []string{"src/utils/DateFormatter.ts", "src/shared/Types.ts", "src/views/Dashboard.tsx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAndSort(files, tt.search, tt.status, schema.SortField("none"), schema.SortDesc)
			var paths []string
			for _, f := range got {
				paths = append(paths, f.File)
			}
			assert.Equal(t, tt.want, paths)
		})
	}
}

func TestFilterAndSortFileField(t *testing.T) {
	files := []schema.FileDebtScore{{File: "b.go"}, {File: "a.go"}, {File: "C.go"}}

	asc := FilterAndSort(files, "", schema.FilterAll, schema.SortByFile, schema.SortAsc)
	assert.Equal(t, []string{"C.go", "a.go", "b.go"}, []string{asc[0].File, asc[1].File, asc[2].File})

	desc := FilterAndSort(files, "", schema.FilterAll, schema.SortByFile, schema.SortDesc)
	assert.Equal(t, []string{"b.go", "a.go", "C.go"}, []string{desc[0].File, desc[1].File, desc[2].File})
}

func TestFilterAndSortStable(t *testing.T) {
	files := []schema.FileDebtScore{
		{File: "first", Score: 50},
		{File: "top", Score: 90},
		{File: "second", Score: 50},
		{File: "third", Score: 50},
	}

	for _, dir := range []schema.SortDirection{schema.SortAsc, schema.SortDesc} {
		got := FilterAndSort(files, "", schema.FilterAll, schema.SortByScore, dir)
		var ties []string
		for _, f := range got {
			if f.Score == 50 {
				ties = append(ties, f.File)
			}
		}
		assert.Equal(t, []string{"first", "second", "third"}, ties, string(dir))
	}
}

func TestFilterAndSortDoesNotMutate(t *testing.T) {
	files := schema.MockReport().Files
	before := append([]schema.FileDebtScore(nil), files...)

	_ = FilterAndSort(files, "", schema.FilterAll, schema.SortBySize, schema.SortAsc)
	assert.Equal(t, before, files)
}

func TestFilterAndSortMonotonic(t *testing.T) {
	files := schema.MockReport().Files
	fields := []schema.SortField{schema.SortByScore, schema.SortByComplexity, schema.SortBySize, schema.SortByFile}
	statuses := []schema.StatusFilter{schema.FilterAll, schema.FilterGood, schema.FilterWarning, schema.FilterCritical}

	for _, field := range fields {
		for _, dir := range []schema.SortDirection{schema.SortAsc, schema.SortDesc} {
			for _, status := range statuses {
				got := FilterAndSort(files, "s", status, field, dir)
				assert.LessOrEqual(t, len(got), len(files))
				assertSorted(t, got, field, dir)
			}
		}
	}
}

func TestToggleSort(t *testing.T) {
	state := DefaultSortState()
	assert.Equal(t, SortState{Field: schema.SortByScore, Direction: schema.SortDesc}, state)

	state = ToggleSort(state, schema.SortByScore)
	assert.Equal(t, schema.SortAsc, state.Direction)

	state = ToggleSort(state, schema.SortByScore)
	assert.Equal(t, schema.SortDesc, state.Direction)

	state = ToggleSort(ToggleSort(state, schema.SortByScore), schema.SortBySize)
	assert.Equal(t, SortState{Field: schema.SortBySize, Direction: schema.SortDesc}, state)
}

// assertSorted checks that files are ordered by field in the given direction.
func assertSorted(t *testing.T, files []schema.FileDebtScore, field schema.SortField, dir schema.SortDirection) {
	t.Helper()
	compare := fieldComparator(field)
	require.NotNil(t, compare)
	for i := 1; i < len(files); i++ {
		c := compare(files[i-1], files[i])
		if dir == schema.SortAsc {
			assert.LessOrEqual(t, c, 0, "%s asc at %d", field, i)
		} else {
			assert.GreaterOrEqual(t, c, 0, "%s desc at %d", field, i)
		}
	}
}

// FuzzFilterAndSort checks length, filter and ordering properties for arbitrary searches.
func FuzzFilterAndSort(f *testing.F) {
	f.Add("", "all", "score", "desc")
	f.Add("LEG", "critical", "file", "asc")
	f.Add("x", "good", "size", "asc")
	f.Add("ts", "warning", "complexity", "desc")

	files := schema.MockReport().Files
	f.Fuzz(func(t *testing.T, search, status, field, dir string) {
		got := FilterAndSort(files, search, schema.StatusFilter(status), schema.SortField(field), schema.SortDirection(dir))
		if len(got) > len(files) {
			t.Fatalf("output longer than input: %d > %d", len(got), len(files))
		}
		for _, file := range got {
			if !strings.Contains(strings.ToLower(file.File), strings.ToLower(search)) {
				t.Fatalf("%q does not contain %q", file.File, search)
			}
		}
		compare := fieldComparator(schema.SortField(field))
		if compare == nil {
			return
		}
		for i := 1; i < len(got); i++ {
			c := compare(got[i-1], got[i])
			if dir == string(schema.SortAsc) && c > 0 {
				t.Fatalf("ascending order broken at %d", i)
			}
			if dir != string(schema.SortAsc) && c < 0 {
				t.Fatalf("descending order broken at %d", i)
			}
		}
	})
}
