package core

import (
	"cmp"
	"sort"
	"strings"

	"github.com/huangsam/debtboard/schema"
)

// DirectoryGroups is the ordered result of GroupByDirectory.
// Groups appear in the order their directory was first seen.
type DirectoryGroups []schema.DirectoryGroup

// Lookup returns the files grouped under dir.
func (g DirectoryGroups) Lookup(dir string) ([]schema.FileDebtScoreWithName, bool) {
	for _, group := range g {
		if group.Dir == dir {
			return group.Files, true
		}
	}
	return nil, false
}

// Dirs returns the directory keys in group order.
func (g DirectoryGroups) Dirs() []string {
	dirs := make([]string, len(g))
	for i, group := range g {
		dirs[i] = group.Dir
	}
	return dirs
}

// FileCount returns the number of files across all groups.
func (g DirectoryGroups) FileCount() int {
	n := 0
	for _, group := range g {
		n += len(group.Files)
	}
	return n
}

// GroupByDirectory buckets files by their immediate parent directory.
// The path is split on '/', the last segment becomes the file name and the rest,
// joined by '/', is the directory key. Files without a parent go under schema.RootDir.
// Files keep their input order inside each bucket.
func GroupByDirectory(files []schema.FileDebtScore) DirectoryGroups {
	var groups DirectoryGroups
	index := make(map[string]int)

	for _, f := range files {
		parts := strings.Split(f.File, "/")
		name := parts[len(parts)-1]
		dir := schema.RootDir
		if len(parts) > 1 {
			dir = strings.Join(parts[:len(parts)-1], "/")
		}

		entry := schema.FileDebtScoreWithName{FileDebtScore: f, FileName: name}
		i, ok := index[dir]
		if !ok {
			i = len(groups)
			index[dir] = i
			groups = append(groups, schema.DirectoryGroup{Dir: dir})
		}
		groups[i].Files = append(groups[i].Files, entry)
	}
	return groups
}

// SortState is the current sort of the file explorer.
type SortState struct {
	Field     schema.SortField
	Direction schema.SortDirection
}

// DefaultSortState sorts by score, highest first.
func DefaultSortState() SortState {
	return SortState{Field: schema.SortByScore, Direction: schema.SortDesc}
}

// ToggleSort applies a column header click: the same field flips direction,
// another field starts descending.
func ToggleSort(current SortState, field schema.SortField) SortState {
	if current.Field == field {
		return SortState{Field: field, Direction: current.Direction.Opposite()}
	}
	return SortState{Field: field, Direction: schema.SortDesc}
}

// MatchesFilter reports whether a file passes the search and status filter.
// The search is a case-insensitive substring match on the path.
func MatchesFilter(f schema.FileDebtScore, search string, status schema.StatusFilter) bool {
	if !strings.Contains(strings.ToLower(f.File), strings.ToLower(search)) {
		return false
	}
	return status == schema.FilterAll || string(f.Status) == string(status)
}

// FilterAndSort returns the files that match the search and status filter,
// stably sorted by a single field. The input slice is never modified.
func FilterAndSort(
	files []schema.FileDebtScore,
	search string,
	status schema.StatusFilter,
	field schema.SortField,
	direction schema.SortDirection,
) []schema.FileDebtScore {
	result := make([]schema.FileDebtScore, 0, len(files))
	for _, f := range files {
		if MatchesFilter(f, search, status) {
			result = append(result, f)
		}
	}

	compare := fieldComparator(field)
	if compare == nil {
		return result
	}
	sort.SliceStable(result, func(i, j int) bool {
		c := compare(result[i], result[j])
		if direction == schema.SortAsc {
			return c < 0
		}
		return c > 0
	})
	return result
}

// fieldComparator returns a three-way comparison for the sort field, or nil when unknown.
func fieldComparator(field schema.SortField) func(a, b schema.FileDebtScore) int {
	switch field {
	case schema.SortByScore:
		return func(a, b schema.FileDebtScore) int { return cmp.Compare(a.Score, b.Score) }
	case schema.SortByComplexity:
		return func(a, b schema.FileDebtScore) int { return cmp.Compare(a.Complexity, b.Complexity) }
	case schema.SortBySize:
		return func(a, b schema.FileDebtScore) int { return cmp.Compare(a.Size, b.Size) }
	case schema.SortByFile:
		return func(a, b schema.FileDebtScore) int { return strings.Compare(a.File, b.File) }
	default:
		return nil
	}
}
