//go:build basic || database

package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runArchiveFlow clears the archive, saves two reports and reads them back.
// env selects the backend; nil uses the default SQLite file under the scratch HOME.
func runArchiveFlow(t *testing.T, env []string) {
	t.Helper()

	// Every command runs from a fresh HOME, so pin the SQLite file for the whole flow.
	if env == nil {
		env = []string{"DEBTBOARD_ARCHIVE_DB_CONNECT=" + t.TempDir() + "/archive.db"}
	}

	_, err := runDebtboard(t, env, "archive", "clear")
	require.NoError(t, err)

	_, err = runDebtboard(t, env, "archive", "migrate")
	require.NoError(t, err)

	_, err = runDebtboard(t, env, "archive", "save")
	require.NoError(t, err)

	path := writeReport(t, `{"overview": {"debtRatio": 12.5, "severity": "medium"}, "files": [{"file": "a.go", "score": 50, "status": "warning"}]}`)
	_, err = runDebtboard(t, env, "archive", "save", path)
	require.NoError(t, err)

	out, err := runDebtboard(t, env, "archive", "list", "--output", "json")
	require.NoError(t, err)
	var reports []struct {
		Source    string  `json:"source"`
		DebtRatio float64 `json:"debtRatio"`
		FileCount int     `json:"fileCount"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, path, reports[0].Source) // Newest first
	assert.Equal(t, 1, reports[0].FileCount)
	assert.Equal(t, "sample", reports[1].Source)
	assert.Equal(t, 9, reports[1].FileCount)

	out, err = runDebtboard(t, env, "archive", "trend", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "18.5")
	assert.Contains(t, out, "12.5")

	out, err = runDebtboard(t, env, "archive", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Reports: 2")
}
