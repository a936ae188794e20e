package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/phoenix-rise/internal/constants"
	"github.com/julianstephens/phoenix-rise/internal/models"
)

func newTestManager(t *testing.T, start time.Time) (*Manager, *time.Time) {
	t.Helper()
	clock := start
	mgr := NewManager(t.TempDir())
	mgr.now = func() time.Time { return clock }
	return mgr, &clock
}

func sampleData(now time.Time) models.WellnessData {
	d := models.DefaultWellnessData(now)
	d.Meals = append(d.Meals, models.Meal{ID: "m1", Type: models.MealLunch, Name: "Salad", Completed: true, Date: now})
	d.PhoenixPoints = 10
	return d
}

func TestCreateBackup(t *testing.T) {
	now := time.Date(2026, 3, 8, 9, 30, 0, 0, time.Local)
	mgr, _ := newTestManager(t, now)

	path, err := mgr.CreateBackup(sampleData(now))
	require.NoError(t, err)
	assert.Equal(t, "phoenix-20260308-0930.json", filepath.Base(path))
	assert.FileExists(t, path)

	raw, err := mgr.ReadBackup(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), constants.ExportFormatMarker)
}

func TestCreateBackupAvoidsCollisions(t *testing.T) {
	now := time.Date(2026, 3, 8, 9, 30, 15, 0, time.Local)
	mgr, _ := newTestManager(t, now)

	first, err := mgr.CreateBackup(sampleData(now))
	require.NoError(t, err)
	second, err := mgr.CreateBackup(sampleData(now))
	require.NoError(t, err)
	third, err := mgr.CreateBackup(sampleData(now))
	require.NoError(t, err)

	assert.Equal(t, "phoenix-20260308-0930.json", filepath.Base(first))
	assert.Equal(t, "phoenix-20260308-093015.json", filepath.Base(second))
	assert.Equal(t, "phoenix-20260308-093015-1.json", filepath.Base(third))

	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	assert.Len(t, backups, 3)
}

func TestListBackupsNewestFirst(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)
	mgr, clock := newTestManager(t, start)

	for i := range 3 {
		*clock = start.Add(time.Duration(i) * time.Hour)
		_, err := mgr.CreateBackup(sampleData(*clock))
		require.NoError(t, err)
	}

	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	require.Len(t, backups, 3)
	assert.Equal(t, 10, backups[0].Timestamp.Hour())
	assert.Equal(t, 8, backups[2].Timestamp.Hour())
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	mgr, _ := newTestManager(t, time.Now())
	require.NoError(t, mgr.ensureBackupDir())
	for _, name := range []string{"notes.txt", "phoenix-garbage.json", "other-20260101-1200.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("{}"), 0o600))
	}

	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestListBackupsMissingDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "absent"))
	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestRotateBackups(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	mgr, clock := newTestManager(t, start)

	for i := range constants.MaxBackups + 3 {
		*clock = start.AddDate(0, 0, i)
		_, err := mgr.CreateBackup(sampleData(*clock))
		require.NoError(t, err)
	}

	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	require.Len(t, backups, constants.MaxBackups)
	assert.Equal(t, start.AddDate(0, 0, 3).Day(), backups[len(backups)-1].Timestamp.Day())
}

func TestSafetyBackupSkipsRotation(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	mgr, clock := newTestManager(t, start)

	for i := range constants.MaxBackups {
		*clock = start.AddDate(0, 0, i)
		_, err := mgr.CreateBackup(sampleData(*clock))
		require.NoError(t, err)
	}
	*clock = start.AddDate(0, 1, 0)
	_, err := mgr.SafetyBackup(sampleData(*clock))
	require.NoError(t, err)

	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	assert.Len(t, backups, constants.MaxBackups+1)
}

func TestReadBackupRejectsCorruption(t *testing.T) {
	mgr, _ := newTestManager(t, time.Now())
	require.NoError(t, mgr.ensureBackupDir())

	tests := []struct {
		name    string
		content string
	}{
		{"not json", "this is not json"},
		{"wrong shape", `{"format":"phoenix-rise-export","version":1,"data":{"meals":"nope"}}`},
		{"newer version", `{"format":"phoenix-rise-export","version":99,"data":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(mgr.GetBackupDir(), "phoenix-20260101-1200.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			_, err := mgr.ReadBackup(path)
			assert.Error(t, err)
		})
	}
}

func TestReadBackupMissingFile(t *testing.T) {
	mgr, _ := newTestManager(t, time.Now())
	_, err := mgr.ReadBackup(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
