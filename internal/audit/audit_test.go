package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kutuphane/locallibrary/pkg/logger"
)

func openTestTrail(t *testing.T) *Trail {
	t.Helper()
	logger.Init(false)

	path := filepath.Join(t.TempDir(), "audit.log")
	trail, err := Open(path)
	require.NoError(t, err, "Open should create the trail file")
	t.Cleanup(func() { trail.Close() })
	return trail
}

func TestTrail_RecordAndReadAll(t *testing.T) {
	trail := openTestTrail(t)

	entries := []Entry{
		{Actor: "librarian", Operation: "create", Entity: "author", EntityID: "a1"},
		{Actor: "librarian", Operation: "update", Entity: "author", EntityID: "a1"},
		{Actor: "admin", Operation: "delete", Entity: "genre", EntityID: "g1"},
	}
	for _, entry := range entries {
		require.NoError(t, trail.Record(entry))
	}

	got, err := trail.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 3, "Every recorded entry should read back")

	assert.Equal(t, "create", got[0].Operation)
	assert.Equal(t, "update", got[1].Operation)
	assert.Equal(t, "delete", got[2].Operation)
	assert.Equal(t, "genre", got[2].Entity)
	assert.Equal(t, "g1", got[2].EntityID)
}

func TestTrail_FillsZeroTimestamp(t *testing.T) {
	trail := openTestTrail(t)

	before := time.Now()
	require.NoError(t, trail.Record(Entry{Actor: "admin", Operation: "delete", Entity: "book", EntityID: "b1"}))

	got, err := trail.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].Timestamp.IsZero(), "Record should stamp entries missing a timestamp")
	assert.False(t, got[0].Timestamp.Before(before.Add(-time.Second)))
}

func TestTrail_SurvivesReopen(t *testing.T) {
	logger.Init(false)
	path := filepath.Join(t.TempDir(), "audit.log")

	trail, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, trail.Record(Entry{Actor: "admin", Operation: "create", Entity: "genre", EntityID: "g1"}))
	require.NoError(t, trail.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Record(Entry{Actor: "admin", Operation: "create", Entity: "genre", EntityID: "g2"}))

	got, err := reopened.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 2, "Reopening should append, not truncate")
	assert.Equal(t, "g1", got[0].EntityID)
	assert.Equal(t, "g2", got[1].EntityID)
}

func TestTrail_SkipsCorruptLines(t *testing.T) {
	logger.Init(false)
	path := filepath.Join(t.TempDir(), "audit.log")

	trail, err := Open(path)
	require.NoError(t, err)
	defer trail.Close()

	require.NoError(t, trail.Record(Entry{Actor: "admin", Operation: "create", Entity: "author", EntityID: "a1"}))

	// Corrupt the file with a partial line, as a crash mid-write would.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("{\"actor\":\"adm\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, trail.Record(Entry{Actor: "admin", Operation: "create", Entity: "author", EntityID: "a2"}))

	got, err := trail.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 2, "Corrupt lines should be skipped, valid ones kept")
	assert.Equal(t, "a1", got[0].EntityID)
	assert.Equal(t, "a2", got[1].EntityID)
}

func TestTrail_CreatesParentDirectory(t *testing.T) {
	logger.Init(false)
	path := filepath.Join(t.TempDir(), "nested", "dir", "audit.log")

	trail, err := Open(path)
	require.NoError(t, err, "Open should create missing parent directories")
	defer trail.Close()

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}
