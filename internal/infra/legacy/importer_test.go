package legacy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSink(t *testing.T) *domain.TaskManager {
	t.Helper()
	m, err := domain.NewTaskManager("import", nil, testutil.NewMockClock())
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false},
		{"oldinfra", false},
		{"OldInfra", false},
		{"ver1", false},
		{"csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			imp, err := New(tt.format)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnknownFormat)
				assert.ErrorIs(t, err, domain.ErrInvalidOperation)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, imp)
		})
	}
}

func TestOldInfra_Convert(t *testing.T) {
	// Setup
	data := `[
  {"Index": 7, "Text": "second", "Priority": 9, "Done": false, "SubTasks": [],
   "Created": "2012-05-01T10:00:00", "LastEdited": "2012-05-01T10:00:00"},
  {"Index": 3, "Text": "first", "Priority": 1, "Done": true, "Notes": "n", "QueueWeight": 2,
   "Created": "2012-05-01T10:00:00", "LastEdited": "2012-05-01T10:00:00",
   "SubTasks": [
     {"Index": 2, "Text": "sub b", "Done": true},
     {"Index": 1, "Text": "sub a", "Done": false}
   ]}
]`
	sink := newSink(t)
	imp, err := New(FormatOldInfra)
	require.NoError(t, err)

	// Execute
	n, err := imp.Convert([]byte(data), sink)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	roots := sink.Tasks()
	require.Len(t, roots, 2)
	first := roots[0]
	assert.Equal(t, "first", first.Name)
	assert.Equal(t, domain.PriorityHigh, first.Priority)
	assert.True(t, first.IsDone())
	require.Len(t, first.SubTasks, 2)
	assert.Equal(t, "sub a", first.SubTasks[0].Name)
	assert.False(t, first.SubTasks[0].IsDone())
	assert.Equal(t, "sub b", first.SubTasks[1].Name)
	assert.True(t, first.SubTasks[1].IsDone(), "the done sub-task itself is tagged")
	assert.Equal(t, domain.PriorityDefault, first.SubTasks[1].Priority)

	assert.Equal(t, "second", roots[1].Name)
	assert.Equal(t, domain.PriorityLast, roots[1].Priority)
	assert.False(t, roots[1].IsDone())
}

func TestVer1_Convert(t *testing.T) {
	// Setup
	data := `[
  {"Index": 1, "Name": "root", "Priority": 0, "Tags": ["work", "done"],
   "Created": "2013-01-01T00:00:00", "LastEdited": "2013-01-01T00:00:00",
   "SubTasks": [
     {"Index": 2, "Name": "child", "Priority": 3, "Tags": [], "SubTasks": [
       {"Index": 3, "Name": "grandchild", "Priority": 2, "Tags": ["home"], "SubTasks": []}
     ]}
   ]},
  {"Index": 4, "Name": "alone", "Priority": 2, "Tags": [], "SubTasks": []}
]`
	sink := newSink(t)
	imp, err := New(FormatVer1)
	require.NoError(t, err)

	// Execute
	n, err := imp.Convert([]byte(data), sink)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	roots := sink.Tasks()
	require.Len(t, roots, 2)
	assert.Equal(t, "root", roots[0].Name)
	assert.Equal(t, []string{"done", "work"}, roots[0].Tags.Names())
	require.Len(t, roots[0].SubTasks, 1)
	child := roots[0].SubTasks[0]
	assert.Equal(t, domain.PriorityLow, child.Priority)
	require.Len(t, child.SubTasks, 1)
	assert.True(t, child.SubTasks[0].Tags.Has("home"))
	assert.Equal(t, "alone", roots[1].Name)
}

func TestConvert_InvalidData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "<tasks/>"},
		{"null", "null"},
		{"object", `{"Index": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp, err := New(FormatVer1)
			require.NoError(t, err)
			sink := newSink(t)

			_, err = imp.Convert([]byte(tt.data), sink)

			require.Error(t, err)
			assert.Zero(t, sink.Len())
		})
	}
}

func TestFileImporter_ImportFile(t *testing.T) {
	// Setup
	path := filepath.Join(t.TempDir(), "old.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"Index": 1, "Text": "legacy", "Priority": 2, "SubTasks": []}]`), 0o600))
	sink := newSink(t)

	// Execute
	n, err := NewFileImporter().ImportFile("", path, sink)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	task, err := sink.GetByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, "legacy", task.Name)
}

func TestFileImporter_ImportFile_Errors(t *testing.T) {
	sink := newSink(t)

	_, err := NewFileImporter().ImportFile("", "", sink)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	_, err = NewFileImporter().ImportFile("", filepath.Join(t.TempDir(), "missing.json"), sink)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read legacy file")

	_, err = NewFileImporter().ImportFile("xml", "x", sink)
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)
}
