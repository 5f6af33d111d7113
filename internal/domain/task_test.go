package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a time that advances one second per call.
type stepClock struct {
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func TestClampPriority(t *testing.T) {
	tests := []struct {
		in   Priority
		want Priority
	}{
		{-5, PriorityTop},
		{-1, PriorityTop},
		{0, PriorityTop},
		{2, PriorityNormal},
		{4, PriorityLast},
		{5, PriorityLast},
		{100, PriorityLast},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPriority(tt.in))
		})
	}
}

func TestTags_CaseInsensitive(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tags := make(Tags)

	tags.Add("Urgent", at)
	tags.Add("URGENT", at.Add(time.Hour))

	assert.True(t, tags.Has("urgent"))
	assert.True(t, tags.Has(" UrGeNt "))
	assert.Len(t, tags, 1)
	assert.Equal(t, at, tags["urgent"], "re-adding keeps the original time")

	assert.True(t, tags.Remove("uRGENT"))
	assert.False(t, tags.Remove("urgent"))
	assert.Empty(t, tags)
}

func TestTags_Names(t *testing.T) {
	tags := make(Tags)
	for _, n := range []string{"zeta", "Alpha", "mid"} {
		tags.Add(n, time.Time{})
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, tags.Names())
}

func TestTags_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"object form", `{"Home":"2024-01-02T03:04:05Z","work":"2024-01-02T03:04:05Z"}`, []string{"home", "work"}},
		{"array form", `["Done","later"]`, []string{"done", "later"}},
		{"null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tags Tags
			require.NoError(t, json.Unmarshal([]byte(tt.input), &tags))
			assert.NotNil(t, tags)
			assert.Equal(t, tt.want, tags.Names())
		})
	}
}

func TestTags_UnmarshalJSON_Invalid(t *testing.T) {
	var tags Tags
	assert.Error(t, json.Unmarshal([]byte(`42`), &tags))
}

func TestTask_CurrentState(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no history", func(t *testing.T) {
		task := Task{}
		_, ok := task.CurrentState()
		assert.False(t, ok)
	})

	t.Run("latest by time", func(t *testing.T) {
		task := Task{StateHistory: []StateRecord{
			{State: "review", Time: base.Add(2 * time.Hour)},
			{State: "open", Time: base},
			{State: "in_progress", Time: base.Add(time.Hour)},
		}}
		rec, ok := task.CurrentState()
		require.True(t, ok)
		assert.Equal(t, "review", rec.State)
	})

	t.Run("equal times resolve to the last entry", func(t *testing.T) {
		task := Task{StateHistory: []StateRecord{
			{State: "open", Time: base},
			{State: "closed", Time: base},
		}}
		rec, ok := task.CurrentState()
		require.True(t, ok)
		assert.Equal(t, "closed", rec.State)
	})
}

func TestTask_SortedHistory(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	task := Task{StateHistory: []StateRecord{
		{State: "b", Time: base.Add(time.Minute)},
		{State: "a", Time: base},
	}}

	got := task.SortedHistory()

	assert.Equal(t, "a", got[0].State)
	assert.Equal(t, "b", got[1].State)
	assert.Equal(t, "b", task.StateHistory[0].State, "original order is untouched")
}

func TestTask_Clone(t *testing.T) {
	orig := Task{
		Index:        1,
		Tags:         Tags{"x": time.Time{}},
		StateHistory: []StateRecord{{State: "open"}},
		SubTasks:     []Task{{Index: 2, Tags: Tags{"y": time.Time{}}}},
	}

	c := orig.Clone()
	c.Tags.Add("new", time.Time{})
	c.StateHistory[0].State = "closed"
	c.SubTasks[0].Tags.Add("z", time.Time{})
	c.SubTasks[0].Name = "changed"

	assert.False(t, orig.Tags.Has("new"))
	assert.Equal(t, "open", orig.StateHistory[0].State)
	assert.False(t, orig.SubTasks[0].Tags.Has("z"))
	assert.Empty(t, orig.SubTasks[0].Name)
}

func TestTask_UnmarshalLegacyTags(t *testing.T) {
	in := `{"index":3,"priority":1,"name":"write docs","created":"2024-01-01T00:00:00Z",` +
		`"lastEdited":"2024-01-02T00:00:00Z","tags":["Done"],"subTasks":[{"index":4,"name":"intro"}]}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(in), &task))

	assert.Equal(t, 3, task.Index)
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.True(t, task.IsDone())
	require.Len(t, task.SubTasks, 1)
	assert.Equal(t, "intro", task.SubTasks[0].Name)
	assert.False(t, task.HasStateHistory())
}
