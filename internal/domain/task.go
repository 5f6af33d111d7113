// Package domain contains core business entities and interfaces.
package domain

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"time"
)

// TagDone is the reserved tag that marks a task as done.
const TagDone = "done"

// Task represents one unit of work. SubTasks are owned exclusively by the task.
// Fields are ordered to minimize memory padding.
type Task struct {
	Created      time.Time     `json:"created"`
	LastEdited   time.Time     `json:"lastEdited"`
	Tags         Tags          `json:"tags"`
	Name         string        `json:"name"`
	SubTasks     []Task        `json:"subTasks"`
	StateHistory []StateRecord `json:"stateHistory,omitempty"`
	Index        int           `json:"index"`
	Priority     Priority      `json:"priority"`
}

// StateRecord is one entry of a task's lifecycle history.
type StateRecord struct {
	Time  time.Time `json:"time"`
	State string    `json:"state"`
	Note  string    `json:"note,omitempty"`
}

// IsDone returns true if the task carries the done tag.
func (t *Task) IsDone() bool {
	return t.Tags.Has(TagDone)
}

// HasStateHistory returns true if lifecycle tracking has been started for the task.
func (t *Task) HasStateHistory() bool {
	return len(t.StateHistory) > 0
}

// CurrentState returns the most recent history record.
// Records with equal timestamps resolve to the one appended last.
func (t *Task) CurrentState() (StateRecord, bool) {
	pos := t.currentStatePos()
	if pos < 0 {
		return StateRecord{}, false
	}
	return t.StateHistory[pos], true
}

func (t *Task) currentStatePos() int {
	pos := -1
	for i, rec := range t.StateHistory {
		if pos < 0 || !rec.Time.Before(t.StateHistory[pos].Time) {
			pos = i
		}
	}
	return pos
}

// SortedHistory returns the state history ordered by time, oldest first.
func (t *Task) SortedHistory() []StateRecord {
	history := slices.Clone(t.StateHistory)
	slices.SortStableFunc(history, func(a, b StateRecord) int {
		return a.Time.Compare(b.Time)
	})
	return history
}

// Clone returns a deep copy of the task and its sub-tree.
func (t *Task) Clone() Task {
	c := *t
	c.Tags = t.Tags.Clone()
	c.StateHistory = slices.Clone(t.StateHistory)
	if t.SubTasks != nil {
		c.SubTasks = make([]Task, len(t.SubTasks))
		for i, sub := range t.SubTasks {
			c.SubTasks[i] = sub.Clone()
		}
	}
	return c
}

// Tags maps normalized tag names to the time the tag was applied.
type Tags map[string]time.Time

// Has reports whether the tag is present (case-insensitive).
func (t Tags) Has(name string) bool {
	_, ok := t[NormalizeKey(name)]
	return ok
}

// Add applies the tag. A tag that is already present keeps its original time.
func (t Tags) Add(name string, at time.Time) {
	key := NormalizeKey(name)
	if _, ok := t[key]; ok {
		return
	}
	t[key] = at
}

// Remove deletes the tag and reports whether it was present.
func (t Tags) Remove(name string) bool {
	key := NormalizeKey(name)
	if _, ok := t[key]; !ok {
		return false
	}
	delete(t, key)
	return true
}

// Names returns the tag names in sorted order.
func (t Tags) Names() []string {
	return slices.Sorted(maps.Keys(t))
}

// Clone returns a copy of the tag map; a nil map yields an empty one.
func (t Tags) Clone() Tags {
	c := make(Tags, len(t))
	maps.Copy(c, t)
	return c
}

// UnmarshalJSON accepts both the timestamped object form and the older
// plain array of tag names. Keys are normalized on load.
func (t *Tags) UnmarshalJSON(data []byte) error {
	tags := make(Tags)
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
	case len(trimmed) > 0 && trimmed[0] == '[':
		var names []string
		if err := json.Unmarshal(trimmed, &names); err != nil {
			return err
		}
		for _, name := range names {
			tags.Add(name, time.Time{})
		}
	default:
		var raw map[string]time.Time
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		for name, at := range raw {
			tags[NormalizeKey(name)] = at
		}
	}
	*t = tags
	return nil
}
