package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTaskManager(t *testing.T) (*TaskManager, *stepClock) {
	t.Helper()
	clock := newStepClock()
	m, err := NewTaskManager("default", nil, clock)
	require.NoError(t, err)
	return m, clock
}

// indicesOf returns the indices reachable from tasks, depth first.
func indicesOf(tasks []Task) []int {
	var out []int
	for _, l := range Flatten(tasks) {
		out = append(out, l.Task.Index)
	}
	return out
}

func TestNewTaskManager_NextIndexFromWholeForest(t *testing.T) {
	tasks := []Task{
		{Index: 2, Name: "a", SubTasks: []Task{{Index: 9, Name: "deep"}}},
		{Index: 4, Name: "b", Priority: 17},
	}

	m, err := NewTaskManager("work", tasks, nil)

	require.NoError(t, err)
	assert.Equal(t, "work", m.Repository())
	assert.Equal(t, 10, m.NextIndex())
	assert.Equal(t, 3, m.Len())

	b, err := m.GetByIndex(4)
	require.NoError(t, err)
	assert.Equal(t, PriorityLast, b.Priority, "loaded priorities are clamped")
	assert.NotNil(t, b.Tags)
}

func TestNewTaskManager_DuplicateIndex(t *testing.T) {
	tasks := []Task{
		{Index: 1, SubTasks: []Task{{Index: 3}}},
		{Index: 3},
	}

	_, err := NewTaskManager("default", tasks, nil)

	assert.ErrorIs(t, err, ErrDuplicateIndex)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestTaskManager_Create(t *testing.T) {
	m, _ := newTestTaskManager(t)

	a := m.Create("first", PriorityHigh)
	b := m.Create("second", Priority(-3))

	assert.Equal(t, 1, a.Index)
	assert.Equal(t, 2, b.Index)
	assert.Equal(t, PriorityTop, b.Priority)
	assert.Equal(t, a.Created, a.LastEdited)
	assert.NotNil(t, a.SubTasks)

	got, err := m.GetByIndex(a.Index)
	require.NoError(t, err)
	assert.Equal(t, a, got)
	assert.Equal(t, []int{1, 2}, indicesOf(m.Tasks()))
}

func TestTaskManager_GetByIndex_NotFound(t *testing.T) {
	m, _ := newTestTaskManager(t)

	_, err := m.GetByIndex(42)

	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskManager_ReturnsCopies(t *testing.T) {
	m, _ := newTestTaskManager(t)
	a := m.Create("a", PriorityNormal)

	a.Name = "mutated"
	a.Tags.Add("leak", a.Created)

	got, err := m.GetByIndex(a.Index)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)
	assert.False(t, got.Tags.Has("leak"))
}

func TestTaskManager_Edit(t *testing.T) {
	m, _ := newTestTaskManager(t)
	a := m.Create("a", PriorityNormal)
	sub := m.Create("sub", PriorityNormal)
	_, err := m.AttachTo(sub.Index, a.Index)
	require.NoError(t, err)
	before, err := m.GetByIndex(a.Index)
	require.NoError(t, err)

	// Execute
	edited, err := m.Edit(a.Index, func(t Task) Task {
		t.Name = "renamed"
		t.Priority = 99
		t.Index = 500
		t.SubTasks = nil
		return t
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "renamed", edited.Name)
	assert.Equal(t, PriorityLast, edited.Priority)
	assert.Equal(t, a.Index, edited.Index)
	assert.Equal(t, a.Created, edited.Created)
	assert.True(t, edited.LastEdited.After(before.LastEdited))
	require.Len(t, edited.SubTasks, 1)
	assert.Equal(t, sub.Index, edited.SubTasks[0].Index)
}

func TestTaskManager_Edit_NotFound(t *testing.T) {
	m, _ := newTestTaskManager(t)
	called := false

	_, err := m.Edit(7, func(t Task) Task {
		called = true
		return t
	})

	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.False(t, called)
}

func TestTaskManager_Find(t *testing.T) {
	m, _ := newTestTaskManager(t)
	a := m.Create("a", PriorityNormal)
	m.Create("b", PriorityNormal)
	c := m.Create("target", PriorityNormal)
	m.Create("target", PriorityNormal)
	_, err := m.AttachTo(c.Index, a.Index)
	require.NoError(t, err)

	got, ok := m.Find(func(t Task) bool { return t.Name == "target" })
	require.True(t, ok)
	assert.Equal(t, c.Index, got.Index, "sub-tree of an earlier root is searched first")

	_, ok = m.Find(func(t Task) bool { return t.Name == "nothing" })
	assert.False(t, ok)
}

func TestTaskManager_AttachTo(t *testing.T) {
	m, _ := newTestTaskManager(t)
	a := m.Create("a", PriorityNormal)
	b := m.Create("b", PriorityNormal)

	parent, err := m.AttachTo(a.Index, b.Index)

	require.NoError(t, err)
	assert.Equal(t, b.Index, parent.Index)
	require.Len(t, parent.SubTasks, 1)
	assert.Equal(t, a.Index, parent.SubTasks[0].Index)
	assert.Equal(t, []int{b.Index, a.Index}, indicesOf(m.Tasks()))
	assert.Len(t, m.Tasks(), 1)
}

func TestTaskManager_AttachTo_StampsOldParent(t *testing.T) {
	m, _ := newTestTaskManager(t)
	a := m.Create("a", PriorityNormal)
	p1 := m.Create("p1", PriorityNormal)
	p2 := m.Create("p2", PriorityNormal)
	_, err := m.AttachTo(a.Index, p1.Index)
	require.NoError(t, err)
	before, err := m.GetByIndex(p1.Index)
	require.NoError(t, err)

	_, err = m.AttachTo(a.Index, p2.Index)
	require.NoError(t, err)

	after, err := m.GetByIndex(p1.Index)
	require.NoError(t, err)
	assert.Empty(t, after.SubTasks)
	assert.True(t, after.LastEdited.After(before.LastEdited))
}

func TestTaskManager_AttachTo_Errors(t *testing.T) {
	m, _ := newTestTaskManager(t)
	a := m.Create("a", PriorityNormal)
	b := m.Create("b", PriorityNormal)
	c := m.Create("c", PriorityNormal)
	_, err := m.AttachTo(b.Index, a.Index)
	require.NoError(t, err)
	_, err = m.AttachTo(c.Index, b.Index)
	require.NoError(t, err)
	before := m.Tasks()

	tests := []struct {
		name    string
		child   int
		parent  int
		wantErr error
	}{
		{"self", a.Index, a.Index, ErrSelfAttach},
		{"direct child", a.Index, b.Index, ErrCyclicAttach},
		{"deep descendant", a.Index, c.Index, ErrCyclicAttach},
		{"missing child", 99, a.Index, ErrTaskNotFound},
		{"missing parent", a.Index, 99, ErrTaskNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.AttachTo(tt.child, tt.parent)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, m.Tasks(), "forest is unchanged")
		})
	}
}

func TestTaskManager_Detach(t *testing.T) {
	m, _ := newTestTaskManager(t)
	a := m.Create("a", PriorityNormal)
	b := m.Create("b", PriorityNormal)
	_, err := m.AttachTo(b.Index, a.Index)
	require.NoError(t, err)

	detached, err := m.Detach(b.Index)

	require.NoError(t, err)
	assert.Equal(t, b.Index, detached.Index)
	assert.Len(t, m.Tasks(), 2)
	parent, err := m.GetByIndex(a.Index)
	require.NoError(t, err)
	assert.Empty(t, parent.SubTasks)

	// detaching a root is a no-op
	_, err = m.Detach(a.Index)
	require.NoError(t, err)
	assert.Equal(t, []int{a.Index, b.Index}, indicesOf(m.Tasks()))

	_, err = m.Detach(99)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskManager_Delete(t *testing.T) {
	m, _ := newTestTaskManager(t)
	a := m.Create("a", PriorityNormal)
	b := m.Create("b", PriorityNormal)
	c := m.Create("c", PriorityNormal)
	keep := m.Create("keep", PriorityNormal)
	_, err := m.AttachTo(b.Index, a.Index)
	require.NoError(t, err)
	_, err = m.AttachTo(c.Index, b.Index)
	require.NoError(t, err)

	removed, err := m.Delete(a.Index)

	require.NoError(t, err)
	assert.Equal(t, []int{a.Index, b.Index, c.Index}, indicesOf([]Task{removed}))
	for _, idx := range []int{a.Index, b.Index, c.Index} {
		_, err := m.GetByIndex(idx)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	}
	_, err = m.GetByIndex(keep.Index)
	assert.NoError(t, err)
	assert.Equal(t, 1, m.Len())

	next := m.Create("next", PriorityNormal)
	assert.Equal(t, keep.Index+1, next.Index, "deleted indices are not reused")
}

func TestTaskManager_Delete_SubTaskStampsParent(t *testing.T) {
	m, _ := newTestTaskManager(t)
	a := m.Create("a", PriorityNormal)
	b := m.Create("b", PriorityNormal)
	_, err := m.AttachTo(b.Index, a.Index)
	require.NoError(t, err)
	before, err := m.GetByIndex(a.Index)
	require.NoError(t, err)

	_, err = m.Delete(b.Index)
	require.NoError(t, err)

	after, err := m.GetByIndex(a.Index)
	require.NoError(t, err)
	assert.Empty(t, after.SubTasks)
	assert.True(t, after.LastEdited.After(before.LastEdited))
}

func TestTaskManager_ReserveIndex(t *testing.T) {
	m, _ := newTestTaskManager(t)
	m.ReserveIndex(10)
	m.ReserveIndex(3)

	assert.Equal(t, 10, m.Create("a", PriorityNormal).Index)
}

func TestTaskManager_Import(t *testing.T) {
	m, _ := newTestTaskManager(t)
	m.Create("existing", PriorityNormal)
	src := Task{
		Index:    1,
		Name:     "imported",
		Priority: PriorityHigh,
		Tags:     Tags{"Work": {}},
		SubTasks: []Task{
			{Index: 2, Name: "child", Priority: 9},
		},
		StateHistory: []StateRecord{{State: "open"}},
	}

	got := m.Import(src)

	assert.Equal(t, 2, got.Index)
	assert.Equal(t, "imported", got.Name)
	assert.True(t, got.Tags.Has("work"))
	assert.Empty(t, got.StateHistory)
	require.Len(t, got.SubTasks, 1)
	assert.Equal(t, 3, got.SubTasks[0].Index)
	assert.Equal(t, PriorityLast, got.SubTasks[0].Priority)
	assert.Equal(t, 3, m.Len())
}

func TestTaskManager_Priority(t *testing.T) {
	m, _ := newTestTaskManager(t)
	a := m.Create("a", PriorityHigh)

	got, err := m.RaisePriority(a.Index)
	require.NoError(t, err)
	assert.Equal(t, PriorityTop, got.Priority)

	got, err = m.RaisePriority(a.Index)
	require.NoError(t, err)
	assert.Equal(t, PriorityTop, got.Priority, "raising past top is clamped")

	got, err = m.SetPriority(a.Index, 10)
	require.NoError(t, err)
	assert.Equal(t, PriorityLast, got.Priority)

	got, err = m.LowerPriority(a.Index)
	require.NoError(t, err)
	assert.Equal(t, PriorityLast, got.Priority)
}

func TestTaskManager_Tags(t *testing.T) {
	m, _ := newTestTaskManager(t)
	a := m.Create("a", PriorityNormal)

	got, err := m.AddTag(a.Index, "Home")
	require.NoError(t, err)
	assert.True(t, got.Tags.Has("home"))

	_, err = m.AddTag(a.Index, " ")
	assert.ErrorIs(t, err, ErrInvalidTagName)

	got, err = m.RemoveTag(a.Index, "HOME")
	require.NoError(t, err)
	assert.False(t, got.Tags.Has("home"))

	_, err = m.RemoveTag(a.Index, "home")
	assert.ErrorIs(t, err, ErrTagNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskManager_MarkDone(t *testing.T) {
	m, _ := newTestTaskManager(t)
	a := m.Create("a", PriorityNormal)
	b := m.Create("b", PriorityNormal)
	c := m.Create("c", PriorityNormal)
	_, err := m.AttachTo(b.Index, a.Index)
	require.NoError(t, err)
	_, err = m.AttachTo(c.Index, b.Index)
	require.NoError(t, err)

	touched, err := m.MarkDone(a.Index)

	require.NoError(t, err)
	assert.Equal(t, []int{a.Index, b.Index, c.Index}, touched)
	for _, idx := range touched {
		task, err := m.GetByIndex(idx)
		require.NoError(t, err)
		assert.True(t, task.IsDone())
	}

	// undone only affects the task itself
	got, err := m.MarkUndone(a.Index)
	require.NoError(t, err)
	assert.False(t, got.IsDone())
	child, err := m.GetByIndex(b.Index)
	require.NoError(t, err)
	assert.True(t, child.IsDone())

	// undone on a task that is not done is fine
	_, err = m.MarkUndone(a.Index)
	assert.NoError(t, err)

	_, err = m.MarkDone(99)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskManager_StateHistory(t *testing.T) {
	m, _ := newTestTaskManager(t)
	sm, err := NewStateManager(DefaultStates())
	require.NoError(t, err)
	a := m.Create("a", PriorityNormal)
	open, err := sm.OpenState()
	require.NoError(t, err)

	// no history yet
	_, err = m.AppendState(a.Index, open, "")
	assert.ErrorIs(t, err, ErrNoActiveState)
	_, err = m.SetStateNote(a.Index, "note")
	assert.ErrorIs(t, err, ErrNoActiveState)

	got, err := m.StartStateHistory(a.Index, open, "created")
	require.NoError(t, err)
	cur, ok := got.CurrentState()
	require.True(t, ok)
	assert.Equal(t, "open", cur.State)
	assert.Equal(t, "created", cur.Note)

	_, err = m.StartStateHistory(a.Index, open, "")
	assert.ErrorIs(t, err, ErrStateAlreadySet)

	next, err := sm.MoveToNext(cur.State, "in_progress")
	require.NoError(t, err)
	got, err = m.AppendState(a.Index, next, "")
	require.NoError(t, err)
	assert.Len(t, got.StateHistory, 2)

	got, err = m.SetStateNote(a.Index, "halfway")
	require.NoError(t, err)
	cur, _ = got.CurrentState()
	assert.Equal(t, "in_progress", cur.State)
	assert.Equal(t, "halfway", cur.Note)
	assert.Equal(t, "created", got.StateHistory[0].Note)

	got, err = m.ClearStateHistory(a.Index)
	require.NoError(t, err)
	assert.False(t, got.HasStateHistory())
}

func TestTaskManager_SetName(t *testing.T) {
	m, _ := newTestTaskManager(t)
	a := m.Create("a", PriorityNormal)

	got, err := m.SetName(a.Index, "renamed")

	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
}
