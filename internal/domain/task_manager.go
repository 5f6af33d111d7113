package domain

import (
	"fmt"
	"slices"
)

// taskNode is one arena slot: the task record (SubTasks always nil) and the
// indices of its children. Parents are found by scanning child lists.
type taskNode struct {
	children []int
	task     Task
}

// TaskManager owns the task forest of one repository.
// Tasks live in an arena keyed by index, so re-parenting only moves an index
// between child lists. Every task returned to callers is a deep copy.
// Fields are ordered to minimize memory padding.
type TaskManager struct {
	clock      Clock
	nodes      map[int]*taskNode
	repository string
	roots      []int
	nextIndex  int
}

// NewTaskManager builds a manager over a loaded forest. The next index is one
// past the largest index found anywhere in the forest.
func NewTaskManager(repository string, tasks []Task, clock Clock) (*TaskManager, error) {
	if clock == nil {
		clock = RealClock{}
	}
	m := &TaskManager{
		clock:      clock,
		nodes:      make(map[int]*taskNode),
		repository: repository,
		nextIndex:  1,
	}
	for _, t := range tasks {
		if err := m.load(t); err != nil {
			return nil, err
		}
		m.roots = append(m.roots, t.Index)
	}
	return m, nil
}

func (m *TaskManager) load(t Task) error {
	if _, ok := m.nodes[t.Index]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateIndex, t.Index)
	}
	rec := t.Clone()
	rec.SubTasks = nil
	rec.Priority = ClampPriority(rec.Priority)
	if rec.Tags == nil {
		rec.Tags = make(Tags)
	}
	node := &taskNode{task: rec}
	m.nodes[t.Index] = node
	m.nextIndex = max(m.nextIndex, t.Index+1)

	for _, sub := range t.SubTasks {
		if err := m.load(sub); err != nil {
			return err
		}
		node.children = append(node.children, sub.Index)
	}
	return nil
}

// Repository returns the name of the repository the manager is bound to.
func (m *TaskManager) Repository() string {
	return m.repository
}

// NextIndex returns the index the next created task will get.
func (m *TaskManager) NextIndex() int {
	return m.nextIndex
}

// ReserveIndex raises the index counter to at least next.
// It never lowers it, so indices handed out earlier are not reused.
func (m *TaskManager) ReserveIndex(next int) {
	m.nextIndex = max(m.nextIndex, next)
}

// Len returns the number of tasks in the forest, descendants included.
func (m *TaskManager) Len() int {
	return len(m.nodes)
}

// Tasks returns the root tasks with their sub-trees, in insertion order.
func (m *TaskManager) Tasks() []Task {
	out := make([]Task, 0, len(m.roots))
	for _, idx := range m.roots {
		out = append(out, m.view(idx))
	}
	return out
}

// Create adds a new root task and returns it.
func (m *TaskManager) Create(name string, priority Priority) Task {
	idx := m.create(name, priority)
	m.roots = append(m.roots, idx)
	return m.view(idx)
}

// create allocates a detached node; the caller links it into a container.
func (m *TaskManager) create(name string, priority Priority) int {
	now := m.clock.Now()
	idx := m.nextIndex
	m.nextIndex++
	m.nodes[idx] = &taskNode{task: Task{
		Index:      idx,
		Name:       name,
		Priority:   ClampPriority(priority),
		Tags:       make(Tags),
		Created:    now,
		LastEdited: now,
	}}
	return idx
}

// GetByIndex returns the task with the given index wherever it is in the forest.
func (m *TaskManager) GetByIndex(index int) (Task, error) {
	if _, err := m.node(index); err != nil {
		return Task{}, err
	}
	return m.view(index), nil
}

// Find returns the first task matching pred, visiting each root and then its
// sub-tree depth first.
func (m *TaskManager) Find(pred func(Task) bool) (Task, bool) {
	var found Task
	ok := m.walk(m.roots, func(idx int) bool {
		t := m.view(idx)
		if pred(t) {
			found = t
			return true
		}
		return false
	})
	return found, ok
}

// Edit locates a task, replaces its editable fields with the result of fn and
// stamps LastEdited. fn receives a detached copy without sub-tasks; changes to
// Index, Created and SubTasks are ignored. Priority is clamped.
func (m *TaskManager) Edit(index int, fn func(Task) Task) (Task, error) {
	n, err := m.node(index)
	if err != nil {
		return Task{}, err
	}
	m.apply(n, fn)
	return m.view(index), nil
}

func (m *TaskManager) apply(n *taskNode, fn func(Task) Task) {
	out := fn(n.task.Clone())
	n.task.Name = out.Name
	n.task.Priority = ClampPriority(out.Priority)
	n.task.Tags = out.Tags.Clone()
	n.task.StateHistory = slices.Clone(out.StateHistory)
	n.task.LastEdited = m.clock.Now()
}

// touch stamps LastEdited on a task whose child list changed.
func (m *TaskManager) touch(n *taskNode) {
	m.apply(n, func(t Task) Task { return t })
}

// AttachTo moves child under parent and returns the parent.
// All checks run before anything is moved.
func (m *TaskManager) AttachTo(child, parent int) (Task, error) {
	if _, err := m.node(child); err != nil {
		return Task{}, err
	}
	p, err := m.node(parent)
	if err != nil {
		return Task{}, err
	}
	if child == parent {
		return Task{}, fmt.Errorf("%w: #%d", ErrSelfAttach, child)
	}
	if m.inSubtree(child, parent) {
		return Task{}, fmt.Errorf("%w: #%d is inside #%d", ErrCyclicAttach, parent, child)
	}

	m.unlink(child)
	p.children = append(p.children, child)
	m.touch(p)
	return m.view(parent), nil
}

// Detach makes the task a root under its existing index. Detaching a root is a no-op.
func (m *TaskManager) Detach(index int) (Task, error) {
	if _, err := m.node(index); err != nil {
		return Task{}, err
	}
	if _, ok := m.parentOf(index); ok {
		m.unlink(index)
		m.roots = append(m.roots, index)
	}
	return m.view(index), nil
}

// Delete removes the task and its whole sub-tree and returns what was removed.
// Indices of removed tasks are never handed out again.
func (m *TaskManager) Delete(index int) (Task, error) {
	if _, err := m.node(index); err != nil {
		return Task{}, err
	}
	removed := m.view(index)
	var doomed []int
	m.walk([]int{index}, func(idx int) bool {
		doomed = append(doomed, idx)
		return false
	})
	m.unlink(index)
	for _, idx := range doomed {
		delete(m.nodes, idx)
	}
	return removed, nil
}

// Import copies task and its sub-tree into the forest as a new root with fresh
// indices. Name, priority and tags are kept; history and timestamps are not.
func (m *TaskManager) Import(task Task) Task {
	idx := m.importTree(task)
	m.roots = append(m.roots, idx)
	return m.view(idx)
}

func (m *TaskManager) importTree(task Task) int {
	idx := m.create(task.Name, task.Priority)
	n := m.nodes[idx]
	for name, at := range task.Tags {
		n.task.Tags[NormalizeKey(name)] = at
	}
	for _, sub := range task.SubTasks {
		n.children = append(n.children, m.importTree(sub))
	}
	return idx
}

// node returns the arena slot for index.
func (m *TaskManager) node(index int) (*taskNode, error) {
	n, ok := m.nodes[index]
	if !ok {
		return nil, fmt.Errorf("%w: no task with index %d", ErrTaskNotFound, index)
	}
	return n, nil
}

// view builds a deep copy of the task with its sub-tree.
func (m *TaskManager) view(index int) Task {
	n := m.nodes[index]
	t := n.task.Clone()
	t.SubTasks = make([]Task, 0, len(n.children))
	for _, child := range n.children {
		t.SubTasks = append(t.SubTasks, m.view(child))
	}
	return t
}

// walk visits ids and their descendants depth first until fn returns true.
func (m *TaskManager) walk(ids []int, fn func(int) bool) bool {
	for _, idx := range ids {
		if fn(idx) {
			return true
		}
		n, ok := m.nodes[idx]
		if ok && m.walk(n.children, fn) {
			return true
		}
	}
	return false
}

// inSubtree reports whether target is a strict descendant of root.
func (m *TaskManager) inSubtree(root, target int) bool {
	return m.walk(m.nodes[root].children, func(idx int) bool {
		return idx == target
	})
}

// parentOf returns the index of the task whose child list holds index.
func (m *TaskManager) parentOf(index int) (int, bool) {
	for idx, n := range m.nodes {
		if slices.Contains(n.children, index) {
			return idx, true
		}
	}
	return 0, false
}

// unlink removes index from its current container, stamping a former parent.
func (m *TaskManager) unlink(index int) {
	if parent, ok := m.parentOf(index); ok {
		p := m.nodes[parent]
		p.children = slices.DeleteFunc(p.children, func(idx int) bool { return idx == index })
		m.touch(p)
		return
	}
	m.roots = slices.DeleteFunc(m.roots, func(idx int) bool { return idx == index })
}
