package domain

import (
	"cmp"
	"slices"
)

// SortTasks returns a copy of tasks in display order: priority ascending,
// then index ascending. Sub-tasks are left as they are.
func SortTasks(tasks []Task) []Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, compareTasks)
	return out
}

func compareTasks(a, b Task) int {
	return cmp.Or(
		cmp.Compare(a.Priority, b.Priority),
		cmp.Compare(a.Index, b.Index),
	)
}

// SortTree sorts tasks and, recursively, every sub-task list.
func SortTree(tasks []Task) []Task {
	out := SortTasks(tasks)
	for i := range out {
		out[i].SubTasks = SortTree(out[i].SubTasks)
	}
	return out
}

// IncludeByTag keeps the tasks carrying tag.
func IncludeByTag(tasks []Task, tag string) []Task {
	return slices.DeleteFunc(slices.Clone(tasks), func(t Task) bool {
		return !t.Tags.Has(tag)
	})
}

// ExcludeByTag drops the tasks carrying tag.
func ExcludeByTag(tasks []Task, tag string) []Task {
	return slices.DeleteFunc(slices.Clone(tasks), func(t Task) bool {
		return t.Tags.Has(tag)
	})
}

// FilterTree applies filter to the roots and then to every kept task's sub-tasks.
func FilterTree(tasks []Task, filter func([]Task) []Task) []Task {
	out := filter(tasks)
	for i := range out {
		out[i].SubTasks = FilterTree(out[i].SubTasks, filter)
	}
	return out
}

// TaskLine is one row of a flattened tree.
type TaskLine struct {
	Task  Task
	Depth int
}

// Flatten lists the tree depth first, parents before their sub-tasks.
func Flatten(tasks []Task) []TaskLine {
	var lines []TaskLine
	var visit func([]Task, int)
	visit = func(ts []Task, depth int) {
		for _, t := range ts {
			lines = append(lines, TaskLine{Task: t, Depth: depth})
			visit(t.SubTasks, depth+1)
		}
	}
	visit(tasks, 0)
	return lines
}
