package legacy

import (
	"cmp"
	"slices"

	"github.com/runoshun/taskwatch/internal/domain"
)

// oldInfraTask is a record of the flat format. Only one level of sub-tasks exists.
// Notes, QueueWeight and the zone-less timestamps have no counterpart and are skipped.
type oldInfraTask struct {
	Text     string            `json:"Text"`
	SubTasks []oldInfraSubTask `json:"SubTasks"`
	Index    int               `json:"Index"`
	Priority int               `json:"Priority"`
	Done     bool              `json:"Done"`
}

type oldInfraSubTask struct {
	Text  string `json:"Text"`
	Index int    `json:"Index"`
	Done  bool   `json:"Done"`
}

type oldInfraImporter struct{}

// Convert creates one task per record and attaches its sub-tasks, both in
// legacy index order. Sub-tasks get the default priority.
func (oldInfraImporter) Convert(data []byte, sink domain.TaskSink) (int, error) {
	records, err := decodeList[oldInfraTask](data)
	if err != nil {
		return 0, err
	}
	slices.SortStableFunc(records, func(a, b oldInfraTask) int { return cmp.Compare(a.Index, b.Index) })

	count := 0
	for _, rec := range records {
		parent := sink.Create(rec.Text, domain.Priority(rec.Priority))
		count++
		if rec.Done {
			if _, err := sink.AddTag(parent.Index, domain.TagDone); err != nil {
				return count, err
			}
		}

		subs := slices.Clone(rec.SubTasks)
		slices.SortStableFunc(subs, func(a, b oldInfraSubTask) int { return cmp.Compare(a.Index, b.Index) })
		for _, sub := range subs {
			child := sink.Create(sub.Text, domain.PriorityDefault)
			count++
			if sub.Done {
				if _, err := sink.AddTag(child.Index, domain.TagDone); err != nil {
					return count, err
				}
			}
			if _, err := sink.AttachTo(child.Index, parent.Index); err != nil {
				return count, err
			}
		}
	}
	return count, nil
}
