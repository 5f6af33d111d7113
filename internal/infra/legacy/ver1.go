package legacy

import (
	"cmp"
	"slices"

	"github.com/runoshun/taskwatch/internal/domain"
)

// ver1Task is a record of the first tree format.
type ver1Task struct {
	Name     string     `json:"Name"`
	Tags     []string   `json:"Tags"`
	SubTasks []ver1Task `json:"SubTasks"`
	Index    int        `json:"Index"`
	Priority int        `json:"Priority"`
}

type ver1Importer struct{}

// Convert recreates the tree. Tags are copied as-is, including done.
func (ver1Importer) Convert(data []byte, sink domain.TaskSink) (int, error) {
	records, err := decodeList[ver1Task](data)
	if err != nil {
		return 0, err
	}
	return convertVer1(records, 0, sink)
}

// convertVer1 creates records under parent; parent 0 means top level.
func convertVer1(records []ver1Task, parent int, sink domain.TaskSink) (int, error) {
	records = slices.Clone(records)
	slices.SortStableFunc(records, func(a, b ver1Task) int { return cmp.Compare(a.Index, b.Index) })

	count := 0
	for _, rec := range records {
		task := sink.Create(rec.Name, domain.Priority(rec.Priority))
		count++
		for _, tag := range rec.Tags {
			if _, err := sink.AddTag(task.Index, tag); err != nil {
				return count, err
			}
		}

		n, err := convertVer1(rec.SubTasks, task.Index, sink)
		count += n
		if err != nil {
			return count, err
		}

		if parent != 0 {
			if _, err := sink.AttachTo(task.Index, parent); err != nil {
				return count, err
			}
		}
	}
	return count, nil
}
