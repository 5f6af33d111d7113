// Package legacy imports task files written by earlier versions of the tool.
package legacy

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/taskwatch/internal/domain"
)

// Supported formats.
const (
	FormatOldInfra = "oldinfra"
	FormatVer1     = "ver1"
	DefaultFormat  = FormatOldInfra
)

// Importer converts one legacy format.
type Importer interface {
	// Convert creates the tasks held in data through sink and returns how many were created.
	Convert(data []byte, sink domain.TaskSink) (int, error)
}

// New returns the importer for format. An empty format selects DefaultFormat.
func New(format string) (Importer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatOldInfra:
		return oldInfraImporter{}, nil
	case FormatVer1:
		return ver1Importer{}, nil
	default:
		return nil, fmt.Errorf("%w: '%s' (use %s or %s)", domain.ErrUnknownFormat, format, FormatOldInfra, FormatVer1)
	}
}

// FileImporter implements domain.TaskImporter on top of the format importers.
type FileImporter struct{}

// NewFileImporter creates a FileImporter.
func NewFileImporter() *FileImporter {
	return &FileImporter{}
}

// ImportFile reads path and converts it with the importer for format.
func (f *FileImporter) ImportFile(format, path string, sink domain.TaskSink) (int, error) {
	if path == "" {
		return 0, fmt.Errorf("%w: file name cannot be empty", domain.ErrInvalidOperation)
	}
	imp, err := New(format)
	if err != nil {
		return 0, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read legacy file: %w", err)
	}
	return imp.Convert(data, sink)
}

// decodeList parses the JSON list every legacy format is stored as.
// A null document is rejected like a missing one.
func decodeList[T any](data []byte) ([]T, error) {
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse legacy file: %w", err)
	}
	if list == nil {
		return nil, fmt.Errorf("%w: legacy file holds no task list", domain.ErrInvalidOperation)
	}
	return list, nil
}

var _ domain.TaskImporter = (*FileImporter)(nil)
