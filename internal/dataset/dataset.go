// Package dataset reads the question/answer corpus from disk.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"qabot/internal/domain"
)

// Format identifies the encoding of a dataset document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// record mirrors one dataset item. Pointers tell a missing field apart from
// an empty one.
type record struct {
	Question *string `json:"question" yaml:"question"`
	Answer   *string `json:"answer" yaml:"answer"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unsupported dataset extension %q", domain.ErrConfiguration, filepath.Ext(path))
	}
}

// Load reads the dataset at path. Every failure wraps domain.ErrConfiguration.
func Load(path string) ([]domain.Entry, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: dataset path is empty", domain.ErrConfiguration)
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("%w: open dataset: %w", domain.ErrConfiguration, err)
	}
	defer f.Close()

	entries, err := Parse(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Parse decodes a dataset document. Entries keep document order; Question is
// left as written and is normalized when the index is built.
func Parse(r io.Reader, format Format) ([]domain.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read dataset: %w", domain.ErrConfiguration, err)
	}

	var records []record
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &records)
	case FormatYAML:
		err = yaml.Unmarshal(data, &records)
	default:
		return nil, fmt.Errorf("%w: unknown dataset format %q", domain.ErrConfiguration, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s dataset: %w", domain.ErrConfiguration, format, err)
	}

	entries := make([]domain.Entry, 0, len(records))
	for i, rec := range records {
		if rec.Question == nil {
			return nil, fmt.Errorf("%w: record %d: missing field %q", domain.ErrConfiguration, i, "question")
		}
		if rec.Answer == nil {
			return nil, fmt.Errorf("%w: record %d: missing field %q", domain.ErrConfiguration, i, "answer")
		}
		entries = append(entries, domain.Entry{RawQuestion: *rec.Question, Answer: *rec.Answer})
	}
	return entries, nil
}
