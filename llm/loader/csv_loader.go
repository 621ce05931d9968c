// Package loader turns the CSV corpus of past answers into eino documents.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"professor/llm"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/schema"
)

// ErrNoFiles is returned when a glob source matches nothing.
var ErrNoFiles = errors.New("no corpus files matched")

// CSVLoader loads one document per CSV data row. The first row is the header.
type CSVLoader struct{}

var _ document.Loader = (*CSVLoader)(nil)

// NewCSVLoader creates a new CSV loader
func NewCSVLoader() *CSVLoader {
	return &CSVLoader{}
}

// Load reads every file named by src.URI. The URI is either a plain path or a
// doublestar pattern such as "data/**/*.csv".
func (l *CSVLoader) Load(ctx context.Context, src document.Source, _ ...document.LoaderOption) ([]*schema.Document, error) {
	paths, err := resolve(src.URI)
	if err != nil {
		return nil, err
	}

	var docs []*schema.Document
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileDocs, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, fileDocs...)
	}
	return docs, nil
}

// LoadFile opens path and parses it with Parse.
func (l *CSVLoader) LoadFile(path string) ([]*schema.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	docs, err := Parse(f, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse corpus %s: %w", path, err)
	}
	return docs, nil
}

// Parse reads CSV from r. Each data row becomes a document whose content is
// one "header: value" line per column, in header order.
func Parse(r io.Reader, source string) ([]*schema.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return []*schema.Document{}, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	docs := []*schema.Document{}
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		docs = append(docs, &schema.Document{
			ID:      llm.DocumentID(source, row),
			Content: RowContent(header, record),
			MetaData: map[string]any{
				llm.MetaSource: source,
				llm.MetaRow:    row,
			},
		})
	}
	return docs, nil
}

// RowContent serializes one record against its header.
func RowContent(header, record []string) string {
	lines := make([]string, len(header))
	for i, key := range header {
		var val string
		if i < len(record) {
			val = strings.TrimSpace(record[i])
		}
		lines[i] = key + ": " + val
	}
	return strings.Join(lines, "\n")
}

// resolve expands a glob URI into a sorted list of files.
func resolve(uri string) ([]string, error) {
	if uri == "" {
		return nil, fmt.Errorf("corpus path cannot be empty")
	}
	if !hasMeta(uri) {
		return []string{uri}, nil
	}

	matches, err := doublestar.FilepathGlob(uri, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid corpus pattern %q: %w", uri, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, uri)
	}
	sort.Strings(matches)
	return matches, nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
