package llm

import (
	"fmt"

	"github.com/cloudwego/eino/schema"
)

// Metadata keys set on every corpus document
const (
	MetaSource = "source"
	MetaRow    = "row"
)

// SearchResult represents a search result with relevance score
type SearchResult struct {
	Document *schema.Document
	Score    float32
}

// DocumentID builds the stable identifier of a corpus row.
func DocumentID(source string, row int) string {
	return fmt.Sprintf("%s:%d", source, row)
}

// RowOf returns the row index stored in the document metadata, or -1.
func RowOf(doc *schema.Document) int {
	if doc == nil || doc.MetaData == nil {
		return -1
	}
	switch v := doc.MetaData[MetaRow].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return -1
}

// SourceOf returns the source file stored in the document metadata.
func SourceOf(doc *schema.Document) string {
	if doc == nil || doc.MetaData == nil {
		return ""
	}
	s, _ := doc.MetaData[MetaSource].(string)
	return s
}
