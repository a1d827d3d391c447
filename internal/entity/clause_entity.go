package entity

import "fmt"

// Clause is the atomic unit of comparison: one block of contractual or
// policy text, pinned to a document family and version.
type Clause struct {
	ClauseId    string
	Text        string
	SectionType string
	DocId       string
	Version     int
	DocType     string
}

// BuildClauseId derives the positional clause identifier for a document
// version. Ids are reproducible for a given extraction run but not
// content-addressed: re-ingesting the same input yields the same ids while
// the store still creates fresh surrogate records.
func BuildClauseId(docId string, version, index int) string {
	return fmt.Sprintf("%s_%d_%d", docId, version, index)
}
