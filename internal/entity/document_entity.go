package entity

// Block is one raw text segment produced by the document parser.
type Block struct {
	Text string
	Type string
}

type DocumentMetadata struct {
	DocId   string
	Version int
	DocType string
}

// DocumentInput is one unit of work for the pipeline: a document path plus
// the identity metadata the caller already knows about it.
type DocumentInput struct {
	DocPath  string
	Metadata DocumentMetadata
}
