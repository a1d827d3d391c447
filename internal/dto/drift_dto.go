package dto

// AnalyzeDocumentRequest describes one document to push through the pipeline.
type AnalyzeDocumentRequest struct {
	DocPath string `json:"doc_path" validate:"required"`
	DocId   string `json:"doc_id" validate:"required"`
	Version int    `json:"version" validate:"required,min=1"`
	DocType string `json:"doc_type"`
}

type AnalyzeBatchRequest struct {
	Documents []AnalyzeDocumentRequest `json:"documents" validate:"required,min=1,dive"`
}

type EvidenceDTO struct {
	OldVersion int `json:"old_version"`
	NewVersion int `json:"new_version"`
}

type DriftEventResponse struct {
	ChangeType  string      `json:"change_type"`
	ClauseId    string      `json:"clause_id"`
	Risk        string      `json:"risk"`
	Explanation string      `json:"explanation"`
	OldText     string      `json:"old_text,omitempty"`
	NewText     string      `json:"new_text"`
	Evidence    EvidenceDTO `json:"evidence"`
}

type AnalyzeDocumentResponse struct {
	DocId  string               `json:"doc_id"`
	Events []DriftEventResponse `json:"events"`
	Count  int                  `json:"count"`
}

type AnalyzeBatchResponse struct {
	Documents []BatchDocumentResult `json:"documents"`
}

type BatchDocumentResult struct {
	DocPath string               `json:"doc_path"`
	DocId   string               `json:"doc_id"`
	Error   string               `json:"error,omitempty"`
	Events  []DriftEventResponse `json:"events"`
}
