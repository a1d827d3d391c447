package constant

const (
	// Watermill topic carrying fully enriched drift events.
	DriftEventTopic = "DRIFT_EVENT_DETECTED"

	// Fallback explanation when the judgment capability never came up.
	ExplanationUnavailable = "LLM unavailable"

	// Default section tag for paragraph blocks produced by the plaintext parser.
	SectionTypeNarrative = "NarrativeText"
)
