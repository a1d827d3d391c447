package entity

type ChangeType string

const (
	ChangeTypeNew      ChangeType = "new"
	ChangeTypeModified ChangeType = "modified"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"

	// Sentinels. Unknown means the judgment capability was never available,
	// Error means a call to it failed. Both are terminal, no retry.
	RiskUnknown RiskLevel = "Unknown"
	RiskError   RiskLevel = "Error"
)

// Evidence ties an event back to the versions it was derived from.
// OldVersion is zero for events without a prior counterpart.
type Evidence struct {
	OldVersion int `json:"old_version"`
	NewVersion int `json:"new_version"`
}

// DriftEvent is produced by the drift detector for a single clause and then
// enriched in place by the risk and explanation stages. Events are
// pipeline-transient: clauses and vectors are persisted, events are not.
type DriftEvent struct {
	Type        ChangeType
	Old         *Clause // read-only snapshot of the matched prior clause, modified only
	New         Clause
	Risk        RiskLevel
	Explanation string
	Evidence    Evidence
}
