package constants

// RunStatus is the canonical state of an extraction run.
type RunStatus string

const (
	RunStatusInit       RunStatus = "INIT"
	RunStatusIngesting  RunStatus = "INGESTING"
	RunStatusExtracting RunStatus = "EXTRACTING"
	RunStatusMerging    RunStatus = "MERGING"
	RunStatusDone       RunStatus = "DONE"
	RunStatusFailed     RunStatus = "FAILED"
)
