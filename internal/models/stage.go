package models

// Stage names the pipeline step a request is currently in. Stages advance
// strictly in order; a failed stage aborts the run.
type Stage string

const (
	StageFetching            Stage = "fetching"
	StageExtracting          Stage = "extracting"
	StageIdentifyingLanguage Stage = "identifying_language"
	StageClassifyingAccent   Stage = "classifying_accent"
	StageDone                Stage = "done"
	StageFailed              Stage = "failed"
)
