package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
	ResultSkipped ResultLabel = "skipped"
)

// Stage names shared by the launcher and its recorders.
const (
	StageExtract  = "extract"
	StageOptimize = "optimize"
	StageRepack   = "repack"
	StageSign     = "sign"
)

// Recorder defines observability hooks for launcher stages.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome string) // outcome: success|unpacked|failed
	AddExtractedEntries(method string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncRunOutcome(string)                       {}
func (NoopRecorder) AddExtractedEntries(string, int)            {}
