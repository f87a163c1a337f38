package filter

import "repolens/extract"

// Stage names one pipeline stage. Exactly one stage rejects a candidate;
// the evaluation order below is fixed so every rejection has a single
// unambiguous cause and each stage maps to one statistics counter.
type Stage string

const (
	StageHardFilter Stage = "hard_filter"
	StageGitignore  Stage = "gitignore"
	StageGenerated  Stage = "generated"
	StageExtension  Stage = "extension"
	StageNotOwner   Stage = "not_owner"
)

// Verdict is the tagged admit/reject outcome for one candidate.
type Verdict struct {
	Admitted bool
	Stage    Stage
	Reason   string
}

func admitted() Verdict {
	return Verdict{Admitted: true}
}

// Rejected builds a rejection verdict for the given stage.
func Rejected(stage Stage, reason string) Verdict {
	return Verdict{Stage: stage, Reason: reason}
}

// Pipeline applies the exclusion stages to candidate paths. Ignore rules are
// compiled once at construction and reused for every candidate.
type Pipeline struct {
	ignore      *IgnoreMatcher
	maxFileSize int64
}

// NewPipeline compiles the repository's raw ignore rules and returns a
// pipeline ready for concurrent use. Files larger than maxFileSize are
// rejected as generated; zero disables the size cap.
func NewPipeline(ignoreRules []string, maxFileSize int64) *Pipeline {
	return &Pipeline{
		ignore:      NewIgnoreMatcher(ignoreRules),
		maxFileSize: maxFileSize,
	}
}

// Classify runs the filtering stages in priority order over one candidate.
// The probe is a bounded content prefix, never the whole file.
func (p *Pipeline) Classify(path string, size int64, probe []byte) Verdict {
	if reason, rejected := hardFilter(path, probe); rejected {
		return Rejected(StageHardFilter, reason)
	}
	if p.ignore.Match(path) {
		return Rejected(StageGitignore, "matches ignore pattern")
	}
	if reason, rejected := generatedFilter(path, size, probe, p.maxFileSize); rejected {
		return Rejected(StageGenerated, reason)
	}
	if !extract.Supported(extensionOf(path)) {
		return Rejected(StageExtension, "unsupported extension")
	}
	return admitted()
}
