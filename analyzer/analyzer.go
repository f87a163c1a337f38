// Package analyzer drives the extraction-and-attribution pipeline over a
// repository's tracked files.
package analyzer

import (
	"context"
	"math"
	"os"
	"path"
	"strings"
	"sync"
	"sync/atomic"

	"repolens/config"
	"repolens/extract"
	"repolens/filter"
	"repolens/gitrepo"
	"repolens/logger"
	"repolens/owners"
	"repolens/report"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"
)

// probeBytes bounds the content prefix handed to the filtering stages.
const probeBytes = 4096

// Source is the version-control collaborator the pipeline consumes.
// *gitrepo.Repo satisfies it; tests substitute fakes.
type Source interface {
	URL() string
	ListTrackedFiles(ctx context.Context) ([]gitrepo.FileCandidate, error)
	IgnoreRules() []string
	RankAuthors(ctx context.Context) []gitrepo.AuthorTotal
	AuthorshipSummary(ctx context.Context, path string) gitrepo.AuthorshipSummary
	ReadPrefix(path string, maxBytes int) ([]byte, error)
	ReadFull(path string) (string, error)
	CountLines(path string) int
}

// counters tracks per-stage rejections. Atomic so workers never contend on
// a lock for the common path.
type counters struct {
	hardFilter atomic.Int64
	gitignore  atomic.Int64
	generated  atomic.Int64
	extension  atomic.Int64
	notOwner   atomic.Int64
	accepted   atomic.Int64
}

func (c *counters) rejectStage(stage filter.Stage) {
	switch stage {
	case filter.StageHardFilter:
		c.hardFilter.Add(1)
	case filter.StageGitignore:
		c.gitignore.Add(1)
	case filter.StageGenerated:
		c.generated.Add(1)
	case filter.StageExtension:
		c.extension.Add(1)
	case filter.StageNotOwner:
		c.notOwner.Add(1)
	}
}

// Analyze runs filter, attribution, and extraction over every tracked file
// and assembles the final report. Per-file failures are absorbed; only
// candidate listing can fail the run.
func Analyze(ctx context.Context, src Source, cfg *config.Config) (*report.Report, error) {
	candidates, err := src.ListTrackedFiles(ctx)
	if err != nil {
		return nil, err
	}

	// Both the compiled ignore rules and the owner ranking must be complete
	// before any worker starts; every worker reads them.
	pipeline := filter.NewPipeline(src.IgnoreRules(), cfg.MaxFileSize)
	ranked := src.RankAuthors(ctx)
	ownerSet := owners.TopN(ranked, cfg.OwnerCount)
	policy := owners.DefaultPolicy()
	logger.Infof("Repository owners: %v", ownerSet.Identities())

	var ioLimiter *rate.Limiter
	if cfg.MaxIOPerSecond > 0 {
		ioLimiter = rate.NewLimiter(rate.Limit(cfg.MaxIOPerSecond), cfg.MaxIOPerSecond)
	}

	workers := cfg.Workers()
	logger.Debugf("Processing %d candidates with %d workers", len(candidates), workers)

	bar := progressbar.NewOptions(len(candidates),
		progressbar.OptionSetDescription("Analyzing files"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(progressVisible()),
		progressbar.OptionFullWidth(),
	)
	progressCh := make(chan int, workers*4)
	var progressWG sync.WaitGroup
	progressWG.Add(1)
	go func() {
		defer progressWG.Done()
		for delta := range progressCh {
			_ = bar.Add(delta)
		}
	}()

	var stats counters
	var mu sync.Mutex
	var records []report.FileRecord

	tasks := make(chan gitrepo.FileCandidate, workers)
	go func() {
		defer close(tasks)
		for _, cand := range candidates {
			select {
			case <-ctx.Done():
				return
			case tasks <- cand:
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cand := range tasks {
				select {
				case <-ctx.Done():
					return
				default:
				}
				if ioLimiter != nil {
					if err := ioLimiter.Wait(ctx); err != nil {
						return
					}
				}
				record, ok := processCandidate(ctx, src, pipeline, ownerSet, policy, &stats, cfg.MaxElementsPerKind, cand)
				if ok {
					mu.Lock()
					records = append(records, record)
					mu.Unlock()
				}
				progressCh <- 1
			}
		}()
	}

	wg.Wait()
	close(progressCh)
	progressWG.Wait()

	// An interrupted run has unprocessed candidates; its counters cannot
	// reconcile with the candidate total, so no report is produced.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if records == nil {
		records = []report.FileRecord{}
	}
	rep := &report.Report{
		RepoURL:    src.URL(),
		RepoOwners: ownerSet.Identities(),
		Files:      records,
		Stats: report.Stats{
			TotalFilesScanned:        len(candidates),
			ExcludedByHardFilter:     int(stats.hardFilter.Load()),
			ExcludedByGitignore:      int(stats.gitignore.Load()),
			ExcludedGenerated:        int(stats.generated.Load()),
			ExcludedNotOwnerModified: int(stats.notOwner.Load()),
			ExcludedWrongExtension:   int(stats.extension.Load()),
			UserCodeFiles:            int(stats.accepted.Load()),
		},
	}
	rep.SortFiles()
	return rep, nil
}

// processCandidate runs the stages for one file, strictly ordered from
// cheapest to most expensive. It returns the record and true only when the
// file survives every stage; otherwise exactly one counter is incremented.
func processCandidate(
	ctx context.Context,
	src Source,
	pipeline *filter.Pipeline,
	ownerSet owners.Set,
	policy owners.Policy,
	stats *counters,
	maxPerKind int,
	cand gitrepo.FileCandidate,
) (rec report.FileRecord, ok bool) {
	defer func() {
		// A worker must never take down its siblings; a panicking candidate
		// is converted into a counted exclusion.
		if r := recover(); r != nil {
			logger.Errorf("Recovered while processing %s: %v", cand.Path, r)
			stats.rejectStage(filter.StageHardFilter)
			rec, ok = report.FileRecord{}, false
		}
	}()

	probe, err := src.ReadPrefix(cand.Path, probeBytes)
	if err != nil {
		logger.Debugf("Unreadable file %s: %v", cand.Path, err)
		stats.rejectStage(filter.StageHardFilter)
		return report.FileRecord{}, false
	}

	verdict := pipeline.Classify(cand.Path, cand.Size, probe)
	if !verdict.Admitted {
		logger.Debugf("Excluded %s at %s: %s", cand.Path, verdict.Stage, verdict.Reason)
		stats.rejectStage(verdict.Stage)
		return report.FileRecord{}, false
	}

	summary := src.AuthorshipSummary(ctx, cand.Path)
	decision := owners.Evaluate(summary, ownerSet, policy)
	if !decision.Admitted {
		stats.rejectStage(filter.StageNotOwner)
		return report.FileRecord{}, false
	}

	ext := strings.ToLower(path.Ext(cand.Path))
	lang := extract.LanguageForExtension(ext)
	elements := extract.Elements{Functions: []string{}, Classes: []string{}, Variables: []string{}}
	content, err := src.ReadFull(cand.Path)
	if err != nil {
		// Decode failures are recovered locally: the file keeps its record
		// with empty elements and the batch continues.
		logger.Debugf("Extraction skipped for %s: %v", cand.Path, err)
	} else {
		elements = extract.Extract(content, lang, maxPerKind)
	}

	stats.accepted.Add(1)
	return report.FileRecord{
		Path:              cand.Path,
		Lines:             src.CountLines(cand.Path),
		OwnerContribution: math.Round(decision.Ratio*100) / 100,
		Extension:         ext,
		Language:          string(lang),
		Functions:         elements.Functions,
		Classes:           elements.Classes,
		Variables:         elements.Variables,
	}, true
}

func progressVisible() bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv("REPOLENS_DISABLE_PROGRESS")))
	return value != "1" && value != "true" && value != "yes" && value != "on"
}
