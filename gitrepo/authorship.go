package gitrepo

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"
)

// AuthorshipSummary maps author identities to the number of lines attributed
// to them in a single file. Immutable once built.
type AuthorshipSummary struct {
	Lines map[string]int
}

// Total returns the total attributed line count of the file.
func (s AuthorshipSummary) Total() int {
	var total int
	for _, n := range s.Lines {
		total += n
	}
	return total
}

// DistinctAuthors returns the number of distinct contributing authors.
func (s AuthorshipSummary) DistinctAuthors() int {
	return len(s.Lines)
}

// AuthorTotal is one entry of the repository-wide author ranking.
type AuthorTotal struct {
	Identity   string
	TotalLines int
}

type authorshipIndex struct {
	byPath map[string]map[string]int
	totals map[string]int
}

// loadAuthorship walks the full commit history once, attributing added lines
// per file to the commit author. One git invocation serves both the per-file
// summaries and the global author ranking; concurrent first calls share it.
func (r *Repo) loadAuthorship(ctx context.Context) *authorshipIndex {
	r.authorOnce.Do(func() {
		ix := &authorshipIndex{
			byPath: make(map[string]map[string]int),
			totals: make(map[string]int),
		}
		out := r.runGit(ctx, 120*time.Second,
			"log", "--all", "--no-merges", "--numstat", "--pretty=format:AUTHOR:%an")

		var current string
		for _, line := range strings.Split(out, "\n") {
			if strings.HasPrefix(line, "AUTHOR:") {
				current = strings.TrimSpace(line[len("AUTHOR:"):])
				continue
			}
			line = strings.TrimSpace(line)
			if line == "" || current == "" {
				continue
			}
			fields := strings.SplitN(line, "\t", 3)
			if len(fields) != 3 {
				continue
			}
			added, err := strconv.Atoi(fields[0])
			if err != nil || added <= 0 {
				// "-" marks binary changes; nothing to attribute.
				continue
			}
			path := parseNumstatPath(fields[2])
			if path == "" {
				continue
			}
			perFile := ix.byPath[path]
			if perFile == nil {
				perFile = make(map[string]int)
				ix.byPath[path] = perFile
			}
			perFile[current] += added
			ix.totals[current] += added
		}
		r.authorIx = ix
	})
	return r.authorIx
}

// parseNumstatPath normalizes rename notation: "dir/{old => new}/f.go" and
// "old.go => new.go" both resolve to the new name.
func parseNumstatPath(raw string) string {
	if open := strings.Index(raw, "{"); open >= 0 {
		if close := strings.Index(raw[open:], "}"); close >= 0 {
			inner := raw[open+1 : open+close]
			if arrow := strings.Index(inner, " => "); arrow >= 0 {
				inner = inner[arrow+len(" => "):]
			}
			raw = raw[:open] + inner + raw[open+close+1:]
			raw = strings.ReplaceAll(raw, "//", "/")
		}
	} else if arrow := strings.Index(raw, " => "); arrow >= 0 {
		raw = raw[arrow+len(" => "):]
	}
	return strings.TrimSpace(raw)
}

// AuthorshipSummary returns per-author attributed lines for one file. Files
// with no recorded history yield an empty summary, not an error.
func (r *Repo) AuthorshipSummary(ctx context.Context, path string) AuthorshipSummary {
	ix := r.loadAuthorship(ctx)
	lines := ix.byPath[path]
	if lines == nil {
		return AuthorshipSummary{Lines: map[string]int{}}
	}
	return AuthorshipSummary{Lines: lines}
}

// RankAuthors returns all authors ordered by total attributed lines,
// descending, ties broken by identity for determinism.
func (r *Repo) RankAuthors(ctx context.Context) []AuthorTotal {
	ix := r.loadAuthorship(ctx)
	ranked := make([]AuthorTotal, 0, len(ix.totals))
	for identity, total := range ix.totals {
		ranked = append(ranked, AuthorTotal{Identity: identity, TotalLines: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalLines != ranked[j].TotalLines {
			return ranked[i].TotalLines > ranked[j].TotalLines
		}
		return ranked[i].Identity < ranked[j].Identity
	})
	return ranked
}
