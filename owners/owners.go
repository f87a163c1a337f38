// Package owners decides whether a file is substantially owned by the
// repository's top contributors.
package owners

import "repolens/gitrepo"

// Policy tunes the admission thresholds. The second clause admits
// collaboratively-owned files where no single top contributor dominates.
type Policy struct {
	// MinRatio is the owner-line fraction above which a file is admitted
	// outright.
	MinRatio float64
	// MinAuthorsForShared is the distinct-author count at which any owner
	// participation (ratio > 0) is enough.
	MinAuthorsForShared int
}

// DefaultPolicy matches the thresholds the attribution pipeline ships with.
func DefaultPolicy() Policy {
	return Policy{MinRatio: 0.3, MinAuthorsForShared: 3}
}

// Decision is the attribution outcome for one file.
type Decision struct {
	Ratio           float64
	DistinctAuthors int
	Admitted        bool
}

// Set is an immutable owner-identity set, captured once at pipeline start
// and passed by value to every evaluation.
type Set struct {
	identities map[string]struct{}
	ordered    []string
}

// NewSet builds an owner set from ranked identities, preserving order.
func NewSet(identities []string) Set {
	s := Set{identities: make(map[string]struct{}, len(identities))}
	for _, id := range identities {
		if _, dup := s.identities[id]; dup {
			continue
		}
		s.identities[id] = struct{}{}
		s.ordered = append(s.ordered, id)
	}
	return s
}

// TopN builds the owner set from a repository-wide author ranking. The
// ranking is computed once per repository; this merely takes its head.
func TopN(ranked []gitrepo.AuthorTotal, n int) Set {
	if n <= 0 {
		n = 3
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	identities := make([]string, 0, n)
	for _, author := range ranked[:n] {
		identities = append(identities, author.Identity)
	}
	return NewSet(identities)
}

// Contains reports owner membership.
func (s Set) Contains(identity string) bool {
	_, ok := s.identities[identity]
	return ok
}

// Identities returns the owners in ranking order.
func (s Set) Identities() []string {
	if s.ordered == nil {
		return []string{}
	}
	return s.ordered
}

// Len returns the owner count.
func (s Set) Len() int {
	return len(s.ordered)
}

// Evaluate computes the ownership ratio of a file and applies the admission
// policy. A file with zero attributed lines is rejected with ratio 0.
func Evaluate(summary gitrepo.AuthorshipSummary, set Set, policy Policy) Decision {
	total := summary.Total()
	d := Decision{DistinctAuthors: summary.DistinctAuthors()}
	if total == 0 {
		return d
	}
	var ownerLines int
	for identity, lines := range summary.Lines {
		if set.Contains(identity) {
			ownerLines += lines
		}
	}
	d.Ratio = float64(ownerLines) / float64(total)
	d.Admitted = d.Ratio > policy.MinRatio ||
		(d.DistinctAuthors >= policy.MinAuthorsForShared && d.Ratio > 0)
	return d
}
