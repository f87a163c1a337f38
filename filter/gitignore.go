package filter

import (
	"regexp"
	"strings"

	"repolens/logger"
)

// ignoreRule is one compiled .gitignore pattern. Directory-only rules match
// every path beneath the directory via the compiled expression itself, so no
// pattern is ever re-evaluated against the directory per file.
type ignoreRule struct {
	raw    string
	re     *regexp.Regexp
	negate bool
}

// IgnoreMatcher holds the repository's ignore rules, compiled once and
// shared by all workers. Matching follows git semantics: rules are applied
// in order and the last matching rule decides, with "!" rules un-ignoring.
type IgnoreMatcher struct {
	rules []ignoreRule
}

// NewIgnoreMatcher compiles raw pattern lines. Comments and blanks are
// skipped; a malformed pattern is skipped with a warning and compilation of
// the remaining rules continues.
func NewIgnoreMatcher(patterns []string) *IgnoreMatcher {
	m := &IgnoreMatcher{}
	for _, raw := range patterns {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		negate := false
		if strings.HasPrefix(line, "!") {
			negate = true
			line = line[1:]
		}
		re, err := compileIgnorePattern(line)
		if err != nil {
			logger.Warnf("Skipping malformed ignore pattern %q: %v", raw, err)
			continue
		}
		m.rules = append(m.rules, ignoreRule{raw: raw, re: re, negate: negate})
	}
	return m
}

// compileIgnorePattern translates one gitignore glob into a regular
// expression over slash-separated relative paths:
//   - trailing "/" restricts the pattern to directories (and thus matches
//     only paths beneath them),
//   - a "/" anywhere else anchors the pattern to the repository root,
//   - "**" crosses directory boundaries, "*" and "?" do not.
func compileIgnorePattern(pattern string) (*regexp.Regexp, error) {
	dirOnly := strings.HasSuffix(pattern, "/")
	pattern = strings.TrimSuffix(pattern, "/")
	anchored := strings.Contains(pattern, "/")
	pattern = strings.TrimPrefix(pattern, "/")

	var b strings.Builder
	switch {
	case strings.HasPrefix(pattern, "**/"):
		// "**/" matches in every directory, the repository root included.
		b.WriteString("^(.*/)?")
		pattern = pattern[len("**/"):]
	case anchored:
		b.WriteString("^")
	default:
		b.WriteString("(^|/)")
	}
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				b.WriteString(".*")
				i++
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		case '[':
			// Pass character classes through; a malformed class fails
			// compilation and the rule is skipped by the caller.
			end := strings.IndexByte(pattern[i:], ']')
			if end < 0 {
				b.WriteString(regexp.QuoteMeta(string(c)))
			} else {
				b.WriteString(pattern[i : i+end+1])
				i += end
			}
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	if dirOnly {
		b.WriteString("/")
	} else {
		b.WriteString("(/|$)")
	}
	return regexp.Compile(b.String())
}

// Match reports whether the path is ignored.
func (m *IgnoreMatcher) Match(path string) bool {
	if m == nil || len(m.rules) == 0 {
		return false
	}
	ignored := false
	for _, rule := range m.rules {
		if rule.re.MatchString(path) {
			ignored = !rule.negate
		}
	}
	return ignored
}

// Rules returns the number of successfully compiled rules.
func (m *IgnoreMatcher) Rules() int {
	return len(m.rules)
}
