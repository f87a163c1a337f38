package filter

import (
	"path"
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Banner phrases that mark tool-produced files. Matched case-insensitively
// over the bounded content probe in a single multi-pattern pass.
var generatedMarkers = []string{
	"do not edit",
	"do not modify",
	"@generated",
	"autogenerated",
	"auto-generated",
	"automatically generated",
	"generated automatically",
	"code generated by",
	"this file was generated",
	"this file is generated",
	"generated file",
}

var markerMatcher = ahocorasick.NewStringMatcher(generatedMarkers)

var lockFileNames = map[string]struct{}{
	"package-lock.json": {},
	"yarn.lock":         {},
	"pnpm-lock.yaml":    {},
	"go.sum":            {},
	"cargo.lock":        {},
	"poetry.lock":       {},
	"pipfile.lock":      {},
	"composer.lock":     {},
	"gemfile.lock":      {},
	"mix.lock":          {},
	"flake.lock":        {},
	"gradle.lockfile":   {},
}

// Compiled-output naming conventions that rarely carry a banner.
var generatedNameSuffixes = []string{
	".pb.go",
	"_pb2.py",
	"_pb2_grpc.py",
	".generated.go",
	".generated.cs",
	".g.dart",
	".min.js",
	".min.css",
}

var migrationName = regexp.MustCompile(`^\d{3,}_.+\.(py|sql|rb)$`)

// generatedFilter rejects tool-produced artifacts: banner markers in the
// probe, lock files, schema-compiler outputs, migration files, and anything
// above the size cap.
func generatedFilter(candidate string, size int64, probe []byte, maxFileSize int64) (string, bool) {
	base := strings.ToLower(path.Base(candidate))
	if _, lock := lockFileNames[base]; lock {
		return "lock file", true
	}
	for _, suffix := range generatedNameSuffixes {
		if strings.HasSuffix(base, suffix) {
			return "generated naming convention", true
		}
	}
	if migrationName.MatchString(base) && hasMigrationSegment(candidate) {
		return "migration file", true
	}
	if maxFileSize > 0 && size > maxFileSize {
		return "exceeds size cap", true
	}
	if len(probe) > 0 {
		if hits := markerMatcher.Match([]byte(strings.ToLower(string(probe)))); len(hits) > 0 {
			return "generated-code marker", true
		}
	}
	return "", false
}

func hasMigrationSegment(candidate string) bool {
	for _, segment := range strings.Split(path.Dir(candidate), "/") {
		if segment == "migrations" || segment == "migrate" || segment == "db" {
			return true
		}
	}
	return false
}
