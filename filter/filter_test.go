package filter

import (
	"testing"

	"repolens/logger"
)

func init() {
	logger.Init("error")
}

func TestHardFilterDenylist(t *testing.T) {
	if reason, rejected := hardFilter("vendor/lib/x.py", []byte("print('hi')\n")); !rejected {
		t.Fatal("vendor path should be rejected")
	} else if reason == "" {
		t.Fatal("expected a reason")
	}
	for _, p := range []string{
		"node_modules/pkg/index.js",
		"src/__pycache__/mod.pyc",
		".git/hooks/pre-commit",
		"app/build/main.o",
	} {
		if _, rejected := hardFilter(p, nil); !rejected {
			t.Fatalf("expected rejection for %s", p)
		}
	}
	if _, rejected := hardFilter("src/main.py", []byte("import os\n")); rejected {
		t.Fatal("plain source file should pass the hard filter")
	}
}

func TestHardFilterBinary(t *testing.T) {
	if _, rejected := hardFilter("assets/logo.png", nil); !rejected {
		t.Fatal("binary extension should be rejected")
	}
	elf := []byte{0x7f, 'E', 'L', 'F', 0x02, 0x01, 0x01, 0x00}
	if _, rejected := hardFilter("tools/helper", elf); !rejected {
		t.Fatal("binary probe should be rejected")
	}
	if _, rejected := hardFilter("tools/helper.py", nil); rejected {
		t.Fatal("empty probe should not count as binary")
	}
}

// Hard filter precedes the ignore stage: a vendored file is always
// hard_filter even when the ignore file would also match it.
func TestHardFilterPrecedesGitignore(t *testing.T) {
	p := NewPipeline([]string{"vendor/"}, 0)
	v := p.Classify("vendor/lib/x.py", 10, []byte("x = 1\n"))
	if v.Admitted || v.Stage != StageHardFilter {
		t.Fatalf("expected hard_filter rejection, got %+v", v)
	}
}

func TestIgnoreNegation(t *testing.T) {
	m := NewIgnoreMatcher([]string{"*.log", "!keep.log"})
	if m.Match("keep.log") {
		t.Fatal("keep.log should be un-ignored by negation")
	}
	if !m.Match("other.log") {
		t.Fatal("other.log should be ignored")
	}
	if !m.Match("logs/other.log") {
		t.Fatal("unanchored pattern should match in subdirectories")
	}
}

func TestIgnoreDirectoryPatterns(t *testing.T) {
	m := NewIgnoreMatcher([]string{"tmp/"})
	if !m.Match("tmp/scratch.py") {
		t.Fatal("file under ignored directory should match")
	}
	if !m.Match("src/tmp/scratch.py") {
		t.Fatal("unanchored directory pattern should match anywhere")
	}
	if m.Match("tmporary.py") {
		t.Fatal("directory pattern must not match a name prefix")
	}

	m = NewIgnoreMatcher([]string{"/docs/"})
	if !m.Match("docs/readme.md") {
		t.Fatal("anchored directory pattern should match at root")
	}
	if m.Match("src/docs/readme.md") {
		t.Fatal("anchored pattern should not match below root")
	}
}

func TestIgnoreAnchoring(t *testing.T) {
	m := NewIgnoreMatcher([]string{"docs/*.md"})
	if !m.Match("docs/guide.md") {
		t.Fatal("expected anchored glob match")
	}
	if m.Match("docs/sub/guide.md") {
		t.Fatal("single * must not cross directories")
	}

	m = NewIgnoreMatcher([]string{"**/testdata"})
	if !m.Match("pkg/testdata/input.txt") {
		t.Fatal("** should cross directories")
	}
	if !m.Match("testdata/input.txt") {
		t.Fatal("a leading **/ should also match at the repository root")
	}
	if !m.Match("testdata") {
		t.Fatal("a leading **/ should match the bare name at the root")
	}
	if m.Match("src/mytestdata/input.txt") {
		t.Fatal("**/ must only match whole path segments")
	}
}

func TestIgnoreMalformedRuleSkipped(t *testing.T) {
	m := NewIgnoreMatcher([]string{"[invalid", "*.log"})
	if m.Rules() != 2 {
		// "[invalid" has no closing bracket, so it is quoted literally and
		// still compiles; only genuinely uncompilable rules are dropped.
		t.Fatalf("expected 2 rules, got %d", m.Rules())
	}
	m = NewIgnoreMatcher([]string{"[z-a]", "*.log"})
	if m.Rules() != 1 {
		t.Fatalf("expected malformed class to be skipped, got %d rules", m.Rules())
	}
	if !m.Match("debug.log") {
		t.Fatal("surviving rules should still apply")
	}
}

func TestIgnoreCommentsAndBlanks(t *testing.T) {
	m := NewIgnoreMatcher([]string{"", "# comment", "   ", "*.tmp"})
	if m.Rules() != 1 {
		t.Fatalf("expected 1 rule, got %d", m.Rules())
	}
}

func TestGeneratedFilter(t *testing.T) {
	if reason, rejected := generatedFilter("api/service.pb.go", 100, nil, 0); !rejected {
		t.Fatal("protobuf output should be generated")
	} else if reason == "" {
		t.Fatal("expected a reason")
	}
	if _, rejected := generatedFilter("package-lock.json", 100, nil, 0); !rejected {
		t.Fatal("lock file should be generated")
	}
	if _, rejected := generatedFilter("db/migrations/0001_initial.py", 100, nil, 0); !rejected {
		t.Fatal("migration file should be generated")
	}
	if _, rejected := generatedFilter("src/0001_initial.py", 100, nil, 0); rejected {
		t.Fatal("migration naming outside a migrations dir should pass")
	}

	probe := []byte("// Code generated by protoc-gen-go. DO NOT EDIT.\npackage api\n")
	if _, rejected := generatedFilter("api/service.go", 100, probe, 0); !rejected {
		t.Fatal("banner marker should be detected")
	}
	if _, rejected := generatedFilter("api/service.go", 100, []byte("package api\n"), 0); rejected {
		t.Fatal("plain source should pass")
	}

	if _, rejected := generatedFilter("big.py", 600000, nil, 500000); !rejected {
		t.Fatal("oversized file should be rejected")
	}
	if _, rejected := generatedFilter("big.py", 600000, nil, 0); rejected {
		t.Fatal("zero cap disables the size check")
	}
}

func TestClassifyStageOrder(t *testing.T) {
	p := NewPipeline([]string{"*.gen.py"}, 500000)

	v := p.Classify("src/main.py", 120, []byte("import os\n"))
	if !v.Admitted {
		t.Fatalf("expected admission, got %+v", v)
	}

	v = p.Classify("src/app.gen.py", 120, []byte("# do not edit\n"))
	if v.Admitted || v.Stage != StageGitignore {
		t.Fatalf("ignore stage must precede generated, got %+v", v)
	}

	v = p.Classify("README.md", 120, []byte("# readme\n"))
	if v.Admitted || v.Stage != StageExtension {
		t.Fatalf("expected extension rejection, got %+v", v)
	}

	v = p.Classify("gen/schema.py", 120, []byte("# @generated by tool\n"))
	if v.Admitted || v.Stage != StageGenerated {
		t.Fatalf("expected generated rejection, got %+v", v)
	}
}
