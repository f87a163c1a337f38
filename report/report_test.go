package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sample() *Report {
	return &Report{
		RepoURL:    "https://example.com/repo",
		RepoOwners: []string{"alice", "bob"},
		Files: []FileRecord{
			{
				Path:              "src/util.py",
				Lines:             40,
				OwnerContribution: 0.5,
				Extension:         ".py",
				Language:          "python",
				Functions:         []string{"helper"},
				Classes:           []string{},
				Variables:         []string{"cache"},
			},
			{
				Path:              "src/main.py",
				Lines:             120,
				OwnerContribution: 0.9,
				Extension:         ".py",
				Language:          "python",
				Functions:         []string{"run", "setup"},
				Classes:           []string{"App"},
				Variables:         []string{},
			},
		},
		Stats: Stats{
			TotalFilesScanned: 5,
			ExcludedByHardFilter: 1,
			ExcludedByGitignore:  1,
			ExcludedGenerated:    1,
			UserCodeFiles:        2,
		},
	}
}

func TestSortFiles(t *testing.T) {
	r := sample()
	r.SortFiles()
	if r.Files[0].Path != "src/main.py" {
		t.Fatalf("expected highest contribution first, got %s", r.Files[0].Path)
	}

	r.Files[0].OwnerContribution = 0.5
	r.SortFiles()
	if r.Files[0].Path != "src/main.py" || r.Files[1].Path != "src/util.py" {
		t.Fatalf("ties must break by path: %s, %s", r.Files[0].Path, r.Files[1].Path)
	}
}

func TestSaveFieldNames(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "files.json")
	r := sample()
	if err := r.Save(out); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	// The JSON shape is a compatibility surface for downstream consumers.
	for _, field := range []string{
		`"repo_url"`, `"repo_owners"`, `"files"`, `"stats"`,
		`"path"`, `"lines"`, `"owner_contribution"`, `"extension"`,
		`"language"`, `"functions"`, `"classes"`, `"variables"`,
		`"total_files_scanned"`, `"excluded_by_hard_filter"`,
		`"excluded_by_gitignore"`, `"excluded_generated"`,
		`"excluded_not_owner_modified"`, `"excluded_wrong_extension"`,
		`"user_code_files"`,
	} {
		if !strings.Contains(string(data), field) {
			t.Fatalf("missing field %s in output", field)
		}
	}
	if strings.Contains(string(data), `"classes": null`) {
		t.Fatal("empty element lists must serialize as [], not null")
	}

	var parsed Report
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if parsed.RepoURL != r.RepoURL || len(parsed.Files) != 2 {
		t.Fatalf("unexpected round trip: %+v", parsed)
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	r := sample()
	r.SortFiles()
	r.PrintSummary(&buf)
	out := buf.String()
	for _, want := range []string{
		"Total files scanned: 5",
		"User code files: 2",
		"Total lines of code: 160",
		"Total functions: 3",
		"src/main.py",
		"Owner contribution: 90%",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := &Report{RepoOwners: []string{}, Files: []FileRecord{}}
	r.PrintSummary(&buf)
	if !strings.Contains(buf.String(), "Total files scanned: 0") {
		t.Fatal("expected zero counters")
	}
	if strings.Contains(buf.String(), "Top Files") {
		t.Fatal("no top-files section without files")
	}
}
