// Package report defines the analysis output contract. The JSON field names
// are an external compatibility surface; downstream consumers parse them, so
// they must not change.
package report

import (
	"encoding/json"
	"os"
	"sort"
)

// FileRecord is the per-file unit of the report. Immutable once created.
type FileRecord struct {
	Path              string   `json:"path"`
	Lines             int      `json:"lines"`
	OwnerContribution float64  `json:"owner_contribution"`
	Extension         string   `json:"extension"`
	Language          string   `json:"language"`
	Functions         []string `json:"functions"`
	Classes           []string `json:"classes"`
	Variables         []string `json:"variables"`
}

// Stats counts every candidate's single outcome. The counters plus
// UserCodeFiles always sum to TotalFilesScanned.
type Stats struct {
	TotalFilesScanned        int `json:"total_files_scanned"`
	ExcludedByHardFilter     int `json:"excluded_by_hard_filter"`
	ExcludedByGitignore      int `json:"excluded_by_gitignore"`
	ExcludedGenerated        int `json:"excluded_generated"`
	ExcludedNotOwnerModified int `json:"excluded_not_owner_modified"`
	ExcludedWrongExtension   int `json:"excluded_wrong_extension"`
	UserCodeFiles            int `json:"user_code_files"`
}

// Report is the sole artifact of an analysis run.
type Report struct {
	RepoURL    string       `json:"repo_url"`
	RepoOwners []string     `json:"repo_owners"`
	Files      []FileRecord `json:"files"`
	Stats      Stats        `json:"stats"`
}

// SortFiles orders records by owner contribution descending, ties broken by
// path, so equal inputs always serialize identically regardless of worker
// scheduling.
func (r *Report) SortFiles() {
	sort.Slice(r.Files, func(i, j int) bool {
		if r.Files[i].OwnerContribution != r.Files[j].OwnerContribution {
			return r.Files[i].OwnerContribution > r.Files[j].OwnerContribution
		}
		return r.Files[i].Path < r.Files[j].Path
	})
}

// Save writes the report as indented JSON.
func (r *Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
