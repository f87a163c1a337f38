package report

import (
	"fmt"
	"io"
	"strings"
)

// PrintSummary writes the human-readable wrap-up shown after the JSON file
// is saved: counters, totals, and the top files by owner contribution.
func (r *Report) PrintSummary(w io.Writer) {
	fmt.Fprintln(w, "Analysis Statistics:")
	fmt.Fprintf(w, "  Total files scanned: %d\n", r.Stats.TotalFilesScanned)
	fmt.Fprintf(w, "  Excluded (hard filter): %d\n", r.Stats.ExcludedByHardFilter)
	fmt.Fprintf(w, "  Excluded (gitignore): %d\n", r.Stats.ExcludedByGitignore)
	fmt.Fprintf(w, "  Excluded (generated): %d\n", r.Stats.ExcludedGenerated)
	fmt.Fprintf(w, "  Excluded (not owner): %d\n", r.Stats.ExcludedNotOwnerModified)
	fmt.Fprintf(w, "  Excluded (wrong extension): %d\n", r.Stats.ExcludedWrongExtension)
	fmt.Fprintf(w, "  User code files: %d\n", r.Stats.UserCodeFiles)

	var lines, functions, classes, variables int
	for _, f := range r.Files {
		lines += f.Lines
		functions += len(f.Functions)
		classes += len(f.Classes)
		variables += len(f.Variables)
	}
	fmt.Fprintf(w, "\n  Total lines of code: %d\n", lines)
	fmt.Fprintf(w, "  Total functions: %d\n", functions)
	fmt.Fprintf(w, "  Total classes: %d\n", classes)
	fmt.Fprintf(w, "  Total variables: %d\n", variables)

	if len(r.Files) == 0 {
		return
	}
	fmt.Fprintln(w, "\nTop Files by Owner Contribution:")
	top := r.Files
	if len(top) > 10 {
		top = top[:10]
	}
	for i, f := range top {
		fmt.Fprintf(w, "\n  %d. %s\n", i+1, f.Path)
		fmt.Fprintf(w, "     Language: %s\n", f.Language)
		fmt.Fprintf(w, "     Lines: %d\n", f.Lines)
		fmt.Fprintf(w, "     Owner contribution: %.0f%%\n", f.OwnerContribution*100)
		if len(f.Functions) > 0 {
			fmt.Fprintf(w, "     Functions: %s\n", strings.Join(head(f.Functions, 5), ", "))
		}
		if len(f.Classes) > 0 {
			fmt.Fprintf(w, "     Classes: %s\n", strings.Join(head(f.Classes, 3), ", "))
		}
	}
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
