package verify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/coordinate"
)

// Report is the ordered verification outcome for one project: the
// user-facing message lines plus a verbose per-configuration view for
// debug logging.
type Report struct {
	Lines   []string
	Verbose []string
}

// Empty reports whether there is anything to say.
func (r Report) Empty() bool {
	return len(r.Lines) == 0
}

// Message returns the user-facing report text.
func (r Report) Message() string {
	return strings.Join(r.Lines, "\n")
}

// VerboseMessage returns the debug-level report text.
func (r Report) VerboseMessage() string {
	return strings.Join(r.Verbose, "\n")
}

// BuildReport assembles the report from an aggregated failure set. It is a
// pure function of its inputs: output ordering is lexicographic by
// coordinate and by lock message, never dependent on the order resolution
// failures were collected in.
//
// unresolved maps each failing coordinate to the configurations it failed
// in; lockMessages holds the unique lock-staleness messages.
func BuildReport(project string, unresolved map[string][]string, lockMessages []string) Report {
	var report Report

	coordinates := make([]string, 0, len(unresolved))
	for c := range unresolved {
		coordinates = append(coordinates, c)
	}
	sort.Strings(coordinates)

	if len(coordinates) > 0 {
		report.Lines = append(report.Lines, "Failed to resolve the following dependencies:")
		for i, c := range coordinates {
			report.Lines = append(report.Lines,
				fmt.Sprintf("%d) Failed to resolve '%s' for project '%s'", i+1, c, project))
		}
	}

	if len(lockMessages) > 0 {
		messages := uniqueSorted(lockMessages)
		report.Lines = append(report.Lines, "Resolved dependencies were missing from the lock state:")
		for i, msg := range messages {
			report.Lines = append(report.Lines,
				fmt.Sprintf("%d) %s for project '%s'", i+1, msg, project))
		}
	}

	var missingVersion []string
	for _, c := range coordinates {
		if coordinate.MissingVersion(c) {
			missingVersion = append(missingVersion, c)
		}
	}
	if len(missingVersion) > 0 {
		report.Lines = append(report.Lines, fmt.Sprintf(
			"The following dependencies are missing a version: %s. If a platform (BOM) supplied these versions, it may no longer manage them.",
			strings.Join(missingVersion, ", ")))
	}

	for _, c := range coordinates {
		report.Verbose = append(report.Verbose, fmt.Sprintf("Failed to resolve '%s':", c))
		configurations := uniqueSorted(unresolved[c])
		for _, name := range configurations {
			report.Verbose = append(report.Verbose, fmt.Sprintf("  - %s", name))
		}
	}

	return report
}

// uniqueSorted returns the distinct values in lexicographic order.
func uniqueSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
