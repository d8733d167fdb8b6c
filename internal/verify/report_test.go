package verify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReportUnresolved(t *testing.T) {
	report := BuildReport("p", map[string][]string{
		"test.nebula:e": {"compileClasspath", "testCompileClasspath"},
		"test.nebula:c": {"compileClasspath", "testCompileClasspath"},
	}, nil)

	assert.Equal(t, []string{
		"Failed to resolve the following dependencies:",
		"1) Failed to resolve 'test.nebula:c' for project 'p'",
		"2) Failed to resolve 'test.nebula:e' for project 'p'",
		"The following dependencies are missing a version: test.nebula:c, test.nebula:e. If a platform (BOM) supplied these versions, it may no longer manage them.",
	}, report.Lines)
}

func TestBuildReportLockMessages(t *testing.T) {
	report := BuildReport("p", nil, []string{
		"Resolved 'test.nebula:d:1.0.0' which is not part of the dependency lock state",
	})

	assert.Equal(t, []string{
		"Resolved dependencies were missing from the lock state:",
		"1) Resolved 'test.nebula:d:1.0.0' which is not part of the dependency lock state for project 'p'",
	}, report.Lines)
}

func TestBuildReportNumberingRestartsPerCategory(t *testing.T) {
	report := BuildReport("p",
		map[string][]string{
			"test.nebula:a:1.0.0": {"compileClasspath"},
			"test.nebula:b:1.0.0": {"compileClasspath"},
		},
		[]string{"Resolved 'test.nebula:d:1.0.0' which is not part of the dependency lock state"},
	)

	assert.Equal(t, []string{
		"Failed to resolve the following dependencies:",
		"1) Failed to resolve 'test.nebula:a:1.0.0' for project 'p'",
		"2) Failed to resolve 'test.nebula:b:1.0.0' for project 'p'",
		"Resolved dependencies were missing from the lock state:",
		"1) Resolved 'test.nebula:d:1.0.0' which is not part of the dependency lock state for project 'p'",
	}, report.Lines)
}

func TestBuildReportNoAdvisoryForVersionedCoordinates(t *testing.T) {
	report := BuildReport("p", map[string][]string{
		"test.nebula:a:1.0.0": {"compileClasspath"},
	}, nil)

	for _, line := range report.Lines {
		assert.NotContains(t, line, "missing a version")
	}
}

func TestBuildReportDeterministic(t *testing.T) {
	first := BuildReport("p",
		map[string][]string{
			"test.nebula:c": {"testCompileClasspath", "compileClasspath"},
			"test.nebula:e": {"compileClasspath"},
		},
		[]string{"msg b", "msg a", "msg b"},
	)
	second := BuildReport("p",
		map[string][]string{
			"test.nebula:e": {"compileClasspath"},
			"test.nebula:c": {"compileClasspath", "testCompileClasspath"},
		},
		[]string{"msg a", "msg b"},
	)

	require.Empty(t, cmp.Diff(first, second))
	assert.Equal(t, first.Message(), second.Message())
	assert.Equal(t, first.VerboseMessage(), second.VerboseMessage())
}

func TestBuildReportVerboseView(t *testing.T) {
	report := BuildReport("p", map[string][]string{
		"test.nebula:c": {"testCompileClasspath", "compileClasspath"},
	}, nil)

	assert.Equal(t, []string{
		"Failed to resolve 'test.nebula:c':",
		"  - compileClasspath",
		"  - testCompileClasspath",
	}, report.Verbose)
}

func TestBuildReportEmpty(t *testing.T) {
	report := BuildReport("p", nil, nil)
	assert.True(t, report.Empty())
	assert.Empty(t, report.Message())
}
