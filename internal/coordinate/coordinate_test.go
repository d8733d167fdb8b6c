package coordinate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected Coordinate
		wantErr  bool
	}{
		{
			name:     "group and artifact",
			raw:      "test.nebula:c",
			expected: Coordinate{Group: "test.nebula", Artifact: "c"},
		},
		{
			name:     "full coordinate",
			raw:      "test.nebula:d:1.0.0",
			expected: Coordinate{Group: "test.nebula", Artifact: "d", Version: "1.0.0"},
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "single segment",
			raw:     "test.nebula",
			wantErr: true,
		},
		{
			name:    "too many segments",
			raw:     "a:b:c:d",
			wantErr: true,
		},
		{
			name:    "empty segment",
			raw:     "test.nebula::1.0.0",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Parse(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, c)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, raw := range []string{"test.nebula:c", "test.nebula:d:1.0.0"} {
		c, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, c.String())
	}
}

func TestModule(t *testing.T) {
	c, err := Parse("test.nebula:d:1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "test.nebula:d", c.Module())
}

func TestMissingVersion(t *testing.T) {
	assert.True(t, MissingVersion("test.nebula:c"))
	assert.False(t, MissingVersion("test.nebula:d:1.0.0"))
}
