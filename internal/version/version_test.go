package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, GetVersion(), "Version should not be empty")
}

func TestGetFullVersion(t *testing.T) {
	t.Parallel()

	full := GetFullVersion()
	assert.Contains(t, full, GetVersion())
	assert.Contains(t, full, "commit: "+GetCommit())
	assert.Contains(t, full, "built: "+GetDate())
}

func TestVersionFormat(t *testing.T) {
	t.Parallel()

	// Ensure version follows semantic versioning pattern
	v := GetVersion()
	if v != "dev" {
		assert.Regexp(t, `^v?\d+\.\d+\.\d+`, v, "Version should match semver pattern")
	}
}

func TestGetCommitAndDate(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, GetCommit(), "Commit should not be empty")
	assert.NotEmpty(t, GetDate(), "Date should not be empty")
}

func TestShortRevision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rev  string
		want string
	}{
		{"0123456789abcdef", "0123456"},
		{"abc", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, shortRevision(tt.rev))
	}
}
