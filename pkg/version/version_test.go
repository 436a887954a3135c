package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	original := Version
	Version = v
	reset()
	t.Cleanup(func() {
		Version = original
		reset()
	})
}

func TestParsed(t *testing.T) {
	tests := []struct {
		version    string
		wantDev    bool
		wantPrerel bool
	}{
		{"v1.2.3", false, false},
		{"1.0.0", false, false},
		{"v0.4.0-beta.1", false, true},
		{"dev", true, false},
		{"", true, false},
		{"v1.0.0.0", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			withVersion(t, tt.version)
			assert.Equal(t, tt.wantDev, IsDevBuild())
			assert.Equal(t, tt.wantPrerel, IsPrerelease())
		})
	}
}

func TestIsNewerThan(t *testing.T) {
	withVersion(t, "v1.4.0")

	assert.True(t, IsNewerThan("v1.3.9"))
	assert.False(t, IsNewerThan("v1.4.0"))
	assert.False(t, IsNewerThan("v2.0.0"))
	assert.False(t, IsNewerThan("garbage"))
}

func TestIsNewerThan_DevBuild(t *testing.T) {
	withVersion(t, "dev")
	assert.False(t, IsNewerThan("v0.0.1"))
}

func TestInfo(t *testing.T) {
	withVersion(t, "v1.0.0")
	original := Commit
	Commit = "0123456789abcdef"
	defer func() { Commit = original }()

	info := Info()
	assert.Contains(t, info, "dishdeck v1.0.0")
	assert.Contains(t, info, "(0123456)")
	assert.Equal(t, "v1.0.0", Short())
}
