package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, BuildTime, info.BuildTime)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.NotEmpty(t, info.CommitHash)
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "v0.3.0", CommitHash: "0123456789abcdef", BuildTime: "2024-05-01T10:00:00Z"}
	assert.Equal(t, "synbench v0.3.0 (commit 0123456, built 2024-05-01T10:00:00Z)", info.String())

	dev := Info{Version: "dev", CommitHash: "dev", BuildTime: "unknown"}
	assert.Equal(t, "synbench dev (commit dev, built unknown)", dev.String())
}

func TestShort(t *testing.T) {
	assert.Equal(t, "abcdef1", Info{CommitHash: "abcdef1234"}.Short())
	assert.Equal(t, "abc", Info{CommitHash: "abc"}.Short())
}
