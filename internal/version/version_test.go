package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoDefault(t *testing.T) {
	info := Info()
	assert.Contains(t, info, "agentcore")
	assert.Contains(t, info, Version)
	assert.Contains(t, info, runtime.GOOS)
}

func TestShort(t *testing.T) {
	assert.Equal(t, "abc", short("abc"))
	assert.Equal(t, "1234567", short("123456789"))
}
