package core

import (
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func TestRootConfigValid(t *testing.T) {
	assert.NoError(t, RootConfig.Check())
}

func TestCheckRejectsZeroField(t *testing.T) {
	config := *RootConfig
	config.Measure.Trials = 0
	err := config.Check()
	assert.Error(t, err)
	assert.NotEqual(t, -1, strings.Index(err.Error(), "Measure.Trials"))
}

func TestCheckRejectsBadStride(t *testing.T) {
	config := *RootConfig
	config.Size.MinSize = 1000 // 不是LineStride的倍数
	assert.Error(t, config.Check())

	config = *RootConfig
	config.Line.MinStride = 8192
	assert.Error(t, config.Check())
}

func TestString(t *testing.T) {
	s := RootConfig.String()
	assert.NotEqual(t, -1, strings.Index(s, "measure:"))
	assert.NotEqual(t, -1, strings.Index(s, "detector:"))
}
