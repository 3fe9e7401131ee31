package hostinfo

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCollect(t *testing.T) {
	info, err := Collect()
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, info.PageSize > 0)
	assert.True(t, info.LogicalCores > 0)
	assert.True(t, info.TotalMemory > 0)
	// 至少有本测试进程在运行
	assert.True(t, info.ProcessCount > 0)
}
