package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPollTimeout_不会越过截止时间(t *testing.T) {
	now := time.Now()
	max := 10 * time.Second

	// 剩余时间充足时按最长轮询时长等待
	assert.Equal(t, max, pollTimeout(now, now.Add(2*time.Minute), max))

	// 剩余不足一个轮询周期时只等到截止时间为止
	assert.Equal(t, 3*time.Second, pollTimeout(now, now.Add(3*time.Second), max))

	// 截止时间已过则立刻结束
	assert.Equal(t, time.Duration(0), pollTimeout(now, now, max))
	assert.Equal(t, time.Duration(0), pollTimeout(now, now.Add(-time.Second), max))
}
