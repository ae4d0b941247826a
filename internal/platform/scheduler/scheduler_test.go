package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SlpAus/minigame-portal-backend/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUntilNextHour(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 15, 30, 0, time.UTC)
	assert.Equal(t, 44*time.Minute+30*time.Second, untilNextHour(now))

	// 正好整点时，下一次触发在一小时后
	onTheHour := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Hour, untilNextHour(onTheHour))
}

func TestTickSkipsWhileRunning(t *testing.T) {
	var runs atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	s := New(Job{Name: "slow", Run: func(context.Context) error {
		runs.Add(1)
		close(started)
		<-release
		return nil
	}})

	go s.tick(context.Background())
	<-started

	// 上一轮还没结束，这一轮必须被跳过而不是并发执行
	s.tick(context.Background())
	assert.Equal(t, int32(1), runs.Load())

	close(release)
}

func TestTickRunsAllJobsDespiteFailure(t *testing.T) {
	var second atomic.Bool
	s := New(
		Job{Name: "bad", Run: func(context.Context) error {
			return assert.AnError
		}},
		Job{Name: "good", Run: func(context.Context) error {
			second.Store(true)
			return nil
		}},
	)

	s.tick(context.Background())
	assert.True(t, second.Load())
}

func TestStopIsIdempotentAndHaltsLoop(t *testing.T) {
	manager := lifecycle.NewManager()
	handle, err := manager.NewServiceHandle("scheduler-test")
	require.NoError(t, err)

	s := New()
	s.Start(handle)

	// 重复Stop不会panic，第二次起没有任何效果
	s.Stop()
	s.Stop()

	// 循环应该立刻退出并关闭句柄，而不是等到下一个整点
	remaining := manager.WaitWithTimeout(2 * time.Second)
	assert.Empty(t, remaining)
}

func TestTickAfterStopRunsNothing(t *testing.T) {
	var runs atomic.Int32
	s := New(Job{Name: "job", Run: func(context.Context) error {
		runs.Add(1)
		return nil
	}})

	s.Stop()
	s.tick(context.Background())
	assert.Zero(t, runs.Load())
}
