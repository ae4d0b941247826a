package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SlpAus/minigame-portal-backend/pkg/lifecycle"
)

// Job 是一个可被定时触发的任务
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Scheduler 在每个整点触发一批任务。
// 它由进程的生命周期管理者持有，通过Start/Stop控制，
// 而不是把定时器句柄散落在包级变量里。
type Scheduler struct {
	jobs []Job

	// running 保证同一时刻只有一轮任务在执行。
	// 上一轮还没结束时，下一个整点的触发会被跳过而不是并发启动。
	running atomic.Bool

	stopOnce sync.Once
	stopChan chan struct{}
}

// New 创建一个调度器
func New(jobs ...Job) *Scheduler {
	return &Scheduler{
		jobs:     jobs,
		stopChan: make(chan struct{}),
	}
}

// Start 启动后台调度循环
func (s *Scheduler) Start(handle *lifecycle.Handle) {
	go s.loop(handle)
}

// Stop 停止所有后续触发。可以被重复调用，第二次起没有任何效果。
// 已经在执行中的一轮任务不会被打断，由其自身的ctx控制。
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		fmt.Println("调度器: 已停止，后续触发不再发生。")
	})
}

func (s *Scheduler) loop(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("调度器: 已启动，将在每个整点触发任务。")

	for {
		wait := untilNextHour(time.Now())
		if err := s.sleep(handle, wait); err != nil {
			fmt.Println("调度器: 循环退出。")
			return
		}
		s.tick(handle.Ctx())
	}
}

// sleep 等待指定时长，停机信号或Stop都会提前唤醒并返回错误
func (s *Scheduler) sleep(handle *lifecycle.Handle, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-handle.Done():
		return handle.Err()
	case <-s.stopChan:
		return context.Canceled
	case <-timer.C:
		return nil
	}
}

// tick 执行一轮任务。如果上一轮还在进行，本轮直接跳过。
func (s *Scheduler) tick(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		fmt.Println("调度器: 上一轮任务尚未结束，跳过本次触发。")
		return
	}
	defer s.running.Store(false)

	for _, job := range s.jobs {
		select {
		case <-s.stopChan:
			return
		default:
		}
		fmt.Printf("调度器: 开始执行任务 [%s]...\n", job.Name)
		if err := job.Run(ctx); err != nil {
			// 任务失败只记录，不影响同一轮内的其他任务
			fmt.Printf("调度器: 任务 [%s] 失败: %v\n", job.Name, err)
		} else {
			fmt.Printf("调度器: 任务 [%s] 完成。\n", job.Name)
		}
	}
}

// untilNextHour 返回距离下一个整点的时长
func untilNextHour(now time.Time) time.Duration {
	next := now.Truncate(time.Hour).Add(time.Hour)
	return next.Sub(now)
}
