// Scheduler implementations for rxcore
// 调度器实现，支持不同的执行策略
package rxcore

import (
	"context"
)

// ============================================================================
// goroutine调度器
// ============================================================================

// goroutineScheduler 为每个任务启动新的goroutine
type goroutineScheduler struct{}

// NewGoroutineScheduler 创建goroutine调度器
func NewGoroutineScheduler() Scheduler {
	return &goroutineScheduler{}
}

// Schedule 在新goroutine中执行任务，返回的句柄在任务运行前取消可阻止执行
func (s *goroutineScheduler) Schedule(action func()) Subscription {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		select {
		case <-ctx.Done():
			return
		default:
			action()
		}
	}()

	return NewSubscription(cancel)
}

// ============================================================================
// 立即调度器
// ============================================================================

// immediateScheduler 立即在当前goroutine中执行任务
type immediateScheduler struct{}

// NewImmediateScheduler 创建立即调度器
func NewImmediateScheduler() Scheduler {
	return &immediateScheduler{}
}

// Schedule 立即执行任务，返回的句柄取消为空操作
func (s *immediateScheduler) Schedule(action func()) Subscription {
	action()
	return NewSubscription(nil)
}

// ============================================================================
// 默认调度器
// ============================================================================

var (
	// DefaultScheduler 默认调度器
	DefaultScheduler Scheduler = NewGoroutineScheduler()

	// ImmediateScheduler 立即调度器实例
	ImmediateScheduler Scheduler = NewImmediateScheduler()
)
