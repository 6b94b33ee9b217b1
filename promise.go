// Single-resolution promise for rxcore
// 单次决议的结果容器：首个写入者获胜，竞争不会破坏结果
package rxcore

import "sync/atomic"

// ============================================================================
// Promise 结果容器
// ============================================================================

// Promise 单次决议的结果容器。
// 三种决议（有值、空完成、失败）中至多一种是真正的终止结果，
// 决议通过CAS保证首个写入者获胜，之后的尝试都是空操作。
type Promise struct {
	resolved int32
	value    interface{}
	ok       bool
	err      error
	done     chan struct{}
}

// NewPromise 创建未决议的Promise
func NewPromise() *Promise {
	return &Promise{
		done: make(chan struct{}),
	}
}

// TryResolve 尝试以一个值决议，首个写入者返回true
func (p *Promise) TryResolve(value interface{}) bool {
	if !atomic.CompareAndSwapInt32(&p.resolved, 0, 1) {
		return false
	}
	p.value = value
	p.ok = true
	close(p.done)
	return true
}

// TryComplete 尝试以"无值"决议，用于没有发出任何值就完成的流
func (p *Promise) TryComplete() bool {
	if !atomic.CompareAndSwapInt32(&p.resolved, 0, 1) {
		return false
	}
	close(p.done)
	return true
}

// TryFail 尝试以错误决议，首个写入者返回true
func (p *Promise) TryFail(err error) bool {
	if !atomic.CompareAndSwapInt32(&p.resolved, 0, 1) {
		return false
	}
	p.err = err
	close(p.done)
	return true
}

// Done 返回决议完成后关闭的channel
func (p *Promise) Done() <-chan struct{} {
	return p.done
}

// Get 阻塞等待决议结果：值与ok，或错误
func (p *Promise) Get() (value interface{}, ok bool, err error) {
	<-p.done
	return p.value, p.ok, p.err
}

// ============================================================================
// Observable到Promise的桥接
// ============================================================================

// ToPromise 订阅Head并用流的终止结果决议Promise：
// 首个OnNext决议为有值；没有值的OnCompleted决议为空；OnError决议为失败。
func (o Observable) ToPromise() *Promise {
	promise := NewPromise()

	o.Head().Subscribe(NewObserverFull(
		func(value interface{}) {
			promise.TryResolve(value)
		},
		func(err error) {
			promise.TryFail(err)
		},
		func() {
			promise.TryComplete()
		},
	))

	return promise
}
