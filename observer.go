// Observer adapters for rxcore
// 观察者适配器：回调适配、串行化包装和自动解除引用的语法守卫
package rxcore

import (
	"sync"
	"sync/atomic"
)

// ============================================================================
// 回调观察者
// ============================================================================

// callbackObserver 由普通回调函数组装的观察者，缺省回调为空操作
type callbackObserver struct {
	onNext     OnNext
	onError    OnError
	onComplete OnComplete
}

// NewObserver 从单个OnNext回调创建观察者，错误与完成默认忽略
func NewObserver(onNext OnNext) Observer {
	return &callbackObserver{onNext: onNext}
}

// NewObserverWithError 从OnNext和OnError回调创建观察者
func NewObserverWithError(onNext OnNext, onError OnError) Observer {
	return &callbackObserver{onNext: onNext, onError: onError}
}

// NewObserverFull 从三个回调创建完整观察者
func NewObserverFull(onNext OnNext, onError OnError, onComplete OnComplete) Observer {
	return &callbackObserver{onNext: onNext, onError: onError, onComplete: onComplete}
}

func (o *callbackObserver) OnNext(value interface{}) {
	if o.onNext != nil {
		o.onNext(value)
	}
}

func (o *callbackObserver) OnError(err error) {
	if o.onError != nil {
		o.onError(err)
	}
}

func (o *callbackObserver) OnCompleted() {
	if o.onComplete != nil {
		o.onComplete()
	}
}

// ============================================================================
// 串行化观察者
// ============================================================================

// synchronizedObserver 用互斥锁串行化三个入口，
// 把多个goroutine的并发调用压成单一全序，在并发生产者下保持事件语法
type synchronizedObserver struct {
	mu     sync.Mutex
	target Observer
}

// NewSynchronizedObserver 创建串行化观察者包装
func NewSynchronizedObserver(target Observer) Observer {
	return &synchronizedObserver{target: target}
}

func (o *synchronizedObserver) OnNext(value interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.target.OnNext(value)
}

func (o *synchronizedObserver) OnError(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.target.OnError(err)
}

func (o *synchronizedObserver) OnCompleted() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.target.OnCompleted()
}

// ============================================================================
// 自动解除引用观察者
// ============================================================================

// autoDetachObserver 订阅引擎的内部包装。
// CAS终止标志保证终止事件至多投递一次、终止之后丢弃所有事件；
// 投递终止事件后取消组合句柄，释放子资源并解除对已结束观察者的引用。
type autoDetachObserver struct {
	target       Observer
	subscription *CompositeSubscription
	terminated   int32
}

func newAutoDetachObserver(target Observer, subscription *CompositeSubscription) *autoDetachObserver {
	return &autoDetachObserver{target: target, subscription: subscription}
}

func (o *autoDetachObserver) OnNext(value interface{}) {
	if atomic.LoadInt32(&o.terminated) == 1 {
		return
	}
	o.target.OnNext(value)
}

func (o *autoDetachObserver) OnError(err error) {
	if atomic.CompareAndSwapInt32(&o.terminated, 0, 1) {
		o.target.OnError(err)
		o.subscription.Unsubscribe()
	}
}

func (o *autoDetachObserver) OnCompleted() {
	if atomic.CompareAndSwapInt32(&o.terminated, 0, 1) {
		o.target.OnCompleted()
		o.subscription.Unsubscribe()
	}
}
