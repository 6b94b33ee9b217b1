// Observable subscription engine for rxcore
// Observable订阅引擎：冷流描述、订阅边界的异常安全与取消句柄分配
package rxcore

import (
	"fmt"
)

// ============================================================================
// Subscriber
// ============================================================================

// Subscriber 把观察者与其组合取消句柄配对，沿订阅链向下传递，
// 使操作符既能推送事件也能注册清理资源
type Subscriber struct {
	Observer
	Subscription *CompositeSubscription
}

// ============================================================================
// Observable 核心实现
// ============================================================================

// Observable 异步值序列的惰性描述，不可变，只持有一个订阅函数。
// 冷语义：每次Subscribe独立地重新执行订阅函数，订阅两次就运行两次。
type Observable struct {
	onSubscribe func(subscriber *Subscriber) Subscription
}

// Create 从订阅函数创建Observable。
// 订阅函数返回的句柄会被挂到订阅者的组合句柄上；需要注册更多资源时
// 可直接使用subscriber.Subscription。
func Create(onSubscribe func(subscriber *Subscriber) Subscription) Observable {
	return Observable{onSubscribe: onSubscribe}
}

// Subscribe 订阅观察者并返回取消句柄。
//
// 引擎分配组合句柄，将观察者包装为自动解除引用的语法守卫，然后在
// 异常安全边界内执行订阅函数：订阅函数同步panic时错误按OnError投递，
// 与流原生失败完全一致，订阅函数的失败永远不会逃逸。
func (o Observable) Subscribe(observer Observer) Subscription {
	composite := NewCompositeSubscription()
	subscriber := &Subscriber{
		Observer:     newAutoDetachObserver(observer, composite),
		Subscription: composite,
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				subscriber.OnError(panicToError(r))
			}
		}()

		if sub := o.onSubscribe(subscriber); sub != nil {
			composite.Add(sub)
		}
	}()

	return composite
}

// SubscribeWithCallbacks 使用回调函数订阅
func (o Observable) SubscribeWithCallbacks(onNext OnNext, onError OnError, onComplete OnComplete) Subscription {
	return o.Subscribe(NewObserverFull(onNext, onError, onComplete))
}

// panicToError 把订阅函数抛出的panic值转换为流错误
func panicToError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("rxcore: 订阅函数panic: %v", r)
}

// ============================================================================
// 调度与串行化
// ============================================================================

// SubscribeOn 把订阅函数的执行推迟到调度器上。
// 调度器句柄挂在订阅者的组合句柄下，任务运行前取消订阅就能阻止
// 订阅函数被执行。
func (o Observable) SubscribeOn(scheduler Scheduler) Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		return scheduler.Schedule(func() {
			if sub := o.onSubscribe(subscriber); sub != nil {
				subscriber.Subscription.Add(sub)
			}
		})
	})
}

// Synchronize 串行化下游观察者，
// 供多个goroutine并发推送事件的上游在边界处恢复事件语法
func (o Observable) Synchronize() Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		return o.Subscribe(NewSynchronizedObserver(subscriber))
	})
}
