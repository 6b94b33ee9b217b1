// Combination operators for rxcore
// 组合操作符实现：顺序连接
package rxcore

// ============================================================================
// 组合操作符实现
// ============================================================================

// Concat 顺序连接操作符。
// 下游先用串行化观察者包装，第一个流到第二个流的切换不会不安全地交错。
// 第一个流完成时不转发完成信号，而是把第二个流订阅到同一个下游，
// 第二个流的订阅只在此刻才发生。第一个流出错则第二个流永远不会被订阅。
func (o Observable) Concat(other Observable) Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		downstream := NewSynchronizedObserver(subscriber)
		second := NewSingleAssignmentSubscription()
		subscriber.Subscription.Add(second)

		return o.Subscribe(NewObserverFull(
			downstream.OnNext,
			downstream.OnError,
			func() {
				second.Set(other.Subscribe(downstream))
			},
		))
	})
}
