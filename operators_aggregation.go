// Aggregation operators for rxcore
// 聚合操作符实现：基于原子单元的折叠累积
package rxcore

// ============================================================================
// 聚合操作符实现
// ============================================================================

// FoldLeft 从初始值开始折叠上游的所有元素，不转发中间结果。
// 累积状态放在原子单元里，通过原子读-改-写更新，OnNext并发到达也不会
// 丢失更新。上游完成时以OnNext发出最终累积值并随即完成；每次订阅恰好
// 产生一个值（除非上游永不完成）。上游错误原样穿过。
func (o Observable) FoldLeft(initial interface{}, reducer Reducer) Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		state := NewCell(initial)
		return o.Subscribe(NewObserverFull(
			func(value interface{}) {
				state.TransformAndGet(func(accumulator interface{}) interface{} {
					return reducer(accumulator, value)
				})
			},
			subscriber.OnError,
			func() {
				subscriber.OnNext(state.Get())
				subscriber.OnCompleted()
			},
		))
	})
}
