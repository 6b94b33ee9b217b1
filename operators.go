// Core operators for rxcore
// 核心操作符实现：映射、过滤、并发合并与计数/谓词类裁剪
package rxcore

// ============================================================================
// 转换操作符
// ============================================================================

// Map 转换操作符，对每个值应用转换函数。
// 转换函数返回error时按流失败投递；转换函数panic不在此处捕获，
// 只有顶层订阅边界是异常安全的。
func (o Observable) Map(transformer Transformer) Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		return o.Subscribe(NewObserverFull(
			func(value interface{}) {
				result, err := transformer(value)
				if err != nil {
					subscriber.OnError(err)
					return
				}
				subscriber.OnNext(result)
			},
			subscriber.OnError,
			subscriber.OnCompleted,
		))
	})
}

// Filter 过滤操作符，谓词不成立的值被无信号地丢弃
func (o Observable) Filter(predicate Predicate) Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		return o.Subscribe(NewObserverFull(
			func(value interface{}) {
				if predicate(value) {
					subscriber.OnNext(value)
				}
			},
			subscriber.OnError,
			subscriber.OnCompleted,
		))
	})
}

// FlatMap 并发合并操作符，把每个上游值映射为内部Observable并立即订阅，
// 各内部流的发射直接转发给共享的下游（不同内部流之间按到达顺序交错，
// 单个内部流自身的顺序保持不变）。
//
// 完成信号由引用计数句柄驱动：每个内部流持有一个引用，上游完成时取消
// 引用计数句柄本身，计数归零时下游OnCompleted恰好触发一次，与内部流
// 先于还是晚于上游结束无关。任何一个分支失败会取消所有兄弟分支。
//
// 引用计数句柄只由上游完成来取消，不挂到下游的组合句柄上：外部取消
// 订阅应当让合并安静地停下，而不是伪造一个完成信号。
func (o Observable) FlatMap(transformer func(value interface{}) Observable) Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		refCount := NewRefCountSubscription(subscriber.OnCompleted)

		return o.Subscribe(NewObserverFull(
			func(value interface{}) {
				ref := refCount.Acquire()
				inner := NewSingleAssignmentSubscription()
				subscriber.Subscription.Add(inner)

				inner.Set(transformer(value).Subscribe(NewObserverFull(
					subscriber.OnNext,
					func(err error) {
						subscriber.OnError(err)
						subscriber.Subscription.Unsubscribe()
					},
					func() {
						subscriber.Subscription.Remove(inner)
						ref.Unsubscribe()
						inner.Unsubscribe()
					},
				)))
			},
			func(err error) {
				subscriber.OnError(err)
				subscriber.Subscription.Unsubscribe()
			},
			func() {
				refCount.Unsubscribe()
			},
		))
	})
}

// ============================================================================
// 计数操作符
// ============================================================================

// Take 取前count个元素后自行完成，count必须为正数。
// 计数器是共享原子单元：OnNext可能被并发调用（比如来自合并或调度后的
// 上游），每个投递的元素必须恰好计数一次。CAS失败时用最新读到的计数
// 重试整个判定，显式循环，竞争下不增长调用栈。
func (o Observable) Take(count int) Observable {
	if count <= 0 {
		panic("rxcore: Take的count必须为正数")
	}

	return Create(func(subscriber *Subscriber) Subscription {
		taken := NewInt64Cell(0)
		return o.Subscribe(NewObserverFull(
			func(value interface{}) {
				for {
					current := taken.Get()
					if current >= int64(count) {
						// 流已满足，多余的值静默丢弃
						return
					}
					if !taken.CompareAndSet(current, current+1) {
						continue
					}
					subscriber.OnNext(value)
					if current+1 == int64(count) {
						subscriber.OnCompleted()
					}
					return
				}
			},
			subscriber.OnError,
			subscriber.OnCompleted,
		))
	})
}

// Drop 吞掉前count个元素，之后的元素（包括越过阈值竞争到达的）全部转发，
// count必须为正数。终止事件原样穿过。
func (o Observable) Drop(count int) Observable {
	if count <= 0 {
		panic("rxcore: Drop的count必须为正数")
	}

	return Create(func(subscriber *Subscriber) Subscription {
		dropped := NewInt64Cell(0)
		return o.Subscribe(NewObserverFull(
			func(value interface{}) {
				for {
					current := dropped.Get()
					if current >= int64(count) {
						subscriber.OnNext(value)
						return
					}
					if dropped.CompareAndSet(current, current+1) {
						return
					}
				}
			},
			subscriber.OnError,
			subscriber.OnCompleted,
		))
	})
}

// ============================================================================
// 谓词操作符
// ============================================================================

// TakeWhile 谓词保持成立期间转发元素，谓词首次失败时发出完成并停止。
// 标志位的转移是"第一个决定性调用获胜"：CAS输掉竞争的调用不转发，
// 因为另一个并发调用已经决定了结果。
func (o Observable) TakeWhile(predicate Predicate) Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		shouldContinue := NewBoolCell(true)
		return o.Subscribe(NewObserverFull(
			func(value interface{}) {
				if !shouldContinue.Get() {
					return
				}
				holds := predicate(value)
				if shouldContinue.CompareAndSet(true, holds) {
					if holds {
						subscriber.OnNext(value)
					} else {
						subscriber.OnCompleted()
					}
				}
			},
			subscriber.OnError,
			subscriber.OnCompleted,
		))
	})
}

// DropWhile 谓词保持成立期间吞掉元素，谓词首次失败后无条件转发。
// 只有谓词不成立才清除标志；CAS输掉竞争时重试同一元素的判定。
func (o Observable) DropWhile(predicate Predicate) Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		shouldDrop := NewBoolCell(true)
		return o.Subscribe(NewObserverFull(
			func(value interface{}) {
				for {
					if !shouldDrop.Get() {
						subscriber.OnNext(value)
						return
					}
					if predicate(value) {
						return
					}
					if shouldDrop.CompareAndSet(true, false) {
						subscriber.OnNext(value)
						return
					}
				}
			},
			subscriber.OnError,
			subscriber.OnCompleted,
		))
	})
}

// Head 只取第一个元素
func (o Observable) Head() Observable {
	return o.Take(1)
}
