// Factory functions for rxcore
// 工厂函数，从值、切片和channel创建冷流
package rxcore

// ============================================================================
// 基础工厂函数
// ============================================================================

// Just 从给定的值创建Observable
func Just(values ...interface{}) Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		go func() {
			for _, value := range values {
				if subscriber.Subscription.IsUnsubscribed() {
					return
				}
				subscriber.OnNext(value)
			}
			subscriber.OnCompleted()
		}()

		return NewSubscription(nil)
	})
}

// Empty 创建一个空的Observable，立即完成
func Empty() Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		go func() {
			subscriber.OnCompleted()
		}()

		return NewSubscription(nil)
	})
}

// Never 创建一个永不发射任何值的Observable
func Never() Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		// 什么都不做，永远不发射值
		return NewSubscription(nil)
	})
}

// Error 创建一个立即发射错误的Observable
func Error(err error) Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		go func() {
			subscriber.OnError(err)
		}()

		return NewSubscription(nil)
	})
}

// Range 创建发射指定范围整数的Observable
func Range(start, count int) Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		go func() {
			for i := 0; i < count; i++ {
				if subscriber.Subscription.IsUnsubscribed() {
					return
				}
				subscriber.OnNext(start + i)
			}
			subscriber.OnCompleted()
		}()

		return NewSubscription(nil)
	})
}

// ============================================================================
// 从数据源创建
// ============================================================================

// FromSlice 从切片创建Observable
func FromSlice(slice []interface{}) Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		go func() {
			for _, value := range slice {
				if subscriber.Subscription.IsUnsubscribed() {
					return
				}
				subscriber.OnNext(value)
			}
			subscriber.OnCompleted()
		}()

		return NewSubscription(nil)
	})
}

// FromChannel 从Go channel创建Observable，channel关闭即流完成
func FromChannel(ch <-chan interface{}) Observable {
	return Create(func(subscriber *Subscriber) Subscription {
		done := make(chan struct{})

		go func() {
			for {
				select {
				case <-done:
					return
				case value, open := <-ch:
					if !open {
						subscriber.OnCompleted()
						return
					}
					subscriber.OnNext(value)
				}
			}
		}()

		return NewSubscription(func() {
			close(done)
		})
	})
}
