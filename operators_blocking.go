// Blocking bridges for rxcore
// 阻塞桥接实现：把流桥接为channel与阻塞获取首个值
package rxcore

// ============================================================================
// 阻塞桥接实现
// ============================================================================

// ToChannel 把流桥接为Go channel。
// 值channel在终止时关闭；错误channel在出错时收到一个错误后关闭，
// 正常完成时直接关闭。上游先做串行化，关闭与发送不会竞争。
// 消费方负责持续读取，否则生产者会被缓冲区阻塞；不再读取时
// 用返回的句柄取消订阅，让生产者停下来。
func (o Observable) ToChannel() (<-chan interface{}, <-chan error, Subscription) {
	values := make(chan interface{}, 16)
	errs := make(chan error, 1)

	sub := o.Synchronize().Subscribe(NewObserverFull(
		func(value interface{}) {
			values <- value
		},
		func(err error) {
			errs <- err
			close(values)
			close(errs)
		},
		func() {
			close(values)
			close(errs)
		},
	))

	return values, errs, sub
}

// BlockingFirst 阻塞等待流的第一个终止性结果。
// 返回首个值（ok为true）、空完成（ok为false）或流错误。
func (o Observable) BlockingFirst() (value interface{}, ok bool, err error) {
	return o.ToPromise().Get()
}
