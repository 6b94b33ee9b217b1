// Promise and bridge tests for rxcore
// 结果容器与阻塞桥接的测试：首个写入者获胜
package rxcore

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// ============================================================================
// Promise 测试
// ============================================================================

func TestPromise(t *testing.T) {
	t.Run("首个写入者获胜后续尝试为空操作", func(t *testing.T) {
		promise := NewPromise()

		if !promise.TryResolve(1) {
			t.Error("首次决议应成功")
		}
		if promise.TryResolve(2) {
			t.Error("第二次决议应失败")
		}
		if promise.TryFail(errors.New("太迟")) {
			t.Error("决议后的失败尝试应为空操作")
		}

		value, ok, err := promise.Get()
		if value != 1 || !ok || err != nil {
			t.Errorf("期望 (1, true, nil), 得到 (%v, %v, %v)", value, ok, err)
		}
	})

	t.Run("并发决议恰好一个获胜", func(t *testing.T) {
		promise := NewPromise()

		var winners int32
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if promise.TryResolve(i) {
					atomic.AddInt32(&winners, 1)
				}
			}(i)
		}
		wg.Wait()

		if got := atomic.LoadInt32(&winners); got != 1 {
			t.Errorf("期望恰好1个写入者获胜, 实际 %d 个", got)
		}
	})
}

// ============================================================================
// ToPromise 与 BlockingFirst
// ============================================================================

func TestToPromise(t *testing.T) {
	t.Run("首个值决议Promise", func(t *testing.T) {
		value, ok, err := Just(1, 2, 3).BlockingFirst()
		if value != 1 || !ok || err != nil {
			t.Errorf("期望 (1, true, nil), 得到 (%v, %v, %v)", value, ok, err)
		}
	})

	t.Run("空流决议为无值", func(t *testing.T) {
		value, ok, err := Empty().BlockingFirst()
		if value != nil || ok || err != nil {
			t.Errorf("期望 (nil, false, nil), 得到 (%v, %v, %v)", value, ok, err)
		}
	})

	t.Run("错误流决议为失败", func(t *testing.T) {
		wantErr := errors.New("流失败")
		_, ok, err := Error(wantErr).BlockingFirst()
		if ok || !errors.Is(err, wantErr) {
			t.Errorf("期望错误 %v, 得到 (ok=%v, err=%v)", wantErr, ok, err)
		}
	})

	t.Run("Done在决议后关闭", func(t *testing.T) {
		promise := Just(42).ToPromise()

		select {
		case <-promise.Done():
			value, ok, err := promise.Get()
			if value != 42 || !ok || err != nil {
				t.Errorf("期望 (42, true, nil), 得到 (%v, %v, %v)", value, ok, err)
			}
		case <-time.After(time.Second):
			t.Error("测试超时")
		}
	})
}

// ============================================================================
// ToChannel 桥接
// ============================================================================

func TestToChannel(t *testing.T) {
	t.Run("值从channel依次读出", func(t *testing.T) {
		values, errs, _ := Just(1, 2, 3).ToChannel()

		got := []interface{}{}
		for value := range values {
			got = append(got, value)
		}
		if err := <-errs; err != nil {
			t.Errorf("不应该有错误: %v", err)
		}
		if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
			t.Errorf("期望 [1 2 3], 得到 %v", got)
		}
	})

	t.Run("错误从错误channel给出", func(t *testing.T) {
		wantErr := errors.New("源失败")
		values, errs, _ := Error(wantErr).ToChannel()

		for range values {
			t.Error("不应该收到值")
		}
		if err := <-errs; !errors.Is(err, wantErr) {
			t.Errorf("期望错误 %v, 得到 %v", wantErr, err)
		}
	})

	t.Run("取消订阅让不再读取的桥接停下来", func(t *testing.T) {
		var emitted int32
		stopped := make(chan bool, 1)

		endless := Create(func(subscriber *Subscriber) Subscription {
			go func() {
				for i := 0; ; i++ {
					if subscriber.Subscription.IsUnsubscribed() {
						stopped <- true
						return
					}
					atomic.AddInt32(&emitted, 1)
					subscriber.OnNext(i)
				}
			}()
			return NewSubscription(nil)
		})

		values, _, sub := endless.ToChannel()
		<-values
		sub.Unsubscribe()

		// 取消后生产者在下一次检查处退出，不会被无人消费的缓冲区卡死
		go func() {
			for range values {
			}
		}()

		select {
		case <-stopped:
		case <-time.After(2 * time.Second):
			t.Error("取消订阅后生产者应当退出")
		}
	})
}
