// Subscription primitives for rxcore
// 订阅句柄体系：基础句柄、单次绑定、组合式和引用计数三种组合变体
package rxcore

import (
	"sync"
	"sync/atomic"
)

// ============================================================================
// Subscription 基础接口与实现
// ============================================================================

// Subscription 订阅句柄接口，代表一段可撤销的运行中工作。
// Unsubscribe是幂等的：任意线程调用任意多次与调用一次效果相同，
// 首次调用之后永久处于已取消状态（不可逆）。
type Subscription interface {
	// Unsubscribe 取消订阅
	Unsubscribe()
	// IsUnsubscribed 检查是否已取消订阅
	IsUnsubscribed() bool
}

// baseSubscription 基础订阅实现，取消时执行一次注册的动作
type baseSubscription struct {
	unsubscribed  int32
	onUnsubscribe func()
}

// NewSubscription 创建基础订阅句柄，onUnsubscribe可以为nil
func NewSubscription(onUnsubscribe func()) Subscription {
	return &baseSubscription{
		onUnsubscribe: onUnsubscribe,
	}
}

// Unsubscribe 取消订阅
func (s *baseSubscription) Unsubscribe() {
	if atomic.CompareAndSwapInt32(&s.unsubscribed, 0, 1) {
		if s.onUnsubscribe != nil {
			s.onUnsubscribe()
		}
	}
}

// IsUnsubscribed 检查是否已取消订阅
func (s *baseSubscription) IsUnsubscribed() bool {
	return atomic.LoadInt32(&s.unsubscribed) == 1
}

// ============================================================================
// SingleAssignmentSubscription 单次绑定订阅
// ============================================================================

// SingleAssignmentSubscription 未初始化的订阅句柄，底层资源恰好绑定一次。
// 在绑定之前取消，取消会传播给之后绑定的资源；重复绑定是使用错误。
type SingleAssignmentSubscription struct {
	mu           sync.Mutex
	unsubscribed bool
	assigned     bool
	underlying   Subscription
}

// NewSingleAssignmentSubscription 创建单次绑定订阅
func NewSingleAssignmentSubscription() *SingleAssignmentSubscription {
	return &SingleAssignmentSubscription{}
}

// Set 绑定底层订阅，重复调用会panic
func (s *SingleAssignmentSubscription) Set(sub Subscription) {
	s.mu.Lock()
	if s.assigned {
		s.mu.Unlock()
		panic("rxcore: SingleAssignmentSubscription不能重复绑定")
	}
	s.assigned = true
	s.underlying = sub
	dead := s.unsubscribed
	s.mu.Unlock()

	if dead && sub != nil {
		sub.Unsubscribe()
	}
}

// Unsubscribe 取消订阅，未绑定时先记录，待绑定后立即传播
func (s *SingleAssignmentSubscription) Unsubscribe() {
	s.mu.Lock()
	if s.unsubscribed {
		s.mu.Unlock()
		return
	}
	s.unsubscribed = true
	underlying := s.underlying
	s.mu.Unlock()

	if underlying != nil {
		underlying.Unsubscribe()
	}
}

// IsUnsubscribed 检查是否已取消订阅
func (s *SingleAssignmentSubscription) IsUnsubscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsubscribed
}

// ============================================================================
// CompositeSubscription 组合式订阅
// ============================================================================

// CompositeSubscription 线程安全的订阅集合，取消它会取消所有子订阅。
// 取消之后再Add的子订阅会被立即取消而不是保留，避免泄漏仍在运行的工作。
type CompositeSubscription struct {
	mu           sync.Mutex
	unsubscribed bool
	children     map[Subscription]struct{}
}

// NewCompositeSubscription 创建组合式订阅
func NewCompositeSubscription() *CompositeSubscription {
	return &CompositeSubscription{
		children: make(map[Subscription]struct{}),
	}
}

// Add 添加子订阅；若组合已取消则立即取消该子订阅
func (s *CompositeSubscription) Add(child Subscription) {
	if child == nil {
		return
	}

	s.mu.Lock()
	if s.unsubscribed {
		s.mu.Unlock()
		child.Unsubscribe()
		return
	}
	s.children[child] = struct{}{}
	s.mu.Unlock()
}

// Remove 移除子订阅但不取消它，用于子计算自然结束后的清理
func (s *CompositeSubscription) Remove(child Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.children, child)
}

// Unsubscribe 取消自身以及当前所有子订阅
func (s *CompositeSubscription) Unsubscribe() {
	s.mu.Lock()
	if s.unsubscribed {
		s.mu.Unlock()
		return
	}
	s.unsubscribed = true
	children := s.children
	s.children = nil
	s.mu.Unlock()

	for child := range children {
		child.Unsubscribe()
	}
}

// IsUnsubscribed 检查是否已取消订阅
func (s *CompositeSubscription) IsUnsubscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsubscribed
}

// ============================================================================
// RefCountSubscription 引用计数订阅
// ============================================================================

// RefCountSubscription 跟踪逻辑引用计数的订阅句柄。
// Acquire返回代表一个未完成引用的令牌并使计数加一；取消令牌使计数减一。
// 当句柄自身被取消且计数归零时，注册的完成回调恰好触发一次。
// 用于表达"等待父计算与N个并发子计算全部结束"。
type RefCountSubscription struct {
	mu           sync.Mutex
	count        int
	unsubscribed bool
	fired        bool
	onComplete   func()
}

// NewRefCountSubscription 创建引用计数订阅，onComplete在全部结束时触发
func NewRefCountSubscription(onComplete func()) *RefCountSubscription {
	return &RefCountSubscription{
		onComplete: onComplete,
	}
}

// Acquire 获取一个引用令牌，计数加一
func (s *RefCountSubscription) Acquire() Subscription {
	s.mu.Lock()
	s.count++
	s.mu.Unlock()

	return NewSubscription(func() {
		s.release()
	})
}

// release 释放一个引用，计数归零且父句柄已取消时触发回调
func (s *RefCountSubscription) release() {
	s.mu.Lock()
	s.count--
	fire := s.unsubscribed && s.count == 0 && !s.fired
	if fire {
		s.fired = true
	}
	onComplete := s.onComplete
	s.mu.Unlock()

	if fire && onComplete != nil {
		onComplete()
	}
}

// Unsubscribe 取消父句柄，计数已为零时立即触发回调
func (s *RefCountSubscription) Unsubscribe() {
	s.mu.Lock()
	if s.unsubscribed {
		s.mu.Unlock()
		return
	}
	s.unsubscribed = true
	fire := s.count == 0 && !s.fired
	if fire {
		s.fired = true
	}
	onComplete := s.onComplete
	s.mu.Unlock()

	if fire && onComplete != nil {
		onComplete()
	}
}

// IsUnsubscribed 检查父句柄是否已取消
func (s *RefCountSubscription) IsUnsubscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsubscribed
}
