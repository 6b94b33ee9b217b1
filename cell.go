// Atomic cell primitives for rxcore
// 原子可变单元：操作符本地状态只通过读取/比较交换/原子变换访问，不加锁修改
package rxcore

import "sync/atomic"

// ============================================================================
// Cell 通用原子单元
// ============================================================================

// cellValue 装箱的单元内容，CAS以指针身份判断，天然避免ABA问题
type cellValue struct {
	value interface{}
}

// Cell 持有任意值的原子可变单元。
// CompareAndSet按值比较期望值，要求存入的值是可比较类型。
type Cell struct {
	p atomic.Pointer[cellValue]
}

// NewCell 创建原子单元
func NewCell(initial interface{}) *Cell {
	c := &Cell{}
	c.p.Store(&cellValue{value: initial})
	return c
}

// Get 读取当前值
func (c *Cell) Get() interface{} {
	return c.p.Load().value
}

// CompareAndSet 当前值等于expected时原子替换为update
func (c *Cell) CompareAndSet(expected, update interface{}) bool {
	current := c.p.Load()
	if current.value != expected {
		return false
	}
	return c.p.CompareAndSwap(current, &cellValue{value: update})
}

// TransformAndGet 原子地应用变换函数并返回新值。
// 显式循环重试，竞争下不增长调用栈。
func (c *Cell) TransformAndGet(transform func(interface{}) interface{}) interface{} {
	for {
		current := c.p.Load()
		next := transform(current.value)
		if c.p.CompareAndSwap(current, &cellValue{value: next}) {
			return next
		}
	}
}

// ============================================================================
// 专用计数与标志单元
// ============================================================================

// Int64Cell 原子整数单元，用于计数类操作符的共享计数器
type Int64Cell struct {
	value int64
}

// NewInt64Cell 创建原子整数单元
func NewInt64Cell(initial int64) *Int64Cell {
	return &Int64Cell{value: initial}
}

// Get 读取当前计数
func (c *Int64Cell) Get() int64 {
	return atomic.LoadInt64(&c.value)
}

// CompareAndSet 当前计数等于expected时原子替换为update
func (c *Int64Cell) CompareAndSet(expected, update int64) bool {
	return atomic.CompareAndSwapInt64(&c.value, expected, update)
}

// BoolCell 原子布尔单元，用于谓词类操作符的状态标志
type BoolCell struct {
	value int32
}

// NewBoolCell 创建原子布尔单元
func NewBoolCell(initial bool) *BoolCell {
	return &BoolCell{value: boolToInt32(initial)}
}

// Get 读取当前标志
func (c *BoolCell) Get() bool {
	return atomic.LoadInt32(&c.value) == 1
}

// CompareAndSet 当前标志等于expected时原子替换为update
func (c *BoolCell) CompareAndSet(expected, update bool) bool {
	return atomic.CompareAndSwapInt32(&c.value, boolToInt32(expected), boolToInt32(update))
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
