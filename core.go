// Package rxcore provides a push-based reactive stream core for Go
// 基于推模式的响应式流核心库，专注于订阅协议、操作符代数和取消传播
package rxcore

// ============================================================================
// 核心函数类型定义
// ============================================================================

// OnNext 处理下一个值的函数
type OnNext func(value interface{})

// OnError 处理错误的函数
type OnError func(err error)

// OnComplete 处理完成的函数
type OnComplete func()

// Predicate 谓词函数，用于过滤
type Predicate func(value interface{}) bool

// Transformer 转换函数，用于映射
type Transformer func(value interface{}) (interface{}, error)

// Reducer 归约函数，用于聚合
type Reducer func(accumulator, current interface{}) interface{}

// ============================================================================
// 观察者协议
// ============================================================================

// Observer 观察者接口，接收流的三类事件。
//
// 事件语法：零个或多个OnNext调用，之后最多一个终止调用（OnError或
// OnCompleted）；终止之后不会再有任何调用。单个订阅内的事件按生产者
// 发出的顺序到达，但跨操作符边界可能来自不同的goroutine，除非显式
// 插入Synchronize。
type Observer interface {
	// OnNext 接收下一个值
	OnNext(value interface{})
	// OnError 接收终止错误
	OnError(err error)
	// OnCompleted 接收正常完成信号
	OnCompleted()
}

// ============================================================================
// 调度器协议
// ============================================================================

// Scheduler 调度器接口，异步执行任务并返回可取消的句柄。
// 在任务运行之前取消句柄必须阻止任务执行；任务已运行后取消为空操作。
type Scheduler interface {
	// Schedule 调度一个任务
	Schedule(action func()) Subscription
}
