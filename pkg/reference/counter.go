package reference

import "sync/atomic"

// New
// 创建引用计数器，计数为 0 时不持有任何引用。
func New[R any](releaser *Once[R]) *Counter[R] {
	if releaser == nil {
		panic("reference: releaser is nil")
	}
	return &Counter[R]{releaser: releaser}
}

// Counter
// 引用计数，最后一个 Handle 释放时触发 releaser。
type Counter[R any] struct {
	releaser *Once[R]
	count    atomic.Int64
}

// Acquire
// 计数加一并返回新的 Handle。
//
// 在 releaser 已触发后调用属于误用，不做保护：
// 新 Handle 释放时计数会再次归零，但 releaser 不会再次执行。
func (counter *Counter[R]) Acquire() *Handle[R] {
	counter.count.Add(1)
	return &Handle[R]{owner: counter}
}

func (counter *Counter[R]) Count() int64 {
	return counter.count.Load()
}

func (counter *Counter[R]) Releaser() *Once[R] {
	return counter.releaser
}

func (counter *Counter[R]) decrement() (result R, ok bool) {
	if counter.count.Add(-1) == 0 {
		return counter.releaser.Release()
	}
	return
}

// Handle
// 单个引用，多次 Release 只减一次计数。
type Handle[R any] struct {
	owner    *Counter[R]
	released atomic.Bool
}

// Release
// 第一次调用时计数减一，减到 0 时触发释放，此时 ok 为 true。
func (handle *Handle[R]) Release() (result R, ok bool) {
	if !handle.released.CompareAndSwap(false, true) {
		return
	}
	return handle.owner.decrement()
}

func (handle *Handle[R]) Released() bool {
	return handle.released.Load()
}
