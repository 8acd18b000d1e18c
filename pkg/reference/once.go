package reference

import "sync/atomic"

const (
	stateIdle int32 = iota
	stateReleasing
	stateReleased
)

// Settle
// 决定一次释放何时算作完成。
//
// result 为释放函数的返回值，done 将状态置为已释放。
// 同步释放在返回前调用 done，异步释放在 Future 完成时调用 done。
type Settle[R any] func(result R, done func()) R

// NewOnce
// 创建一个至多执行一次 fn 的释放器。
func NewOnce[R any](fn func() R, settle Settle[R]) *Once[R] {
	if fn == nil {
		panic("reference: release func is nil")
	}
	return &Once[R]{fn: fn, settle: settle}
}

// Once
// 幂等释放器，fn 在整个生命周期内最多执行一次。
type Once[R any] struct {
	state  atomic.Int32
	fn     func() R
	settle Settle[R]
}

// Release
// 只有第一个调用者执行 fn，ok 为 true。
// 其他调用者不会等待，直接返回零值与 false。
func (once *Once[R]) Release() (result R, ok bool) {
	if !once.state.CompareAndSwap(stateIdle, stateReleasing) {
		return
	}
	ok = true
	result = once.fn()
	if once.settle == nil {
		once.done()
		return
	}
	result = once.settle(result, once.done)
	return
}

func (once *Once[R]) done() {
	once.state.Store(stateReleased)
}

// Started
// 正在释放或已释放。
func (once *Once[R]) Started() bool {
	return once.state.Load() != stateIdle
}

// Releasing
// 正在释放，尚未完成。
func (once *Once[R]) Releasing() bool {
	return once.state.Load() == stateReleasing
}

// Released
// 已完成释放。
func (once *Once[R]) Released() bool {
	return once.state.Load() == stateReleased
}
