// Package disposables shares one releasable resource between many references.
//
// The resource is released exactly once, when the last outstanding reference is
// released, whatever the order, the number of repeated releases or the number of
// goroutines releasing at the same time. Synchronous resources implement io.Closer,
// asynchronous ones implement AsyncCloser and release through rxp futures. Both use
// the same lock-free core from pkg/reference: one atomic counter per resource and one
// compare-and-set guard per reference and per releaser.
package disposables

import (
	"github.com/brickingsoft/disposables/pkg/reference"
	"go.uber.org/zap"
)

// Wrapped
// 保证被包装资源只释放一次。
//
// R 为释放结果，同步为 error，异步为 Future。
type Wrapped[R any] struct {
	once *reference.Once[R]
	idle func() R
}

// Close
// 第一次调用释放资源并返回其结果，其余调用立即返回空结果，不等待释放完成。
func (w *Wrapped[R]) Close() R {
	if result, ok := w.once.Release(); ok {
		return result
	}
	return w.idle()
}

// IsDisposeStarted
// 正在释放或已释放。
func (w *Wrapped[R]) IsDisposeStarted() bool {
	return w.once.Started()
}

// IsDisposed
// 已完成释放。
func (w *Wrapped[R]) IsDisposed() bool {
	return w.once.Released()
}

// IsDisposing
// 正在释放，尚未完成。
func (w *Wrapped[R]) IsDisposing() bool {
	return w.once.Releasing()
}

// Counted
// 引用计数包装，自身不持有引用。
//
// 计数从 0 开始，第一次 AddReference 后为 1。
// 最后一个 Reference 关闭时释放资源。
type Counted[R any] struct {
	counter *reference.Counter[R]
	idle    func() R
	logger  *zap.Logger
}

// AddReference
// 计数加一，返回一个新的引用。
//
// 资源已释放后调用属于误用：返回的引用可以正常关闭，但资源不会再次释放。
func (c *Counted[R]) AddReference() *Reference[R] {
	handle := c.counter.Acquire()
	if c.counter.Releaser().Started() {
		c.logger.Debug("reference added after release", zap.Int64("count", c.counter.Count()))
	}
	return &Reference[R]{handle: handle, idle: c.idle}
}

// Count
// 当前未关闭的引用数。
func (c *Counted[R]) Count() int64 {
	return c.counter.Count()
}

// Owned
// 自身即是第一个引用的引用计数包装。
//
// Close 关闭自身持有的引用，与其他 Reference 一样最后关闭者释放资源。
type Owned[R any] struct {
	Counted[R]
	self *Reference[R]
}

// Close
// 关闭自身持有的引用，多次调用只减一次计数。
func (o *Owned[R]) Close() R {
	return o.self.Close()
}

// IsDisposeStarted
// 资源正在释放或已释放。
func (o *Owned[R]) IsDisposeStarted() bool {
	return o.counter.Releaser().Started()
}

// IsDisposed
// 资源已完成释放。
func (o *Owned[R]) IsDisposed() bool {
	return o.counter.Releaser().Released()
}

// IsDisposing
// 资源正在释放，尚未完成。
func (o *Owned[R]) IsDisposing() bool {
	return o.counter.Releaser().Releasing()
}

// Reference
// 单个引用，多次 Close 只减一次计数。
type Reference[R any] struct {
	handle *reference.Handle[R]
	idle   func() R
}

// Close
// 第一次调用时计数减一；减到 0 的调用者释放资源并得到释放结果。
// 其余情况立即返回空结果。
func (ref *Reference[R]) Close() R {
	if result, ok := ref.handle.Release(); ok {
		return result
	}
	return ref.idle()
}

// Released
// 该引用是否已关闭，不代表资源已释放。
func (ref *Reference[R]) Released() bool {
	return ref.handle.Released()
}

// release 描述一种释放方式：如何执行、何时算完成、未触发时返回什么。
type release[R any] struct {
	fn     func() R
	settle reference.Settle[R]
	idle   func() R
}

func newWrapped[R any](r release[R]) *Wrapped[R] {
	return &Wrapped[R]{
		once: reference.NewOnce(r.fn, r.settle),
		idle: r.idle,
	}
}

func newCounted[R any](r release[R], logger *zap.Logger) *Counted[R] {
	return &Counted[R]{
		counter: reference.New(reference.NewOnce(r.fn, r.settle)),
		idle:    r.idle,
		logger:  logger,
	}
}

func newOwned[R any](r release[R], logger *zap.Logger) *Owned[R] {
	o := &Owned[R]{Counted: *newCounted(r, logger)}
	o.self = o.AddReference()
	return o
}
