package disposables

import (
	"context"

	"github.com/brickingsoft/errors"
	"github.com/brickingsoft/rxp"
	"github.com/brickingsoft/rxp/async"
	"go.uber.org/zap"
)

// Future
// 异步释放的结果。
type Future = async.Future[async.Void]

// AsyncCloser
// 异步释放的资源，Close 返回的 Future 完成即释放完成。
type AsyncCloser interface {
	Close() (future Future)
}

// NewWrappedAsync
// 包装异步资源，保证 closer.Close 最多执行一次。
//
// ctx 未绑定执行器时使用 Executors。
func NewWrappedAsync(ctx context.Context, closer AsyncCloser, options ...Option) (w *Wrapped[Future], err error) {
	opt, err := newOptions(options)
	if err != nil {
		return
	}
	r, err := asyncCloserRelease(ctx, closer, opt)
	if err != nil {
		return
	}
	w = newWrapped(r)
	return
}

// NewReferenceCountedAsync
// 创建不持有引用的异步引用计数包装。
func NewReferenceCountedAsync(ctx context.Context, closer AsyncCloser, options ...Option) (c *Counted[Future], err error) {
	opt, err := newOptions(options)
	if err != nil {
		return
	}
	r, err := asyncCloserRelease(ctx, closer, opt)
	if err != nil {
		return
	}
	c = newCounted(r, opt.Logger)
	return
}

// NewSelfReferenceCountedAsync
// 创建自身为第一个引用的异步引用计数包装。
func NewSelfReferenceCountedAsync(ctx context.Context, closer AsyncCloser, options ...Option) (o *Owned[Future], err error) {
	opt, err := newOptions(options)
	if err != nil {
		return
	}
	r, err := asyncCloserRelease(ctx, closer, opt)
	if err != nil {
		return
	}
	o = newOwned(r, opt.Logger)
	return
}

func asyncCloserRelease(ctx context.Context, closer AsyncCloser, opt Options) (r release[Future], err error) {
	if isNil(closer) {
		err = ErrNilResource
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if _, has := rxp.TryFrom(ctx); !has {
		bound, withErr := With(ctx)
		if withErr != nil {
			err = errors.New(
				"executors unavailable",
				errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
				errors.WithMeta(errMetaNameKey, opt.Name),
				errors.WithWrap(withErr),
			)
			return
		}
		ctx = bound
	}
	log := opt.Logger
	r = release[Future]{
		fn: func() (future Future) {
			log.Debug("releasing")
			defer func() {
				if p := recover(); p != nil {
					future = async.FailedImmediately[async.Void](ctx, newPanickedErr(opt.Name, p))
				}
			}()
			future = closer.Close()
			return
		},
		settle: func(future Future, done func()) Future {
			if future == nil {
				done()
				return async.SucceedImmediately[async.Void](ctx, async.Void{})
			}
			promise, promiseErr := async.Make[async.Void](ctx)
			if promiseErr != nil {
				future.OnComplete(func(ctx context.Context, result async.Void, cause error) {
					done()
				})
				err := newReleaseErr(opt.Name, promiseErr)
				log.Warn("release failed", zap.Error(err))
				return async.FailedImmediately[async.Void](ctx, err)
			}
			future.OnComplete(func(ctx context.Context, result async.Void, cause error) {
				done()
				if cause != nil {
					err := newReleaseErr(opt.Name, cause)
					log.Warn("release failed", zap.Error(err))
					promise.Fail(err)
					return
				}
				promise.Succeed(result)
			})
			return promise.Future()
		},
		idle: func() Future {
			return async.SucceedImmediately[async.Void](ctx, async.Void{})
		},
	}
	return
}
