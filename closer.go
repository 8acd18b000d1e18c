package disposables

import (
	"io"
	"reflect"

	"go.uber.org/zap"
)

// NewWrapped
// 包装同步资源，保证 closer.Close 最多执行一次。
func NewWrapped(closer io.Closer, options ...Option) (w *Wrapped[error], err error) {
	opt, err := newOptions(options)
	if err != nil {
		return
	}
	r, err := closerRelease(closer, opt)
	if err != nil {
		return
	}
	w = newWrapped(r)
	return
}

// NewReferenceCounted
// 创建不持有引用的同步引用计数包装。
func NewReferenceCounted(closer io.Closer, options ...Option) (c *Counted[error], err error) {
	opt, err := newOptions(options)
	if err != nil {
		return
	}
	r, err := closerRelease(closer, opt)
	if err != nil {
		return
	}
	c = newCounted(r, opt.Logger)
	return
}

// NewSelfReferenceCounted
// 创建自身为第一个引用的同步引用计数包装。
func NewSelfReferenceCounted(closer io.Closer, options ...Option) (o *Owned[error], err error) {
	opt, err := newOptions(options)
	if err != nil {
		return
	}
	r, err := closerRelease(closer, opt)
	if err != nil {
		return
	}
	o = newOwned(r, opt.Logger)
	return
}

func closerRelease(closer io.Closer, opt Options) (r release[error], err error) {
	if isNil(closer) {
		err = ErrNilResource
		return
	}
	log := opt.Logger
	r = release[error]{
		fn: func() (err error) {
			log.Debug("releasing")
			defer func() {
				if p := recover(); p != nil {
					err = newReleaseErr(opt.Name, newPanickedErr(opt.Name, p))
				}
				if err != nil {
					log.Warn("release failed", zap.Error(err))
				}
			}()
			if cause := closer.Close(); cause != nil {
				err = newReleaseErr(opt.Name, cause)
			}
			return
		},
		idle: func() error {
			return nil
		},
	}
	return
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
