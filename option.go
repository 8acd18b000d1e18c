package disposables

import (
	"github.com/brickingsoft/errors"
	"go.uber.org/zap"
)

const (
	DefaultName = "resource"
)

type Options struct {
	Name   string
	Logger *zap.Logger
}

type Option func(options *Options) (err error)

// WithName
// 设置资源名称，用于日志与错误信息。
//
// 默认值为 DefaultName。
func WithName(name string) Option {
	return func(options *Options) error {
		if name == "" {
			return errors.New(
				"name is empty",
				errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
				errors.WithWrap(ErrInvalidOption),
			)
		}
		options.Name = name
		return nil
	}
}

// WithLogger
// 设置该资源使用的日志。
//
// 默认使用 Logger()。
func WithLogger(logger *zap.Logger) Option {
	return func(options *Options) error {
		if logger == nil {
			return errors.New(
				"logger is nil",
				errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
				errors.WithWrap(ErrInvalidOption),
			)
		}
		options.Logger = logger
		return nil
	}
}

func newOptions(options []Option) (opt Options, err error) {
	opt = Options{
		Name:   DefaultName,
		Logger: nil,
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		if err = option(&opt); err != nil {
			return
		}
	}
	if opt.Logger == nil {
		opt.Logger = Logger()
	}
	opt.Logger = opt.Logger.With(zap.String(errMetaNameKey, opt.Name))
	return
}
