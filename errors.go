package disposables

import (
	"fmt"

	"github.com/brickingsoft/errors"
)

var (
	ErrNilResource     = errors.Define("disposables: resource is nil")
	ErrReleasePanicked = errors.Define("disposables: release panicked")
	ErrInvalidOption   = errors.Define("disposables: invalid option")
)

func IsNilResource(err error) bool {
	return errors.Is(err, ErrNilResource)
}

func IsReleasePanicked(err error) bool {
	return errors.Is(err, ErrReleasePanicked)
}

func IsInvalidOption(err error) bool {
	return errors.Is(err, ErrInvalidOption)
}

const (
	errMetaPkgKey  = "pkg"
	errMetaPkgVal  = "disposables"
	errMetaNameKey = "name"
)

func newReleaseErr(name string, cause error) error {
	return errors.New(
		"release failed",
		errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
		errors.WithMeta(errMetaNameKey, name),
		errors.WithWrap(cause),
	)
}

func newPanickedErr(name string, r any) error {
	return errors.New(
		"release panicked",
		errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
		errors.WithMeta(errMetaNameKey, name),
		errors.WithMeta("panic", fmt.Sprintf("%+v", r)),
		errors.WithWrap(ErrReleasePanicked),
	)
}
