package disposables

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/brickingsoft/rxp"
)

var (
	executors       rxp.Executors = nil
	executorsLocker sync.Mutex
)

// Startup
// 启动异步释放使用的执行器。
//
// 默认在第一次调用 Executors 时创建，如果需要定制化，则使用 Startup 完成。
// 注意：必须在程序起始位置调用。已存在的执行器会先被关闭，
// 绑定了旧执行器的异步资源将无法完成释放。
func Startup(options ...rxp.Option) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case error:
				err = e
			case string:
				err = errors.New(e)
			default:
				err = fmt.Errorf("%+v", r)
			}
		}
	}()
	exec, execErr := rxp.New(options...)
	if execErr != nil {
		err = execErr
		return
	}
	executorsLocker.Lock()
	previous := executors
	executors = exec
	executorsLocker.Unlock()
	if previous != nil {
		err = previous.Close()
	}
	return
}

// Shutdown
// 关闭执行器，之后调用 Executors 会重新创建。
func Shutdown() (err error) {
	executorsLocker.Lock()
	exec := executors
	executors = nil
	executorsLocker.Unlock()
	if exec == nil {
		return
	}
	err = exec.Close()
	return
}

// Executors
// 获取执行器，不存在时按默认配置创建。
func Executors() (rxp.Executors, error) {
	executorsLocker.Lock()
	defer executorsLocker.Unlock()
	if executors == nil {
		exec, err := rxp.New()
		if err != nil {
			return nil, err
		}
		executors = exec
	}
	return executors, nil
}

// With
// 将 Executors 绑定到 ctx，供 NewWrappedAsync 等异步构造使用。
func With(ctx context.Context) (context.Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	exec, err := Executors()
	if err != nil {
		return ctx, err
	}
	return rxp.With(ctx, exec), nil
}
