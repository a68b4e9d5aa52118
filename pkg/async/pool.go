package async

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"time"

	"AiBeiTongServer/config"
	"AiBeiTongServer/pkg/logger"

	"github.com/panjf2000/ants/v2"
)

var (
	global   *ants.Pool
	globalMu sync.Mutex
	cfgCopy  config.AsyncConfig
)

// ContextPropagator 由业务层注入，用于从父 ctx 提取需要透传的字段（如 trace_id）。
var ContextPropagator func(parent context.Context) context.Context

// SetContextPropagator 设置上下文传递器（建议在 main 初始化时调用）。
func SetContextPropagator(fn func(context.Context) context.Context) {
	ContextPropagator = fn
}

// ErrNotInitialized 表示协程池尚未初始化。
var ErrNotInitialized = errors.New("async pool not initialized")

// Pool 返回全局协程池（未初始化时为 nil）。
func Pool() *ants.Pool { return global }

// ReplaceGlobal 设置全局协程池。
func ReplaceGlobal(p *ants.Pool) { global = p }

// Build 根据配置创建协程池实例。
func Build(cfg config.AsyncConfig) (*ants.Pool, error) {
	opts := []ants.Option{
		ants.WithMaxBlockingTasks(cfg.MaxBlockingTasks),
		ants.WithExpiryDuration(cfg.ExpiryDuration),
		ants.WithPanicHandler(func(p any) {
			if logger.L() != nil {
				logger.Error(context.Background(), "async task panic",
					logger.Any("panic", p),
					logger.String("stack", string(debug.Stack())),
				)
			}
		}),
	}
	if cfg.Nonblocking {
		opts = append(opts, ants.WithNonblocking(true))
	}

	return ants.NewPool(cfg.PoolSize, opts...)
}

// Init 初始化全局协程池（仅需在进程启动时调用一次）。
func Init(cfg config.AsyncConfig) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global != nil {
		return nil
	}

	p, err := Build(cfg)
	if err != nil {
		return err
	}

	global = p
	cfgCopy = cfg
	return nil
}

// Submit 将任务投递到全局协程池。
func Submit(task func()) error {
	if global == nil {
		return ErrNotInitialized
	}
	return global.Submit(task)
}

// Release 优雅释放协程池资源（等待任务执行完）。
func Release() error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		return nil
	}

	var err error
	if cfgCopy.ReleaseTimeout > 0 {
		err = global.ReleaseTimeout(cfgCopy.ReleaseTimeout)
	} else {
		global.Release()
	}
	global = nil
	return err
}

// RunSafe 在协程池中执行任务：
// - 与调用方 ctx 解耦（调用方请求结束不影响异步任务），但透传 trace 字段；
// - timeout > 0 时为任务附加独立超时；
// - 协程池未初始化时降级为同步执行，保证任务不丢。
func RunSafe(ctx context.Context, task func(ctx context.Context), timeout time.Duration) {
	runCtx := context.Background()
	if ContextPropagator != nil && ctx != nil {
		runCtx = ContextPropagator(ctx)
	}

	wrapped := func() {
		taskCtx := runCtx
		if timeout > 0 {
			var cancel context.CancelFunc
			taskCtx, cancel = context.WithTimeout(runCtx, timeout)
			defer cancel()
		}
		task(taskCtx)
	}

	if err := Submit(wrapped); err != nil {
		// 池未初始化或已满且非阻塞，退化为同步执行
		wrapped()
	}
}
