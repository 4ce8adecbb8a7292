package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// HertzSlogAdapter routes Hertz framework logs (hlog) through slog so
// the whole process emits one log stream.
type HertzSlogAdapter struct {
	logger *slog.Logger
}

// NewHertzSlogAdapter creates an hlog adapter on top of logger.
func NewHertzSlogAdapter(logger *slog.Logger) *HertzSlogAdapter {
	return &HertzSlogAdapter{logger: logger}
}

// slogLevel maps hlog levels onto slog. Notice collapses to Info and
// Fatal to Error; slog has no equivalents.
func slogLevel(level hlog.Level) slog.Level {
	switch level {
	case hlog.LevelTrace, hlog.LevelDebug:
		return slog.LevelDebug
	case hlog.LevelInfo, hlog.LevelNotice:
		return slog.LevelInfo
	case hlog.LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func (h *HertzSlogAdapter) log(ctx context.Context, level hlog.Level, msg string) {
	h.logger.Log(ctx, slogLevel(level), msg)
}

func (h *HertzSlogAdapter) Trace(v ...interface{}) {
	h.log(context.Background(), hlog.LevelTrace, fmt.Sprint(v...))
}

func (h *HertzSlogAdapter) Debug(v ...interface{}) {
	h.log(context.Background(), hlog.LevelDebug, fmt.Sprint(v...))
}

func (h *HertzSlogAdapter) Info(v ...interface{}) {
	h.log(context.Background(), hlog.LevelInfo, fmt.Sprint(v...))
}

func (h *HertzSlogAdapter) Notice(v ...interface{}) {
	h.log(context.Background(), hlog.LevelNotice, fmt.Sprint(v...))
}

func (h *HertzSlogAdapter) Warn(v ...interface{}) {
	h.log(context.Background(), hlog.LevelWarn, fmt.Sprint(v...))
}

func (h *HertzSlogAdapter) Error(v ...interface{}) {
	h.log(context.Background(), hlog.LevelError, fmt.Sprint(v...))
}

func (h *HertzSlogAdapter) Fatal(v ...interface{}) {
	h.log(context.Background(), hlog.LevelFatal, fmt.Sprint(v...))
}

func (h *HertzSlogAdapter) Tracef(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelTrace, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Debugf(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelDebug, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Infof(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelInfo, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Noticef(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelNotice, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Warnf(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelWarn, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Errorf(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelError, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) Fatalf(format string, v ...interface{}) {
	h.log(context.Background(), hlog.LevelFatal, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxTracef(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelTrace, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxDebugf(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelDebug, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxInfof(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelInfo, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxNoticef(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelNotice, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxWarnf(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelWarn, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxErrorf(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelError, fmt.Sprintf(format, v...))
}

func (h *HertzSlogAdapter) CtxFatalf(ctx context.Context, format string, v ...interface{}) {
	h.log(ctx, hlog.LevelFatal, fmt.Sprintf(format, v...))
}

// SetLevel is a no-op; the slog level is fixed at setup.
func (h *HertzSlogAdapter) SetLevel(level hlog.Level) {}

// SetOutput is a no-op; the slog output is fixed at setup.
func (h *HertzSlogAdapter) SetOutput(writer io.Writer) {}
