package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

// slowQueryThreshold marks a statement as slow.
const slowQueryThreshold = 200 * time.Millisecond

// gormSlogAdapter adapts slog to gorm's logger interface. Statements log at
// trace level, slow ones at warn and failures at error.
type gormSlogAdapter struct {
	logger *slog.Logger
	level  gormlogger.LogLevel
}

func newGormLogger(logger *slog.Logger) gormlogger.Interface {
	return &gormSlogAdapter{logger: logger, level: gormlogger.Warn}
}

func (g *gormSlogAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &gormSlogAdapter{logger: g.logger, level: level}
}

func (g *gormSlogAdapter) Info(ctx context.Context, msg string, data ...any) {
	if g.level >= gormlogger.Info {
		g.logger.InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (g *gormSlogAdapter) Warn(ctx context.Context, msg string, data ...any) {
	if g.level >= gormlogger.Warn {
		g.logger.WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (g *gormSlogAdapter) Error(ctx context.Context, msg string, data ...any) {
	if g.level >= gormlogger.Error {
		g.logger.ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (g *gormSlogAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && g.level >= gormlogger.Error:
		sql, rows := fc()
		g.logger.ErrorContext(ctx, "database query failed",
			slog.Any("error", err),
			slog.Duration("elapsed", elapsed),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		)
	case elapsed > slowQueryThreshold && g.level >= gormlogger.Warn:
		sql, rows := fc()
		g.logger.WarnContext(ctx, "slow database query",
			slog.Duration("elapsed", elapsed),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		)
	case g.logger.Enabled(ctx, logging.LevelTrace):
		sql, rows := fc()
		g.logger.Log(ctx, logging.LevelTrace, "database query",
			slog.Duration("elapsed", elapsed),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		)
	}
}
