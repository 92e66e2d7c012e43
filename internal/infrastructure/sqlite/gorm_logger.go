package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// slowQueryThreshold consultas más lentas se registran en warn.
const slowQueryThreshold = 200 * time.Millisecond

// GormLogger envía el log de gorm al logger estructurado de la aplicación.
// El SQL ejecutado sale en debug; errores y consultas lentas en warn.
type GormLogger struct {
	log   *logger.Logger
	level glogger.LogLevel
}

var _ glogger.Interface = (*GormLogger)(nil)

// NewGormLogger construye el adaptador con nivel Info (el filtrado real lo hace zerolog).
func NewGormLogger(log *logger.Logger) *GormLogger {
	return &GormLogger{log: log, level: glogger.Info}
}

// LogMode implementa glogger.Interface.
func (l *GormLogger) LogMode(level glogger.LogLevel) glogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level >= glogger.Info {
		l.log.Info().Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level >= glogger.Warn {
		l.log.Warn().Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level >= glogger.Error {
		l.log.Error().Msg(fmt.Sprintf(msg, data...))
	}
}

// Trace implementa glogger.Interface. ErrRecordNotFound no se considera error.
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= glogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= glogger.Error:
		l.log.Warn().Err(err).Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("consulta fallida")
	case elapsed > slowQueryThreshold && l.level >= glogger.Warn:
		l.log.Warn().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("consulta lenta")
	case l.level >= glogger.Info:
		l.log.Debug().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("consulta")
	}
}
