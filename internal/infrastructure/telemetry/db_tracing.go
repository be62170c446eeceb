package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds database tracing configuration.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include query variables in spans; development only
	SlowQueryThresh time.Duration
	DBName          string
}

type queryStartKey struct{}

// RegisterDBTracing installs the otelgorm plugin plus callbacks that flag
// slow queries and errors on the active span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	t := &slowQueryTracer{threshold: cfg.SlowQueryThresh}
	cb := db.Callback()
	for _, err := range []error{
		cb.Create().Before("gorm:create").Register("fanaticos_timing:before_create", t.before),
		cb.Query().Before("gorm:query").Register("fanaticos_timing:before_query", t.before),
		cb.Update().Before("gorm:update").Register("fanaticos_timing:before_update", t.before),
		cb.Delete().Before("gorm:delete").Register("fanaticos_timing:before_delete", t.before),
		cb.Row().Before("gorm:row").Register("fanaticos_timing:before_row", t.before),
		cb.Raw().Before("gorm:raw").Register("fanaticos_timing:before_raw", t.before),
		cb.Create().After("gorm:create").Register("fanaticos_timing:after_create", t.after),
		cb.Query().After("gorm:query").Register("fanaticos_timing:after_query", t.after),
		cb.Update().After("gorm:update").Register("fanaticos_timing:after_update", t.after),
		cb.Delete().After("gorm:delete").Register("fanaticos_timing:after_delete", t.after),
		cb.Row().After("gorm:row").Register("fanaticos_timing:after_row", t.after),
		cb.Raw().After("gorm:raw").Register("fanaticos_timing:after_raw", t.after),
	} {
		if err != nil {
			return err
		}
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

type slowQueryTracer struct {
	threshold time.Duration
}

func (t *slowQueryTracer) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func (t *slowQueryTracer) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok || t.threshold <= 0 {
		return
	}
	if elapsed := time.Since(start); elapsed > t.threshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("threshold_ms", t.threshold.Milliseconds()),
		))
	}
}
