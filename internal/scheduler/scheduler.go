// Package scheduler runs the periodic arrears sweeps over the balance reports
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/segyhp/propmgmt/internal/domain"
	"github.com/segyhp/propmgmt/internal/logging"
)

const (
	JobMissingPayments = "missing_payments"
	JobTenantBalances  = "tenant_balances"

	jobTimeout = 5 * time.Minute
)

// Reports is the part of the report service the sweeps read
type Reports interface {
	UnitsWithMissingPayments(ctx context.Context) ([]*domain.UnitBalanceReport, error)
	TenantsWithBalance(ctx context.Context) ([]*domain.TenantBalanceReport, error)
}

// Locker keeps several scheduler instances from running the same sweep
type Locker interface {
	// Acquire reports whether the caller now holds key
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// RedisLocker takes the lock with SET NX
type RedisLocker struct {
	client *redis.Client
	prefix string
}

func NewRedisLocker(client *redis.Client, prefix string) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, l.prefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

// Jobs holds the sweep implementations. Locker may be nil.
type Jobs struct {
	reports Reports
	locker  Locker
	logger  *slog.Logger
	now     func() time.Time
}

func NewJobs(reports Reports, locker Locker, logger *slog.Logger) *Jobs {
	return &Jobs{
		reports: reports,
		locker:  locker,
		logger:  logger.With(logging.FieldComponent, "scheduler"),
		now:     time.Now,
	}
}

// Register schedules the daily and weekly sweeps on c
func (j *Jobs) Register(c *cron.Cron, dailySpec, weeklySpec string) error {
	if _, err := c.AddFunc(dailySpec, j.wrap(JobMissingPayments, j.MissingPayments)); err != nil {
		return fmt.Errorf("schedule %s job: %w", JobMissingPayments, err)
	}
	if _, err := c.AddFunc(weeklySpec, j.wrap(JobTenantBalances, j.TenantBalances)); err != nil {
		return fmt.Errorf("schedule %s job: %w", JobTenantBalances, err)
	}
	return nil
}

// MissingPayments logs every unit with unpaid rent months and returns how many there are
func (j *Jobs) MissingPayments(ctx context.Context) (int, error) {
	units, err := j.reports.UnitsWithMissingPayments(ctx)
	if err != nil {
		return 0, err
	}

	for _, unit := range units {
		j.logger.Warn("unit has missing rent payments",
			slog.Int64("unit_id", unit.UnitID),
			slog.String("unit_name", unit.UnitName),
			slog.String("property_name", unit.PropertyName),
			slog.Int("missing_months", len(unit.MissingPeriods)),
			slog.String("balance", unit.Balance.StringFixed(2)),
		)
	}
	return len(units), nil
}

// TenantBalances logs every active tenant owing rent and returns how many there are
func (j *Jobs) TenantBalances(ctx context.Context) (int, error) {
	tenants, err := j.reports.TenantsWithBalance(ctx)
	if err != nil {
		return 0, err
	}

	for _, tenant := range tenants {
		attrs := []any{
			slog.Int64("tenant_id", tenant.TenantID),
			slog.String("tenant_name", tenant.TenantName),
		}
		if tenant.LeaseSummary != nil {
			attrs = append(attrs,
				slog.Int64("lease_id", tenant.LeaseSummary.LeaseID),
				slog.String("balance", tenant.LeaseSummary.Balance.StringFixed(2)),
			)
		}
		j.logger.Info("tenant owes rent", attrs...)
	}
	return len(tenants), nil
}

// wrap adds the run lock, a timeout and logging around a sweep
func (j *Jobs) wrap(name string, run func(context.Context) (int, error)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		logger := j.logger.With(slog.String("job", name))

		if j.locker != nil {
			key := name + ":" + j.now().UTC().Format("2006-01-02T15")
			acquired, err := j.locker.Acquire(ctx, key, time.Hour)
			if err != nil {
				logger.Error("acquire job lock", slog.Any(logging.FieldError, err))
				return
			}
			if !acquired {
				logger.Info("job already ran on another instance")
				return
			}
		}

		start := j.now()
		count, err := run(ctx)
		if err != nil {
			logger.Error("job failed", slog.Any(logging.FieldError, err))
			return
		}
		logger.Info("job finished",
			slog.Int("matches", count),
			slog.Int64(logging.FieldDuration, j.now().Sub(start).Milliseconds()),
		)
	}
}
