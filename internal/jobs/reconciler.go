package jobs

import (
	"context"
	"fmt"
	"time"

	"cricket-registration-backend/internal/logger"

	"github.com/go-co-op/gocron/v2"
)

const defaultRunTimeout = time.Minute

// OrderExpirer fails registrations whose payment order went stale
type OrderExpirer interface {
	ExpireStaleOrders(ctx context.Context) (int64, error)
}

// Reconciler periodically fails pending payments whose order was abandoned,
// so the team can open a new order.
type Reconciler struct {
	scheduler gocron.Scheduler
	expirer   OrderExpirer
	interval  time.Duration
	timeout   time.Duration
}

// NewReconciler creates a reconciler running every interval
func NewReconciler(expirer OrderExpirer, interval time.Duration) (*Reconciler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("reconcile interval must be positive")
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	timeout := defaultRunTimeout
	if interval < timeout {
		timeout = interval
	}
	return &Reconciler{
		scheduler: scheduler,
		expirer:   expirer,
		interval:  interval,
		timeout:   timeout,
	}, nil
}

// Start registers the job and starts the scheduler. The first run happens immediately.
func (r *Reconciler) Start() error {
	_, err := r.scheduler.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
			defer cancel()
			_, _ = r.RunOnce(ctx)
		}),
		gocron.WithName("expire-stale-orders"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule reconciler: %w", err)
	}

	r.scheduler.Start()
	logger.New().WithField("interval", r.interval.String()).Info("payment reconciler started")
	return nil
}

// RunOnce expires stale orders. The expirer logs how many it expired; only
// failures are logged here.
func (r *Reconciler) RunOnce(ctx context.Context) (int64, error) {
	expired, err := r.expirer.ExpireStaleOrders(ctx)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("failed to expire stale payment orders")
		return 0, err
	}
	return expired, nil
}

// Stop waits for a running job and shuts the scheduler down
func (r *Reconciler) Stop() error {
	return r.scheduler.Shutdown()
}
