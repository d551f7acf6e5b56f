package fulfillment

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Reconciler menjalankan ProcessPendingOrders tiap interval sampai
// context dibatalkan. Pass yang sedang jalan dibiarkan selesai.
type Reconciler struct {
	coord    *Coordinator
	interval time.Duration
	log      *zap.Logger
}

func NewReconciler(c *Coordinator, interval time.Duration, log *zap.Logger) *Reconciler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Reconciler{coord: c, interval: interval, log: log}
}

// Run blocking; return nil saat ctx dibatalkan (cocok untuk errgroup).
func (r *Reconciler) Run(ctx context.Context) error {
	r.log.Info("fulfillment reconciler started", zap.Duration("interval", r.interval))
	t := time.NewTicker(r.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("fulfillment reconciler stopped")
			return nil
		case <-t.C:
			r.Tick(ctx)
		}
	}
}

// Tick: satu pass reconcile. Dipisah supaya test bisa men-drive satu
// pass tanpa menunggu timer. Apa pun yang lolos dari
// ProcessPendingOrders (harusnya tidak ada) ditangkap di sini; loop
// tidak boleh mati.
func (r *Reconciler) Tick(ctx context.Context) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("reconcile pass panicked", zap.Any("panic", p))
		}
	}()
	r.coord.ProcessPendingOrders(ctx)
}
