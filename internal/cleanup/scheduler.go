package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Expirer drops per-session state unused for idle and returns the session ids.
type Expirer interface {
	Expire(idle time.Duration) []string
}

type Scheduler struct {
	targets  map[string]Expirer
	idle     time.Duration
	interval time.Duration
	log      *zap.Logger
	stopCh   chan struct{}
}

// NewScheduler sweeps every target each interval, dropping sessions idle longer than idle.
func NewScheduler(targets map[string]Expirer, idle, interval time.Duration, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		targets:  targets,
		idle:     idle,
		interval: interval,
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

// Start запускает очистку в отдельной горутине
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info("starting session cleanup scheduler",
		zap.Duration("idle", s.idle),
		zap.Duration("interval", s.interval),
	)
	go s.run(ctx)
}

// Stop останавливает планировщик
func (s *Scheduler) Stop() {
	s.log.Info("stopping session cleanup scheduler")
	close(s.stopCh)
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunOnceNow()
		case <-s.stopCh:
			s.log.Info("session cleanup stopped")
			return
		case <-ctx.Done():
			s.log.Info("session cleanup cancelled")
			return
		}
	}
}

// RunOnceNow выполняет одну очистку немедленно и возвращает число удалённых сессий по целям
func (s *Scheduler) RunOnceNow() map[string]int {
	out := make(map[string]int, len(s.targets))
	for name, t := range s.targets {
		n := len(t.Expire(s.idle))
		out[name] = n
		if n > 0 {
			s.log.Info("expired idle sessions", zap.String("target", name), zap.Int("count", n))
		}
	}
	return out
}
