package flagging

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/acme/todoflag/internal/todo"
	"github.com/acme/todoflag/internal/websocket"
)

// Scheduler periodically runs the reconciliation sweep and the completed-todo
// cleanup on independent intervals. At most one tick handler runs at a time.
type Scheduler struct {
	mu              sync.RWMutex
	reconciler      *Reconciler
	todos           *todo.Service
	hub             *websocket.Hub
	sweepInterval   time.Duration
	cleanupInterval time.Duration
	logger          *slog.Logger
	cancel          context.CancelFunc
	done            chan struct{}
}

// NewScheduler creates a scheduler. Non-positive intervals fall back to a
// minute for sweeps and an hour for cleanup.
func NewScheduler(r *Reconciler, ts *todo.Service, hub *websocket.Hub, sweepInterval, cleanupInterval time.Duration, logger *slog.Logger) *Scheduler {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	if cleanupInterval <= 0 {
		cleanupInterval = time.Hour
	}
	return &Scheduler{
		reconciler:      r,
		todos:           ts,
		hub:             hub,
		sweepInterval:   sweepInterval,
		cleanupInterval: cleanupInterval,
		logger:          logger,
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		sweep := time.NewTicker(s.sweepInterval)
		defer sweep.Stop()
		cleanup := time.NewTicker(s.cleanupInterval)
		defer cleanup.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-sweep.C:
				s.runSweep()
			case <-cleanup.C:
				s.runCleanup()
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) runSweep() {
	if err := s.reconciler.Run(); err != nil {
		s.logger.Error("reconciliation sweep", "error", err)
	}
}

func (s *Scheduler) runCleanup() {
	numDeleted, err := s.todos.DeleteCompleted()
	if err != nil {
		s.logger.Error("cleanup completed todos", "error", err)
		return
	}
	if numDeleted == 0 {
		return
	}
	s.logger.Info("cleanup completed todos", "num_deleted", numDeleted)
	if s.hub != nil {
		s.hub.Broadcast(websocket.NewMessage("todo", "cleanup", "", map[string]any{
			"num_deleted": numDeleted,
		}))
	}
}
