package systems

import (
	"fmt"
	"sort"
	"time"

	"github.com/flameline/ecs-core/internal/core/ecs"
	"github.com/prometheus/client_golang/prometheus"
)

// Scheduler runs a fixed set of Systems in priority order every tick, as a
// single ordered pass rather than a dependency graph with parallel groups.
// Systems are sorted once, at Register time, rather than re-sorted per tick.
type Scheduler struct {
	systems  []System
	duration *prometheus.HistogramVec
}

// SchedulerOption configures optional Scheduler behavior, mirroring
// ecs.ControllerOption.
type SchedulerOption func(*Scheduler)

// WithMetrics registers a per-system update-duration histogram with
// registerer, the same optional-metrics pattern ecs.WithMetrics uses for
// the entity gauge.
func WithMetrics(registerer prometheus.Registerer) SchedulerOption {
	return func(s *Scheduler) {
		s.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "ecs_system_update_seconds",
			Help: "Per-system Update duration, labeled by system name.",
		}, []string{"system"})
		if registerer != nil {
			registerer.MustRegister(s.duration)
		}
	}
}

// NewScheduler builds a Scheduler running systems in descending priority
// order. Two systems registered with equal priority run in the order they
// were passed in (sort.SliceStable).
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds system to the scheduler and re-sorts by priority.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)
	sort.SliceStable(s.systems, func(i, j int) bool {
		return s.systems[i].Priority() > s.systems[j].Priority()
	})
}

// Systems returns the scheduler's registered systems in run order.
func (s *Scheduler) Systems() []System { return s.systems }

// Tick runs every registered system once, in priority order, against c.
// It stops and returns the first error a system produces, naming which
// system failed so the caller doesn't have to guess from a bare error.
func (s *Scheduler) Tick(c *ecs.Controller, dt float64) error {
	for _, sys := range s.systems {
		start := time.Now()
		err := sys.Update(c, dt)
		if s.duration != nil {
			s.duration.WithLabelValues(sys.Name()).Observe(time.Since(start).Seconds())
		}
		if err != nil {
			return fmt.Errorf("system %q: %w", sys.Name(), err)
		}
	}
	return nil
}
