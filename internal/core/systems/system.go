// Package systems provides the per-tick workers that drive an
// ecs.Controller's entities: movement integration, status-effect/health
// ticking, simple AI behavior, and the render-contract system the ebiten
// harness pulls a draw list from. Systems run as a single ordered pass
// rather than a dependency graph with parallel groups: nothing here needs
// to run concurrently, so there is nothing for a parallel-groups planner
// to partition.
package systems

import "github.com/flameline/ecs-core/internal/core/ecs"

// System is one scheduled unit of per-tick work. Priority determines
// execution order within a Scheduler: higher runs first.
type System interface {
	Name() string
	Priority() int
	Update(c *ecs.Controller, dt float64) error
}
