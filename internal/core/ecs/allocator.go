package ecs

import (
	"reflect"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Storage is a single entity's allocation: the component values keyed by
// type, and the node slots for whichever lists the entity will be spliced
// into. Allocator hands these out and takes them back as one unit, the Go
// rendering of "one contiguous block holding the entity's components and
// one intrusive list-node per list."
type Storage struct {
	Components map[reflect.Type]reflect.Value
	Nodes      []listNode
}

// Allocator requests and releases entity Storage. Allocate may fail (the
// allocators in this package never do: PoolAllocator grows past its
// capacity); Deallocate never fails and treats a nil Storage as a
// no-op, so callers can release unconditionally without a nil check.
type Allocator interface {
	Allocate(componentCount, nodeCount int) (*Storage, error)
	Deallocate(*Storage)
}

// heapAllocator is the default Allocator: every entity gets a fresh Go
// allocation, reclaimed by the garbage collector on Deallocate. This is the
// correct choice absent a measured reason to pool, and is what every
// created Controller uses unless a PoolAllocator is supplied.
type heapAllocator struct{}

func (heapAllocator) Allocate(componentCount, nodeCount int) (*Storage, error) {
	return &Storage{
		Components: make(map[reflect.Type]reflect.Value, componentCount),
		Nodes:      make([]listNode, nodeCount),
	}, nil
}

func (heapAllocator) Deallocate(*Storage) {}

// PoolAllocator pre-allocates a fixed number of Storage slots and recycles
// them, trading flexibility for predictable allocation latency. Slots are
// per-entity storage rather than per-component-type, and usage is exported
// to Prometheus rather than a hand-rolled statistics struct.
type PoolAllocator struct {
	mu        sync.Mutex
	capacity  int
	available []*Storage
	used      int

	hits   prometheus.Counter
	misses prometheus.Counter
	inUse  prometheus.Gauge
}

// NewPoolAllocator pre-allocates capacity empty Storage slots. Slots are
// grown lazily (falling back to a fresh allocation, counted as a miss) once
// the pool is exhausted, rather than failing outright — unlike the original
// C++ allocator contract, Go's GC makes "just allocate more" cheap enough
// that capacity is a performance hint, not a hard ceiling.
func NewPoolAllocator(capacity int, registerer prometheus.Registerer) *PoolAllocator {
	p := &PoolAllocator{
		capacity:  capacity,
		available: make([]*Storage, 0, capacity),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecs_allocator_pool_hits_total",
			Help: "Entity storage slots served from the pre-allocated pool.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecs_allocator_pool_misses_total",
			Help: "Entity storage slots allocated fresh because the pool was empty.",
		}),
		inUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ecs_allocator_pool_in_use",
			Help: "Entity storage slots currently checked out of the pool.",
		}),
	}
	for i := 0; i < capacity; i++ {
		p.available = append(p.available, &Storage{})
	}
	if registerer != nil {
		registerer.MustRegister(p.hits, p.misses, p.inUse)
	}
	return p
}

func (p *PoolAllocator) Allocate(componentCount, nodeCount int) (*Storage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var s *Storage
	if n := len(p.available); n > 0 {
		s = p.available[n-1]
		p.available = p.available[:n-1]
		p.hits.Inc()
	} else {
		s = &Storage{}
		p.misses.Inc()
	}

	s.Components = make(map[reflect.Type]reflect.Value, componentCount)
	s.Nodes = make([]listNode, nodeCount)
	p.used++
	p.inUse.Set(float64(p.used))
	return s, nil
}

func (p *PoolAllocator) Deallocate(s *Storage) {
	if s == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	s.Components = nil
	s.Nodes = nil
	p.available = append(p.available, s)
	p.used--
	p.inUse.Set(float64(p.used))
}

// Stats reports a point-in-time snapshot of pool usage.
type PoolStats struct {
	Capacity  int
	Used      int
	Available int
}

func (p *PoolAllocator) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PoolStats{Capacity: p.capacity, Used: p.used, Available: len(p.available)}
}
