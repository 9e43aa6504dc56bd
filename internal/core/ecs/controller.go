package ecs

import (
	"reflect"

	"github.com/gofrs/uuid/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Controller owns a fixed configuration of list predicates and, per
// instance, the lists and entities that configuration produces. It does
// not own entities by pointer: it owns them transitively via the lists,
// since every live entity belongs to at least one list.
type Controller struct {
	sessionID uuid.UUID

	configured bool
	lists      []*List
	defaults   []reflect.Type

	allocator Allocator
	cache     *templateCache

	count      int
	entityGuge prometheus.Gauge
}

// NewController creates an unconfigured controller using the default
// heap allocator. Call Configure before creating any entities.
func NewController(opts ...ControllerOption) *Controller {
	id, _ := uuid.NewV4()
	c := &Controller{
		sessionID: id,
		allocator: heapAllocator{},
		cache:     newTemplateCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ControllerOption configures optional Controller behavior.
type ControllerOption func(*Controller)

// WithAllocator overrides the default per-entity heap allocator.
func WithAllocator(a Allocator) ControllerOption {
	return func(c *Controller) { c.allocator = a }
}

// WithDefaultComponents declares components every entity in this
// controller carries regardless of what is passed to MakeTemplate.
func WithDefaultComponents(types ...reflect.Type) ControllerOption {
	return func(c *Controller) { c.defaults = append(c.defaults, types...) }
}

// WithMetrics registers a Prometheus gauge tracking live entity count under
// registerer. Safe to omit; metrics are purely observational.
func WithMetrics(registerer prometheus.Registerer) ControllerOption {
	return func(c *Controller) {
		c.entityGuge = prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "ecs_controller_entities",
			Help:        "Live entity count for one controller instance.",
			ConstLabels: prometheus.Labels{},
		})
		if registerer != nil {
			registerer.MustRegister(c.entityGuge)
		}
	}
}

// SessionID returns the controller's session-correlation UUID, used for
// log/metric correlation rather than entity identity.
func (c *Controller) SessionID() uuid.UUID { return c.sessionID }

// Configure installs the ordered list predicates for this controller. It
// may be called exactly once; reconfiguring a configured controller, or
// configuring with zero predicates, fails.
func (c *Controller) Configure(predicates ...Predicate) error {
	if c.configured {
		return newECSError(ErrAlreadyConfigured, "controller is already configured")
	}
	if len(predicates) == 0 {
		return newECSError(ErrZeroLists, "controller must be configured with at least one list")
	}
	c.lists = make([]*List, len(predicates))
	for i, p := range predicates {
		c.lists[i] = newList(ListHandle(i), p)
	}
	c.configured = true
	return nil
}

// MakeTemplate solves the full component set for components, evaluates
// every configured predicate against it, and caches the (handles) result
// keyed by the solved set. It refuses a result matching zero lists.
func (c *Controller) MakeTemplate(components ...reflect.Type) (*Template, error) {
	if !c.configured {
		return nil, newECSError(ErrListNotConfigured, "controller has not been configured")
	}

	full, err := Solve(c.defaults, components...)
	if err != nil {
		return nil, err
	}

	key := canonicalKey(full)
	if cached, ok := c.cache.get(key); ok {
		return cached, nil
	}

	oracle := func(full []reflect.Type) Oracle {
		set := make(map[reflect.Type]bool, len(full))
		for _, t := range full {
			set[t] = true
		}
		return func(t reflect.Type) bool { return set[t] }
	}(full)

	var handles []ListHandle
	for _, l := range c.lists {
		if l.predicate(oracle) {
			handles = append(handles, l.handle)
		}
	}
	if len(handles) == 0 {
		return nil, newECSError(ErrNoMatchingLists, "component combination matches no configured list")
	}

	tmpl := &Template{full: full, handles: handles}
	c.cache.put(key, tmpl)
	return tmpl, nil
}

// Create builds a new entity from tmpl, applying any caller-supplied
// component overrides, and splices it into every list tmpl matched. An
// override whose type matches no component in tmpl, or more than one
// override of the same type, panics — this is construction-time misuse, not
// a recoverable runtime condition.
func (c *Controller) Create(tmpl *Template, overrides ...any) (*Entity, error) {
	storage, err := c.allocator.Allocate(len(tmpl.full), len(tmpl.handles))
	if err != nil {
		return nil, &ECSError{Code: ErrAllocationFailed, Message: err.Error()}
	}

	succeeded := false
	defer func() {
		if !succeeded {
			c.allocator.Deallocate(storage)
		}
	}()

	matched := make(map[reflect.Type]bool, len(overrides))
	for _, t := range tmpl.full {
		storage.Components[t] = zeroOrMatchingOverride(t, overrides, matched)
	}
	assertOverridesConsumed(overrides, matched)

	e := &Entity{controller: c, components: storage.Components, nodes: storage.Nodes}

	for i, h := range tmpl.handles {
		node := &e.nodes[i]
		node.entity = e
		c.lists[h].linkTail(node)
	}

	c.count++
	if c.entityGuge != nil {
		c.entityGuge.Set(float64(c.count))
	}
	succeeded = true
	return e, nil
}

func zeroOrMatchingOverride(t reflect.Type, overrides []any, matched map[reflect.Type]bool) reflect.Value {
	var found reflect.Value
	matchCount := 0
	for _, o := range overrides {
		ov := reflect.ValueOf(o)
		if ov.Type() == t {
			found = ov
			matchCount++
		}
	}
	if matchCount > 1 {
		panic(&ComponentError{Message: "more than one override provided for component", Type: t})
	}
	if matchCount == 1 {
		matched[t] = true
		return found
	}
	if ci := lookupComponent(t); ci != nil && ci.defaultFn != nil {
		return reflect.ValueOf(ci.defaultFn())
	}
	return reflect.New(t).Elem()
}

func assertOverridesConsumed(overrides []any, matched map[reflect.Type]bool) {
	for _, o := range overrides {
		t := reflect.TypeOf(o)
		if !matched[t] {
			panic(&ComponentError{Message: "override matches no component in the full set", Type: t})
		}
	}
}

// Destroy unlinks e from every list it belongs to, releases its storage
// back to the allocator, and decrements the entity count. Destroying an
// already-destroyed entity is a no-op.
func (c *Controller) Destroy(e *Entity) error {
	c.destroyEntityNodes(e)
	return nil
}

// DestroyListed destroys every entity currently in the list named by
// handle.
func (c *Controller) DestroyListed(handle ListHandle) error {
	l, err := c.List(handle)
	if err != nil {
		return err
	}
	l.Each(func(e *Entity) bool {
		c.destroyEntityNodes(e)
		return true
	})
	return nil
}

// DestroyAllEntities walks list 0's entities first, advancing before
// destroying (since destruction unlinks the current node), then list 1's
// remaining entities, and so on. Because every entity belongs to every
// list whose predicate matches it, and to at least one list, this destroys
// each entity exactly once.
func (c *Controller) DestroyAllEntities() error {
	for _, l := range c.lists {
		l.Each(func(e *Entity) bool {
			c.destroyEntityNodes(e)
			return true
		})
	}
	return nil
}

// destroyEntityNodes unlinks e from every list-node it owns, then releases
// its storage. This is the real destruction path; Destroy/DestroyListed/
// DestroyAllEntities all funnel through it.
func (c *Controller) destroyEntityNodes(e *Entity) {
	if e.destroyed {
		return
	}
	for i := range e.nodes {
		node := &e.nodes[i]
		l := c.listContaining(node)
		if l != nil {
			node.unlink(l)
		}
	}
	c.allocator.Deallocate(&Storage{Components: e.components, Nodes: e.nodes})
	e.destroyed = true
	e.components = nil
	e.nodes = nil
	c.count--
	if c.entityGuge != nil {
		c.entityGuge.Set(float64(c.count))
	}
}

// listContaining returns the list a node was spliced into. Nodes don't
// carry their own list back-pointer, so this walks each controller list's
// nodes in turn until it finds n.
func (c *Controller) listContaining(n *listNode) *List {
	for _, l := range c.lists {
		if nodeIsInList(n, l) {
			return l
		}
	}
	return nil
}

func nodeIsInList(n *listNode, l *List) bool {
	for cur := l.head.next; cur != &l.head; cur = cur.next {
		if cur == n {
			return true
		}
	}
	return false
}

// List returns the list named by handle.
func (c *Controller) List(handle ListHandle) (*List, error) {
	if handle < 0 || int(handle) >= len(c.lists) {
		return nil, newECSError(ErrListNotConfigured, "list handle out of range")
	}
	return c.lists[handle], nil
}

// GetOne returns the single entity in the named list, failing if it holds
// zero or more than one entity.
func (c *Controller) GetOne(handle ListHandle) (*Entity, error) {
	l, err := c.List(handle)
	if err != nil {
		return nil, err
	}
	if l.Len() == 0 {
		return nil, newECSError(ErrCardinalityNone, "list is empty")
	}
	if l.Len() > 1 {
		return nil, newECSError(ErrCardinalityMany, "list holds more than one entity")
	}
	return l.head.next.entity, nil
}

// GetAtLeastOne returns the first entity in the named list, failing if it
// is empty.
func (c *Controller) GetAtLeastOne(handle ListHandle) (*Entity, error) {
	l, err := c.List(handle)
	if err != nil {
		return nil, err
	}
	if l.Len() == 0 {
		return nil, newECSError(ErrCardinalityNone, "list is empty")
	}
	return l.head.next.entity, nil
}

// GetAtMostOne returns the single entity in the named list, or nil if it is
// empty, failing only if it holds more than one entity.
func (c *Controller) GetAtMostOne(handle ListHandle) (*Entity, error) {
	l, err := c.List(handle)
	if err != nil {
		return nil, err
	}
	if l.Len() > 1 {
		return nil, newECSError(ErrCardinalityMany, "list holds more than one entity")
	}
	if l.Len() == 0 {
		return nil, nil
	}
	return l.head.next.entity, nil
}

// EntityCount returns the number of live entities owned by this controller.
func (c *Controller) EntityCount() int { return c.count }
