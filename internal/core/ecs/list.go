package ecs

import "reflect"

// Oracle is a pure function from a component type to "is this type in the
// entity's full component set". Predicates are built in terms of an Oracle
// so they never need a reference to the entity itself.
type Oracle func(reflect.Type) bool

// Predicate decides whether an entity belongs to a given list. It is
// supplied once per list at Controller.Configure time.
type Predicate func(Oracle) bool

// ListHandle names a list within a controller. It is the list's index in
// the controller's list slice, assigned once at Configure and never
// renumbered.
type ListHandle int

// listNode is a trio (prev, next, entity back-pointer), co-allocated with
// the entity it belongs to (see Entity.nodes). A non-sentinel node's entity
// is always non-nil; the sentinel's is nil.
type listNode struct {
	prev, next *listNode
	entity     *Entity
}

func (n *listNode) isSentinel() bool { return n.entity == nil }

// List is an ordered, circular, doubly-linked sequence of entities sharing
// a fixed predicate, exposed as a sentinel-headed ring.
type List struct {
	handle    ListHandle
	predicate Predicate
	head      listNode
	size      int
}

func newList(handle ListHandle, predicate Predicate) *List {
	l := &List{handle: handle, predicate: predicate}
	l.head.next = &l.head
	l.head.prev = &l.head
	return l
}

// Handle returns this list's stable handle.
func (l *List) Handle() ListHandle { return l.handle }

// Len returns the number of entities currently linked into this list.
func (l *List) Len() int { return l.size }

// linkTail splices node immediately before the sentinel (tail insertion).
func (l *List) linkTail(n *listNode) {
	last := l.head.prev
	n.prev = last
	n.next = &l.head
	last.next = n
	l.head.prev = n
	l.size++
}

// unlink removes n from whatever list it is part of. It is a no-op if n's
// neighbors are itself (already unlinked).
func (n *listNode) unlink(l *List) {
	if n.prev == n && n.next == n {
		return
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev = n
	n.next = n
	l.size--
}

// Each iterates forward from head to tail, calling fn for each entity.
// Iteration stops early if fn returns false. Destroying the entity fn is
// currently visiting is safe; only that cursor position is invalidated.
func (l *List) Each(fn func(*Entity) bool) {
	for n := l.head.next; n != &l.head; {
		next := n.next
		if !fn(n.entity) {
			return
		}
		n = next
	}
}

// EachReverse iterates from tail to head.
func (l *List) EachReverse(fn func(*Entity) bool) {
	for n := l.head.prev; n != &l.head; {
		prev := n.prev
		if !fn(n.entity) {
			return
		}
		n = prev
	}
}

// Iterator is an explicit forward cursor over a list, mirroring the
// original's iterator object for callers that prefer a loop to a callback.
type Iterator struct {
	list *List
	node *listNode
}

// Iterator returns a cursor positioned before the first entity.
func (l *List) Iterator() *Iterator { return &Iterator{list: l, node: &l.head} }

// Next advances the cursor and reports whether it now points at a live
// entity (false once the sentinel is reached again).
func (it *Iterator) Next() bool {
	it.node = it.node.next
	return !it.node.isSentinel()
}

// Entity dereferences the cursor. It panics if called before Next or after
// Next returned false — dereferencing the sentinel is never valid.
func (it *Iterator) Entity() *Entity {
	if it.node.isSentinel() {
		panic("ecs: dereferenced sentinel list node")
	}
	return it.node.entity
}

// ReverseIterator is the mirror image of Iterator, walking tail to head.
type ReverseIterator struct {
	list *List
	node *listNode
}

// ReverseIterator returns a cursor positioned after the last entity.
func (l *List) ReverseIterator() *ReverseIterator { return &ReverseIterator{list: l, node: &l.head} }

func (it *ReverseIterator) Next() bool {
	it.node = it.node.prev
	return !it.node.isSentinel()
}

func (it *ReverseIterator) Entity() *Entity {
	if it.node.isSentinel() {
		panic("ecs: dereferenced sentinel list node")
	}
	return it.node.entity
}
