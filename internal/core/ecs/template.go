package ecs

import (
	"reflect"
	"sync"
)

// Template caches, for one full component set, which list handles match.
// Repeated creations of the same shape skip the per-list predicate scan.
type Template struct {
	full    []reflect.Type
	handles []ListHandle
}

// Components returns the template's full (solved) component set.
func (t *Template) Components() []reflect.Type { return t.full }

// Handles returns the list handles this template's shape matches.
func (t *Template) Handles() []ListHandle { return t.handles }

// templateCache memoizes Templates by canonical component-set key, the
// default cache every Controller carries internally.
type templateCache struct {
	mu   sync.RWMutex
	byID map[string]*Template
}

func newTemplateCache() *templateCache {
	return &templateCache{byID: map[string]*Template{}}
}

func (c *templateCache) get(key string) (*Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.byID[key]
	return t, ok
}

func (c *templateCache) put(key string, t *Template) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID[key] = t
}
