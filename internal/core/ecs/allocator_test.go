package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_HeapAllocator_AllocateProducesSizedStorage(t *testing.T) {
	// Arrange
	var a heapAllocator

	// Act
	s, err := a.Allocate(3, 2)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, s.Components, 0)
	assert.Len(t, s.Nodes, 2)
}

func Test_HeapAllocator_DeallocateIsNoOp(t *testing.T) {
	// Arrange
	var a heapAllocator
	s, _ := a.Allocate(1, 1)

	// Act & Assert: must not panic and must not clear storage.
	assert.NotPanics(t, func() { a.Deallocate(s) })
	assert.NotNil(t, s.Nodes)
}

func Test_PoolAllocator_ServesFromPoolUntilExhausted(t *testing.T) {
	// Arrange
	p := NewPoolAllocator(2, nil)

	// Act
	s1, err1 := p.Allocate(0, 1)
	s2, err2 := p.Allocate(0, 1)
	s3, err3 := p.Allocate(0, 1)

	// Assert
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.NoError(t, err3)
	stats := p.Stats()
	assert.Equal(t, 2, stats.Capacity)
	assert.Equal(t, 3, stats.Used)
	assert.Equal(t, 0, stats.Available)
}

func Test_PoolAllocator_DeallocateReturnsSlotToPool(t *testing.T) {
	// Arrange
	p := NewPoolAllocator(1, nil)
	s, _ := p.Allocate(0, 1)

	// Act
	p.Deallocate(s)

	// Assert
	stats := p.Stats()
	assert.Equal(t, 0, stats.Used)
	assert.Equal(t, 1, stats.Available)
	assert.Nil(t, s.Components)
	assert.Nil(t, s.Nodes)
}

func Test_PoolAllocator_DeallocateNilIsNoOp(t *testing.T) {
	// Arrange
	p := NewPoolAllocator(1, nil)

	// Act & Assert
	assert.NotPanics(t, func() { p.Deallocate(nil) })
}

func Test_PoolAllocator_ReusedSlotGetsFreshComponentsAndNodes(t *testing.T) {
	// Arrange
	p := NewPoolAllocator(1, nil)
	s1, _ := p.Allocate(2, 1)
	p.Deallocate(s1)

	// Act
	s2, _ := p.Allocate(2, 3)

	// Assert
	assert.Len(t, s2.Nodes, 3)
	assert.NotNil(t, s2.Components)
}
