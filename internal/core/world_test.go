package core

import (
	"testing"

	"github.com/flameline/ecs-core/internal/core/config"
	"github.com/flameline/ecs-core/internal/core/ecs"
	"github.com/flameline/ecs-core/internal/core/ecs/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewWorld_BuildsControllerWithFiveConfiguredLists(t *testing.T) {
	// Act
	w, err := NewWorld(nil)

	// Assert
	require.NoError(t, err)
	_, err = w.Controller.List(ListRenderable)
	assert.NoError(t, err)
}

func Test_World_Tick_DrivesAIAndCollectsDrawList(t *testing.T) {
	w, err := NewWorld(nil, WithChaseTarget(func() components.Vector2 { return components.Vector2{X: 10} }))
	require.NoError(t, err)

	tmpl, err := w.Controller.MakeTemplate(
		ecs.TypeOf[components.Transform](),
		ecs.TypeOf[components.AI](),
		ecs.TypeOf[components.Sprite](),
	)
	require.NoError(t, err)
	e, err := w.Controller.Create(tmpl, components.AI{DetectionRadius: 100, AttackRange: 1, Speed: 3})
	require.NoError(t, err)

	require.NoError(t, w.Tick(1))

	ai := ecs.MustGet[components.AI](e)
	assert.Equal(t, components.AIChase, ai.State)

	drawn := w.DrawList()
	require.Len(t, drawn, 1)
}

func Test_World_Tick_WithoutInitialStateLeavesNoCurrentState(t *testing.T) {
	w, err := NewWorld(nil)
	require.NoError(t, err)

	require.NoError(t, w.Tick(1))

	assert.Nil(t, w.States.Current())
}

func Test_NewWorld_WithAllocatorPoolSizeCreatesEntities(t *testing.T) {
	w, err := NewWorld(&config.WorldConfig{AllocatorPoolSize: 16})

	require.NoError(t, err)
	tmpl, err := w.Controller.MakeTemplate(ecs.TypeOf[components.Health]())
	require.NoError(t, err)
	_, err = w.Controller.Create(tmpl)
	require.NoError(t, err)
}
