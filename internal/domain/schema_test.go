package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidate(t *testing.T) {
	require.NoError(t, threeCardSchema().Validate())
	require.NoError(t, singleCardSchema().Validate())

	bad := threeCardSchema()
	bad.Positions[2].ID = 1
	assert.Error(t, bad.Validate(), "duplicate position id")

	bad = threeCardSchema()
	bad.OpenOrder = []int{1, 2}
	assert.Error(t, bad.Validate(), "short open order")

	bad = threeCardSchema()
	bad.OpenOrder = []int{1, 2, 2}
	assert.Error(t, bad.Validate(), "repeated open order entry")

	bad = threeCardSchema()
	bad.OpeningRule = "sideways"
	assert.Error(t, bad.Validate(), "unknown opening rule")

	bad = threeCardSchema()
	bad.CardCount = 0
	assert.Error(t, bad.Validate(), "zero card count")
}

func TestStageNext(t *testing.T) {
	next, ok := StageFan.Next()
	require.True(t, ok)
	assert.Equal(t, StageCollecting, next)

	_, ok = StageAwaitOpen.Next()
	assert.False(t, ok, "await_open has no timeline successor")

	_, ok = StageDone.Next()
	assert.False(t, ok)
}
