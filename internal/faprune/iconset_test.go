package faprune

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsedIconSet(t *testing.T) {
	s := NewUsedIconSet("car", " bus ", "fa-camera", "", "car")

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has("car"))
	assert.True(t, s.Has("bus"))
	assert.True(t, s.Has("camera"))
	assert.True(t, s.Has("fa-camera"))
	assert.True(t, s.Has(" fa-car "))
	assert.False(t, s.Has("Car"))
	assert.False(t, s.AllPossible())
	assert.Equal(t, []string{"bus", "camera", "car"}, s.Names())
}

func TestUsedIconSet_Sentinel(t *testing.T) {
	s := NewUsedIconSet("car")
	s.Add(PossiblyAll)

	assert.True(t, s.AllPossible())
	assert.True(t, s.Has(PossiblyAll))
	assert.Equal(t, 2, s.Len())
}

func TestUsedIconSet_Merge(t *testing.T) {
	a := NewUsedIconSet("car")
	a.Merge(NewUsedIconSet("bus", PossiblyAll))
	a.Merge(nil)

	assert.Equal(t, []string{PossiblyAll, "bus", "car"}, a.Names())
	assert.True(t, a.AllPossible())
}

func TestUsedIconSet_Nil(t *testing.T) {
	var s *UsedIconSet

	assert.False(t, s.Has("car"))
	assert.False(t, s.AllPossible())
	assert.Zero(t, s.Len())
	assert.Nil(t, s.Names())
}

func TestUsedIconSet_HasMatchesAdd(t *testing.T) {
	s := NewUsedIconSet("fa-car")

	assert.True(t, s.Has("fa-car"))
	assert.True(t, s.Has("car"))
	assert.False(t, s.Has("fa-bus"))
}
