package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dossierlab/dossier/pkg/stats"
)

func TestMostCommonOrdering(t *testing.T) {
	c := stats.NewCounter[string]()
	for _, k := range []string{"b", "a", "a", "c", "b"} {
		c.Add(k)
	}

	got := c.MostCommon(0)
	// a and b tie at 2; b was seen first so it ranks first.
	want := []stats.Entry[string]{
		{Key: "b", Count: 2},
		{Key: "a", Count: 2},
		{Key: "c", Count: 1},
	}
	assert.Equal(t, want, got)
}

func TestMostCommonCap(t *testing.T) {
	c := stats.NewCounter[string]()
	c.AddN("x", 3)
	c.AddN("y", 2)
	c.AddN("z", 1)

	got := c.MostCommon(2)
	assert.Len(t, got, 2)
	assert.Equal(t, "x", got[0].Key)
	assert.Equal(t, "y", got[1].Key)
}

func TestCounterGet(t *testing.T) {
	c := stats.NewCounter[int]()
	c.Add(7)
	c.Add(7)
	assert.Equal(t, 2, c.Get(7))
	assert.Equal(t, 0, c.Get(99))
	assert.Equal(t, 1, c.Len())
}
