package rdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMetrics_AssignsRunID(t *testing.T) {
	m := NewMetrics()
	assert.NotEmpty(t, m.RunID.String())

	other := NewMetrics()
	assert.NotEqual(t, m.RunID, other.RunID, "two NewMetrics calls should not collide on run identifier")
}

func TestMetrics_Print_DoesNotPanicWithoutArrivalGaps(t *testing.T) {
	m := NewMetrics()
	m.Print(DefaultOptions())
}

func TestMetrics_Print_DoesNotPanicWithArrivalGaps(t *testing.T) {
	m := NewMetrics()
	m.ArrivalGaps = []float64{10, 20, 15, 5}
	m.Print(DefaultOptions())
}
