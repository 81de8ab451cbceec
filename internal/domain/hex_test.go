package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexDistance(t *testing.T) {
	assert.Equal(t, 0, HexDistance(Axial{}, Axial{}))
	assert.Equal(t, 1, HexDistance(Axial{}, Axial{Q: 1, R: -1}))
	assert.Equal(t, 3, HexDistance(Axial{Q: -1, R: 0}, Axial{Q: 2, R: -1}))
}

func TestLineCoords_IsContiguous(t *testing.T) {
	coords := LineCoords(Axial{Q: -3, R: 1}, Axial{Q: 2, R: -2})
	assert.Equal(t, Axial{Q: -3, R: 1}, coords[0])
	assert.Equal(t, Axial{Q: 2, R: -2}, coords[len(coords)-1])
	for i := 1; i < len(coords); i++ {
		assert.Equal(t, 1, HexDistance(coords[i-1], coords[i]), "gap at %d", i)
	}
}

func TestExtend(t *testing.T) {
	assert.Equal(t, Axial{Q: 4, R: 0}, Extend(Axial{}, Axial{Q: 3, R: 0}, 1))
	assert.Equal(t, Axial{Q: 0, R: -3}, Extend(Axial{}, Axial{Q: 0, R: -2}, 1))
	assert.Equal(t, Axial{Q: 5, R: 5}, Extend(Axial{Q: 5, R: 5}, Axial{Q: 5, R: 5}, 1))
}
