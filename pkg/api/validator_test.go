package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathPayload_Validate(t *testing.T) {
	step := []CoordView{{Q: 1, R: 0}}

	assert.NoError(t, PathPayload{Path: step}.Validate())
	assert.NoError(t, PathPayload{Path: step, Limit: 1}.Validate())
	assert.Error(t, PathPayload{}.Validate())
	assert.Error(t, PathPayload{Path: step, Limit: -1}.Validate())
	assert.Error(t, PathPayload{Path: make([]CoordView, maxPathLength+1)}.Validate())
}
