package planstate_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranavkm07/finance_plan_app/internal/planstate"
)

var entityIDPattern = regexp.MustCompile(`^income-\d+-[0-9a-z]{9}$`)

func TestNewEntityID_Format(t *testing.T) {
	id := planstate.NewEntityID("income")
	assert.Regexp(t, entityIDPattern, id)
}

func TestNewEntityID_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := planstate.NewEntityID("goal")
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
