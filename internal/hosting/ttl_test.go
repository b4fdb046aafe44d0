package hosting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache(t *testing.T) {
	c := newTTLCache[string, string]()
	c.set("spinnaker", "kork-maintainers", 200*time.Millisecond)
	v, ok := c.get("spinnaker")
	assert.True(t, ok)
	assert.Equal(t, "kork-maintainers", v)

	_, ok = c.get("netflix")
	assert.False(t, ok)

	time.Sleep(250 * time.Millisecond)
	v, ok = c.get("spinnaker")
	assert.False(t, ok)
	assert.Equal(t, "", v)
}
