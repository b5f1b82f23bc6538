package port

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelForIsDeterministic(t *testing.T) {
	assert.Equal(t, "new-message-notification.7", ChannelFor(7))
	assert.Equal(t, ChannelFor(42), ChannelFor(42))
}

func TestChannelForMatchesPattern(t *testing.T) {
	for _, id := range []int64{1, 12, 9000} {
		ok, err := path.Match(ChannelPattern, ChannelFor(id))
		assert.NoError(t, err)
		assert.True(t, ok, "channel %s", ChannelFor(id))
	}
}
