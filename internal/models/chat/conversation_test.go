package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	low, high := CanonicalPair("bbb", "aaa")
	assert.Equal(t, "aaa", low)
	assert.Equal(t, "bbb", high)

	low2, high2 := CanonicalPair("aaa", "bbb")
	assert.Equal(t, low, low2, "порядок аргументов не должен влиять на пару")
	assert.Equal(t, high, high2)
}

func TestConversation_Participants(t *testing.T) {
	c := &Conversation{UserLowID: "aaa", UserHighID: "bbb"}

	assert.True(t, c.HasParticipant("aaa"))
	assert.True(t, c.HasParticipant("bbb"))
	assert.False(t, c.HasParticipant("ccc"))

	assert.Equal(t, "bbb", c.OtherParticipant("aaa"))
	assert.Equal(t, "aaa", c.OtherParticipant("bbb"))
}
