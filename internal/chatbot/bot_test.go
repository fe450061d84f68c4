package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBot(t *testing.T) *Bot {
	t.Helper()
	b, err := New()
	require.NoError(t, err)
	return b
}

func TestRespond_Greeting(t *testing.T) {
	b := newBot(t)
	r := b.Respond("hello!")
	assert.NotEmpty(t, r.Text)
	assert.False(t, r.Handover)
	assert.Empty(t, r.Category)
}

func TestRespond_KnowledgeBeatsGreeting(t *testing.T) {
	b := newBot(t)
	r := b.Respond("hi, how do I track my order?")
	assert.Equal(t, "orders", r.Category)
	assert.Contains(t, r.Text, "order reference")
}

func TestRespond_Handover(t *testing.T) {
	b := newBot(t)
	r := b.Respond("I want to talk to a human agent please")
	assert.True(t, r.Handover)
}

func TestRespond_BestKeywordMatchWins(t *testing.T) {
	b := newBot(t)
	// Two shipping keywords beat one payment keyword.
	r := b.Respond("how much is the shipping fee if I pay cash")
	assert.Equal(t, "shipping", r.Category)
}

func TestRespond_Fallback(t *testing.T) {
	b := newBot(t)
	r := b.Respond("xyzzy plugh")
	assert.False(t, r.Handover)
	assert.Empty(t, r.Category)
	assert.NotEmpty(t, r.Text)

	r = b.Respond("   ")
	assert.NotEmpty(t, r.Text)
}

func TestTopics(t *testing.T) {
	b := newBot(t)
	topics := b.Topics()
	assert.Contains(t, topics, "orders")
	assert.Contains(t, topics, "shipping")
	assert.Contains(t, topics, "products")
}
