// Package chatbot answers common storefront questions from a keyword-scored
// knowledge base and hands conversations to staff on request.
package chatbot

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var knowledgeYAML []byte

type Entry struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
	Question string   `yaml:"question"`
	Answer   string   `yaml:"answer"`
}

type knowledge struct {
	Entries         []Entry           `yaml:"entries"`
	Greetings       []string          `yaml:"greetings"`
	Goodbyes        []string          `yaml:"goodbyes"`
	Handover        []string          `yaml:"handover"`
	GreetingReply   string            `yaml:"greeting_reply"`
	GoodbyeReply    string            `yaml:"goodbye_reply"`
	HandoverReply   string            `yaml:"handover_reply"`
	FallbackReply   string            `yaml:"fallback_reply"`
	CategoryPrompts map[string]string `yaml:"category_prompts"`
}

// Reply is the bot's answer to one message.
type Reply struct {
	Text string `json:"text"`
	// Category is the matched topic, empty for greetings and fallbacks.
	Category string `json:"category,omitempty"`
	// Handover is true when the customer asked for a human and the session
	// should be queued for staff.
	Handover bool `json:"handover"`
	// FollowUp is an optional contextual prompt for the matched category.
	FollowUp string `json:"follow_up,omitempty"`
}

type Bot struct {
	kb knowledge
}

func New() (*Bot, error) {
	var kb knowledge
	if err := yaml.Unmarshal(knowledgeYAML, &kb); err != nil {
		return nil, err
	}
	return &Bot{kb: kb}, nil
}

func containsAny(msg string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// Respond picks an answer for the message. Handover requests win over
// everything else; then greetings and goodbyes; then the best keyword match
// from the knowledge base; then the fallback.
func (b *Bot) Respond(message string) Reply {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return Reply{Text: b.kb.FallbackReply}
	}

	if containsAny(msg, b.kb.Handover) {
		return Reply{Text: b.kb.HandoverReply, Handover: true}
	}
	if containsAny(msg, b.kb.Goodbyes) {
		return Reply{Text: b.kb.GoodbyeReply}
	}

	if best, score := b.bestEntry(msg); score > 0 {
		return Reply{
			Text:     best.Answer,
			Category: best.Category,
			FollowUp: b.kb.CategoryPrompts[best.Category],
		}
	}

	// Greetings score after the knowledge base so "hi, where is my order"
	// still gets a real answer.
	if containsAny(msg, b.kb.Greetings) {
		return Reply{Text: b.kb.GreetingReply}
	}
	return Reply{Text: b.kb.FallbackReply}
}

func (b *Bot) bestEntry(msg string) (*Entry, int) {
	var best *Entry
	bestScore := 0
	for i := range b.kb.Entries {
		score := 0
		for _, kw := range b.kb.Entries[i].Keywords {
			if strings.Contains(msg, kw) {
				score++
			}
		}
		if score > bestScore {
			best = &b.kb.Entries[i]
			bestScore = score
		}
	}
	return best, bestScore
}

// Topics lists the distinct knowledge-base categories, in file order.
func (b *Bot) Topics() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range b.kb.Entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out
}
