package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRequestMessageShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"object with text", `{"message":{"text":"hello"}}`, "hello"},
		{"object with content", `{"message":{"content":"hello"}}`, "hello"},
		{"bare string", `{"message":"hello"}`, "hello"},
		{"sibling text field", `{"text":"hello"}`, "hello"},
		{"sibling input field", `{"input":"hello"}`, "hello"},
		{"sibling content field", `{"content":"hello"}`, "hello"},
		{"message wins over siblings", `{"message":"first","text":"second"}`, "first"},
		{"absent", `{}`, ""},
		{"null message", `{"message":null}`, ""},
		{"whitespace only", `{"message":"   "}`, ""},
		{"unexpected shape tolerated", `{"message":42,"text":"fallback"}`, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ChatRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.MessageText())
		})
	}
}

func TestConversationMemoryHelpers(t *testing.T) {
	mem := ConversationMemory{
		{Sender: SenderScammer, Text: "a"},
		{Sender: SenderVictim, Text: "b"},
		{Sender: SenderScammer, Text: "c"},
	}

	scammer := mem.ScammerMessages()
	require.Len(t, scammer, 2)
	assert.Equal(t, "a", scammer[0].Text)
	assert.Equal(t, "c", scammer[1].Text)

	assert.Len(t, mem.Tail(2), 2)
	assert.Equal(t, "b", mem.Tail(2)[0].Text)
	assert.Len(t, mem.Tail(10), 3)
}
