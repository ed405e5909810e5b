package models

import (
	"encoding/json"
	"time"
)

// Sender identifies who produced a conversation message.
const (
	SenderScammer = "scammer"
	SenderVictim  = "victim"
)

// Message is a single turn in a honeypot conversation.
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// ConversationMemory is the full transcript supplied by the caller,
// oldest message first.
type ConversationMemory []Message

// ScammerMessages returns only the scammer-side turns, in order.
func (m ConversationMemory) ScammerMessages() []Message {
	out := make([]Message, 0, len(m))
	for _, msg := range m {
		if msg.Sender == SenderScammer {
			out = append(out, msg)
		}
	}
	return out
}

// Tail returns the last n messages of the conversation.
func (m ConversationMemory) Tail(n int) ConversationMemory {
	if len(m) <= n {
		return m
	}
	return m[len(m)-n:]
}

// TrapHit records a visit to the decoy payment-proof page. DeviceInfo
// is whatever JSON object the decoy page self-reported, kept verbatim.
type TrapHit struct {
	IP         string          `json:"ip"`
	DeviceInfo json.RawMessage `json:"device_info"`
	Timestamp  time.Time       `json:"timestamp"`
}
