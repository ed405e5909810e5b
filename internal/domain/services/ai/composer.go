package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"scamtrap-lab/internal/config"
	"scamtrap-lab/internal/domain/models"
	"scamtrap-lab/pkg/logger"
)

// personaPrompt pins the victim character the model plays. The
// constraints keep the scammer engaged without ever completing a real
// payment action.
const personaPrompt = `You are Ramesh Gupta, a 67-year-old retired school teacher from Kanpur, India. You speak Hinglish (Hindi written in Latin script mixed with simple English). You are slow with technology, easily confused, and lonely, so you keep conversations going.

Strict behavioral rules:
- NEVER offer to send money unless the other person asks for it first.
- If asked for an OTP or to click a link, act willing but incapable: the phone is hanging, the screen is broken, your grandson took the charger.
- If threatened (police, arrest, video leak), act scared and pleading, but keep stalling.
- If asked for money, say you will send it, and ask for their bank account number and IFSC code so your nephew can do the transfer.
- Keep replies short (1-3 sentences), rambling, and in character. Never reveal you are not a real person.`

// fallbackReply is returned when the model cannot be reached at all.
const fallbackReply = "Network nahi aa raha beta... phone mein kuch problem hai. Thodi der baad baat karte hain."

// historyWindow bounds how much transcript is replayed to the model.
const historyWindow = 8

// Composer produces the persona's next reply. The retry loop around
// the model call is an explicit state machine: a rate-limit failure
// degrades to the fallback model tier and retries up to maxAttempts
// with a fixed delay, any other failure terminates with the canned
// fallback text. A model failure is never surfaced to the caller.
type Composer struct {
	client        LLMClient
	model         string
	fallbackModel string
	maxAttempts   int
	retryDelay    time.Duration
	log           *logger.Logger
}

func NewComposer(client LLMClient, cfg config.LLMConfig, log *logger.Logger) *Composer {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 2
	}
	return &Composer{
		client:        client,
		model:         cfg.Model,
		fallbackModel: cfg.FallbackModel,
		maxAttempts:   maxAttempts,
		retryDelay:    cfg.RetryDelay,
		log:           log.WithComponent("composer"),
	}
}

// Compose generates the persona reply for the current turn and applies
// trap-link injection when the conversation has yielded enough banking
// detail. baseURL is the scheme+host of the current request, used to
// build the receipt link.
func (c *Composer) Compose(ctx context.Context, history models.ConversationMemory, current string, intel models.IntelAggregate, baseURL string) string {
	reply := c.generate(ctx, history, current)
	reply = sanitizeReply(reply)

	if c.shouldInjectTrapLink(intel, reply) {
		link := fmt.Sprintf("%s/payment-proof/TXN-%s", baseURL, uuid.NewString()[:8])
		reply = fmt.Sprintf("%s Maine payment kar diya hai, receipt yahan dekho: %s", reply, link)
	}
	return reply
}

func (c *Composer) generate(ctx context.Context, history models.ConversationMemory, current string) string {
	messages := c.buildPrompt(history, current)

	model := c.model
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err := c.client.Complete(ctx, CompletionRequest{Model: model, Messages: messages})
		if err == nil {
			if resp.Content == "" {
				return fallbackReply
			}
			return resp.Content
		}
		if !errors.Is(err, ErrRateLimited) {
			c.log.Error().Err(err).Str("model", model).Msg("Model call failed")
			return fallbackReply
		}

		c.log.Warn().
			Str("model", model).
			Int("attempt", attempt).
			Msg("Rate limited, degrading model tier")
		model = c.fallbackModel
		if attempt < c.maxAttempts && c.retryDelay > 0 {
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return fallbackReply
			}
		}
	}
	return fallbackReply
}

// buildPrompt maps the last few turns onto chat roles: scammer text
// becomes the user side, prior persona replies the assistant side.
func (c *Composer) buildPrompt(history models.ConversationMemory, current string) []ChatMessage {
	messages := []ChatMessage{{Role: ChatRoleSystem, Content: personaPrompt}}
	for _, msg := range history.Tail(historyWindow) {
		role := ChatRoleUser
		if msg.Sender == models.SenderVictim {
			role = ChatRoleAssistant
		}
		messages = append(messages, ChatMessage{Role: role, Content: msg.Text})
	}
	messages = append(messages, ChatMessage{Role: ChatRoleUser, Content: current})
	return messages
}

func (c *Composer) shouldInjectTrapLink(intel models.IntelAggregate, reply string) bool {
	if len(intel.Accounts) == 0 || len(intel.IFSCs) == 0 {
		return false
	}
	lower := strings.ToLower(reply)
	return strings.Contains(lower, "sent") || strings.Contains(lower, "transfer")
}

// sanitizeReply guards against the model leaking structured output:
// if the reply opens like JSON, parse it and pull out a prose field.
func sanitizeReply(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if trimmed == "" {
		return fallbackReply
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return trimmed
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return trimmed
	}
	for _, key := range []string{"reply", "message", "text"} {
		if v, ok := obj[key].(string); ok && v != "" {
			return v
		}
	}
	return trimmed
}
