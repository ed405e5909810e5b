package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// ChatRequest is the inbound chat payload. The message field is
// deliberately loose: callers send a bare string, an object with a
// text field, or nothing at all, and sibling fields (text, input,
// content) are accepted as fallbacks.
type ChatRequest struct {
	Message             MessageField        `json:"message"`
	Text                string              `json:"text"`
	Input               string              `json:"input"`
	Content             string              `json:"content"`
	ConversationHistory ConversationMemory  `json:"conversationHistory"`
}

// MessageText resolves the effective message text across the
// alternative field shapes. Empty means no usable text was supplied.
func (r ChatRequest) MessageText() string {
	for _, s := range []string{r.Message.Text, r.Text, r.Input, r.Content} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// MessageField unmarshals from either a JSON string or an object
// carrying a text/content field.
type MessageField struct {
	Text string
}

func (m *MessageField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &m.Text)
	}
	var obj struct {
		Text    string `json:"text"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// Tolerate unexpected shapes (numbers, arrays); treat as absent.
		return nil
	}
	if obj.Text != "" {
		m.Text = obj.Text
	} else {
		m.Text = obj.Content
	}
	return nil
}

func (m MessageField) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Text string `json:"text"`
	}{Text: m.Text})
}

// ChatReport is the canonical internal result of one chat turn. The
// two outward schemas are serialization views generated from it so the
// duplicated fields cannot drift apart.
type ChatReport struct {
	Reply          string
	Classification Classification
	Intel          IntelAggregate
	BankName       string
	Timestamp      time.Time
}

// ClassificationView is the outward classification block.
type ClassificationView struct {
	Verdict         string `json:"verdict"`
	ConfidenceScore float64 `json:"confidence_score"`
	Category        string `json:"category"`
}

// IntelligenceView is the current-format extraction schema.
type IntelligenceView struct {
	PhoneNumbers  []string `json:"phone_numbers"`
	UPIIDs        []string `json:"upi_ids"`
	BankAccounts  []string `json:"bank_accounts"`
	IFSCCodes     []string `json:"ifsc_codes"`
	PhishingLinks []string `json:"phishing_links"`
	ScammerName   string   `json:"scammer_name"`
}

// EntitiesView is the legacy extraction schema kept for older consumers.
type EntitiesView struct {
	MobileNumbers      []string `json:"mobile_numbers"`
	BankAccountNumbers []string `json:"bank_account_numbers"`
	IFSCCode           *string  `json:"ifsc_code"`
	BankName           string   `json:"bank_name"`
	UPIID              *string  `json:"upi_id"`
	PhishingLinks      []string `json:"phishing_links"`
}

// MetadataView carries response provenance.
type MetadataView struct {
	Timestamp   string `json:"timestamp"`
	ScammerMood string `json:"scammer_mood,omitempty"`
}

// ChatResponse is the outward response body for a chat turn.
type ChatResponse struct {
	Status                string             `json:"status"`
	Reply                 string             `json:"reply"`
	AgentReply            string             `json:"agent_reply"`
	Classification        ClassificationView `json:"classification"`
	ExtractedIntelligence IntelligenceView   `json:"extracted_intelligence"`
	ExtractedEntities     EntitiesView       `json:"extracted_entities"`
	Metadata              MetadataView       `json:"metadata"`
}
