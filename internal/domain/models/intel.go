package models

import "time"

// ExtractedIntel is the result of scanning a single message.
// Produced fresh per message; never mutated after creation.
type ExtractedIntel struct {
	Name     string
	Mobiles  []string
	Accounts []string
	IFSC     string
	UPI      string
	Links    []string
}

// Empty reports whether nothing at all was extracted.
func (e ExtractedIntel) Empty() bool {
	return e.Name == "" && len(e.Mobiles) == 0 && len(e.Accounts) == 0 &&
		e.IFSC == "" && e.UPI == "" && len(e.Links) == 0
}

// IntelAggregate folds per-message extraction results over the
// scammer-authored side of a conversation. Mobiles and accounts are
// deduplicated and mutually exclusive.
type IntelAggregate struct {
	Names    []string
	Mobiles  []string
	Accounts []string
	IFSCs    []string
	UPIs     []string
	Links    []string
}

// ScammerName returns the first identified name, or "Unknown".
func (a IntelAggregate) ScammerName() string {
	if len(a.Names) > 0 {
		return a.Names[0]
	}
	return "Unknown"
}

// HasIntel reports whether any field of the aggregate is populated.
func (a IntelAggregate) HasIntel() bool {
	return len(a.Names) > 0 || len(a.Mobiles) > 0 || len(a.Accounts) > 0 ||
		len(a.IFSCs) > 0 || len(a.UPIs) > 0 || len(a.Links) > 0
}

// ScamCategory labels the kind of scam detected in a conversation.
type ScamCategory string

const (
	CategorySuspicious     ScamCategory = "Suspicious"
	CategorySextortion     ScamCategory = "Sextortion"
	CategoryFranchiseFraud ScamCategory = "FranchiseFraud"
	CategoryDigitalArrest  ScamCategory = "DigitalArrest"
	CategoryTechSupport    ScamCategory = "TechSupportScam"
)

// Mood is the coarse emotional register of the scammer's pressure tactics.
type Mood string

const (
	MoodNeutral     Mood = "NEUTRAL"
	MoodThreatening Mood = "THREATENING"
	MoodUrgent      Mood = "URGENT"
)

// Classification is the category/mood pair derived once per request
// from the full conversation text.
type Classification struct {
	Category ScamCategory
	Mood     Mood
}

// IntelRecord is one persisted row of the intelligence log.
// Rows are append-only; there are no updates or deletes.
type IntelRecord struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	ScamType   string    `json:"scam_type"`
	Mobiles    string    `json:"mobile_numbers"`
	Accounts   string    `json:"bank_accounts"`
	UPI        string    `json:"upi_id"`
	IFSC       string    `json:"ifsc_code"`
	CapturedIP string    `json:"captured_ip"`
	RawMessage string    `json:"raw_message"`
}
