package services

import (
	"strings"

	"scamtrap-lab/internal/config"
	"scamtrap-lab/internal/domain/models"
)

// keywordRule maps a keyword group to the classification it implies.
// Rules are evaluated in order; the first hit wins.
type keywordRule struct {
	keywords []string
	category models.ScamCategory
	mood     models.Mood
}

// Classifier assigns a scam category and mood to a conversation based
// on keyword groups. The keyword lists are English/Hindi-mixed and the
// part of the system most likely to need tuning, so they are taken
// from configuration with built-in defaults.
type Classifier struct {
	rules []keywordRule
}

func NewClassifier(cfg config.ClassifierConfig) *Classifier {
	return &Classifier{rules: []keywordRule{
		{
			keywords: orDefault(cfg.SextortionKeywords, []string{"video call", "nude", "sex", "girl"}),
			category: models.CategorySextortion,
			mood:     models.MoodThreatening,
		},
		{
			keywords: orDefault(cfg.FranchiseKeywords, []string{"franchise", "dealership"}),
			category: models.CategoryFranchiseFraud,
			mood:     models.MoodNeutral,
		},
		{
			keywords: orDefault(cfg.DigitalArrestKeywords, []string{"police", "cbi", "arrest"}),
			category: models.CategoryDigitalArrest,
			mood:     models.MoodUrgent,
		},
		{
			keywords: orDefault(cfg.TechSupportKeywords, []string{"otp", "anydesk"}),
			category: models.CategoryTechSupport,
			mood:     models.MoodNeutral,
		},
	}}
}

func orDefault(configured, fallback []string) []string {
	if len(configured) > 0 {
		return configured
	}
	return fallback
}

// Classify evaluates the full conversation text. Stateless and pure.
func (c *Classifier) Classify(history models.ConversationMemory, current string) models.Classification {
	var b strings.Builder
	for _, msg := range history {
		b.WriteString(msg.Text)
		b.WriteByte(' ')
	}
	b.WriteString(current)
	text := strings.ToLower(b.String())

	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return models.Classification{Category: rule.category, Mood: rule.mood}
			}
		}
	}
	return models.Classification{Category: models.CategorySuspicious, Mood: models.MoodNeutral}
}
