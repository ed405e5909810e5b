package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scamtrap-lab/internal/config"
	"scamtrap-lab/internal/domain/models"
)

func TestClassifierCategories(t *testing.T) {
	c := NewClassifier(config.ClassifierConfig{})

	tests := []struct {
		name     string
		text     string
		category models.ScamCategory
		mood     models.Mood
	}{
		{"sextortion", "video call karo warna photo viral", models.CategorySextortion, models.MoodThreatening},
		{"franchise", "amul franchise ke liye deposit bhejo", models.CategoryFranchiseFraud, models.MoodNeutral},
		{"digital arrest", "CBI se bol raha hoon, arrest warrant hai", models.CategoryDigitalArrest, models.MoodUrgent},
		{"tech support", "OTP batao turant", models.CategoryTechSupport, models.MoodNeutral},
		{"default", "hello uncle kaise ho", models.CategorySuspicious, models.MoodNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(nil, tt.text)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.mood, got.Mood)
		})
	}
}

func TestClassifierPriorityOrder(t *testing.T) {
	c := NewClassifier(config.ClassifierConfig{})

	// "arrest" outranks "otp" when both appear.
	got := c.Classify(nil, "police arrest hoga, abhi otp do")
	assert.Equal(t, models.CategoryDigitalArrest, got.Category)
	assert.Equal(t, models.MoodUrgent, got.Mood)
}

func TestClassifierUsesFullHistory(t *testing.T) {
	c := NewClassifier(config.ClassifierConfig{})

	history := models.ConversationMemory{
		{Sender: models.SenderScammer, Text: "main police se bol raha hoon"},
		{Sender: models.SenderVictim, Text: "kaun police?"},
	}
	got := c.Classify(history, "jaldi karo")
	assert.Equal(t, models.CategoryDigitalArrest, got.Category)
}

func TestClassifierConfigurableKeywords(t *testing.T) {
	c := NewClassifier(config.ClassifierConfig{
		TechSupportKeywords: []string{"teamviewer"},
	})

	got := c.Classify(nil, "teamviewer install karo")
	assert.Equal(t, models.CategoryTechSupport, got.Category)

	// Overriding one group removes its defaults.
	got = c.Classify(nil, "otp batao")
	assert.Equal(t, models.CategorySuspicious, got.Category)
}
