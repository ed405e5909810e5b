package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scamtrap-lab/internal/domain/models"
)

func TestBankNameFromIFSC(t *testing.T) {
	assert.Equal(t, "State Bank of India", BankNameFromIFSC("SBIN0001234"))
	assert.Equal(t, "HDFC Bank", BankNameFromIFSC("hdfc0000123"))
	assert.Equal(t, "Other Bank", BankNameFromIFSC("XXXX0001234"))
	assert.Equal(t, "Unknown Bank", BankNameFromIFSC(""))
}

func TestAssemblerViewsAgree(t *testing.T) {
	a := NewAssembler()

	intel := models.IntelAggregate{
		Mobiles:  []string{"9876543210"},
		Accounts: []string{"50100123456789"},
		IFSCs:    []string{"SBIN0001234"},
		UPIs:     []string{"x@paytm"},
		Links:    []string{"https://evil.example"},
	}
	report := a.BuildReport("haan beta", models.Classification{
		Category: models.CategoryDigitalArrest,
		Mood:     models.MoodUrgent,
	}, intel)
	resp := a.Render(report)

	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "haan beta", resp.Reply)
	assert.Equal(t, resp.Reply, resp.AgentReply)
	assert.Equal(t, "SCAM", resp.Classification.Verdict)
	assert.Equal(t, 0.99, resp.Classification.ConfidenceScore)
	assert.Equal(t, "DigitalArrest", resp.Classification.Category)

	// Both schemas come from the same aggregate.
	assert.Equal(t, resp.ExtractedIntelligence.PhoneNumbers, resp.ExtractedEntities.MobileNumbers)
	assert.Equal(t, resp.ExtractedIntelligence.BankAccounts, resp.ExtractedEntities.BankAccountNumbers)
	require.NotNil(t, resp.ExtractedEntities.IFSCCode)
	assert.Equal(t, "SBIN0001234", *resp.ExtractedEntities.IFSCCode)
	assert.Equal(t, "State Bank of India", resp.ExtractedEntities.BankName)
	assert.Equal(t, "URGENT", resp.Metadata.ScammerMood)
	assert.NotEmpty(t, resp.Metadata.Timestamp)
}

func TestAssemblerEmptyAggregateSerializesArrays(t *testing.T) {
	a := NewAssembler()

	report := a.BuildReport("kaun?", models.Classification{
		Category: models.CategorySuspicious,
		Mood:     models.MoodNeutral,
	}, models.IntelAggregate{})
	out, err := json.Marshal(a.Render(report))
	require.NoError(t, err)

	assert.Contains(t, string(out), `"phone_numbers":[]`)
	assert.Contains(t, string(out), `"ifsc_code":null`)
	assert.Contains(t, string(out), `"bank_name":"Unknown Bank"`)
	assert.Contains(t, string(out), `"scammer_name":"Unknown"`)
}

func TestAssemblerBuildRecord(t *testing.T) {
	a := NewAssembler()

	report := a.BuildReport("ok", models.Classification{Category: models.CategoryTechSupport}, models.IntelAggregate{
		Mobiles:  []string{"9876543210", "9123456780"},
		Accounts: []string{"50100123456789"},
		IFSCs:    []string{"SBIN0001234", "HDFC0000123"},
	})
	rec := a.BuildRecord(report, "1.2.3.4", "raw text")

	assert.Equal(t, "TechSupportScam", rec.ScamType)
	assert.Equal(t, "9876543210,9123456780", rec.Mobiles)
	assert.Equal(t, "50100123456789", rec.Accounts)
	assert.Equal(t, "SBIN0001234", rec.IFSC)
	assert.Equal(t, "1.2.3.4", rec.CapturedIP)
	assert.Equal(t, "raw text", rec.RawMessage)
}
