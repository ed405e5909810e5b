package services

import (
	"scamtrap-lab/internal/domain/models"
)

// Aggregator folds per-message extraction over a conversation. Only
// scammer-authored messages contribute: the victim persona never
// carries scammer-supplied data.
type Aggregator struct {
	extractor *Extractor
}

func NewAggregator(extractor *Extractor) *Aggregator {
	return &Aggregator{extractor: extractor}
}

// Aggregate scans the scammer side of the history plus the current
// message and unions the results. Mobiles and accounts keep set
// semantics across messages; ifsc/upi/name/links append in order.
func (a *Aggregator) Aggregate(history models.ConversationMemory, current string) models.IntelAggregate {
	var agg models.IntelAggregate
	mobileSeen := make(map[string]bool)
	accountSeen := make(map[string]bool)

	merge := func(intel models.ExtractedIntel) {
		for _, m := range intel.Mobiles {
			if !mobileSeen[m] {
				mobileSeen[m] = true
				agg.Mobiles = append(agg.Mobiles, m)
			}
		}
		for _, acc := range intel.Accounts {
			if !accountSeen[acc] {
				accountSeen[acc] = true
				agg.Accounts = append(agg.Accounts, acc)
			}
		}
		if intel.IFSC != "" {
			agg.IFSCs = append(agg.IFSCs, intel.IFSC)
		}
		if intel.UPI != "" {
			agg.UPIs = append(agg.UPIs, intel.UPI)
		}
		if intel.Name != "" {
			agg.Names = append(agg.Names, intel.Name)
		}
		agg.Links = append(agg.Links, intel.Links...)
	}

	for _, msg := range history.ScammerMessages() {
		merge(a.extractor.Extract(msg.Text))
	}
	merge(a.extractor.Extract(current))

	return agg
}
