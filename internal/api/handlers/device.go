package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"scamtrap-lab/internal/api/middleware"
	"scamtrap-lab/internal/domain/models"
	"scamtrap-lab/internal/infrastructure/database/repository"
	"scamtrap-lab/internal/trap"
	"scamtrap-lab/pkg/logger"
)

// paymentProofPage is the decoy receipt. On load it posts the
// visitor's device info back to the log-device endpoint.
const paymentProofPage = `<!DOCTYPE html>
<html>
<head><title>Receipt</title></head>
<body>
<h1 style="text-align:center; color:green;">&#9989; Payment Successful</h1>
<script>
fetch('/api/log-device', {
  method: 'POST',
  headers: {'Content-Type': 'application/json'},
  body: JSON.stringify({userAgent: navigator.userAgent, platform: navigator.platform, language: navigator.language})
});
</script>
</body>
</html>`

// DeviceHandler serves the decoy receipt page and records trap hits.
type DeviceHandler struct {
	store  trap.Store
	repo   repository.IntelRepository
	logger *logger.Logger
}

func NewDeviceHandler(store trap.Store, repo repository.IntelRepository, log *logger.Logger) *DeviceHandler {
	return &DeviceHandler{
		store:  store,
		repo:   repo,
		logger: log.WithComponent("device"),
	}
}

// LogDevice handles POST /api/log-device. The payload is arbitrary
// device info; whatever arrives is recorded verbatim alongside the
// requester IP. Always answers success so the decoy page never errors
// in the scammer's browser.
func (h *DeviceHandler) LogDevice(w http.ResponseWriter, r *http.Request) {
	ip := middleware.ClientIP(r)

	body, err := io.ReadAll(io.LimitReader(r.Body, 64*1024))
	if err != nil {
		body = nil
	}

	// Keep the payload as the JSON object it claims to be; anything
	// else is preserved as a JSON string so the slot stays decodable.
	info := json.RawMessage(body)
	if !json.Valid(info) {
		info, _ = json.Marshal(string(body))
	}

	hit := models.TrapHit{
		IP:         ip,
		DeviceInfo: info,
		Timestamp:  time.Now().UTC(),
	}
	if err := h.store.Record(r.Context(), hit); err != nil {
		h.logger.Error().Err(err).Msg("failed to record trap hit")
	}

	h.logger.Info().Str("ip", ip).Msg("trap link clicked")

	if h.repo != nil {
		rec := models.IntelRecord{ScamType: "Trap Link Clicked", CapturedIP: ip}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := h.repo.Insert(ctx, rec); err != nil {
				h.logger.Warn().Err(err).Msg("trap hit persistence failed")
			}
		}()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// PaymentProof handles GET /payment-proof/{id}. The id segment is
// accepted but unused; every transaction shows the same receipt.
func (h *DeviceHandler) PaymentProof(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(paymentProofPage))
}
