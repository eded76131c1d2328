package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"lottosim/domain/entities"
	"lottosim/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const maxImportBytes = 32 << 20

type purchaseRequest struct {
	Game           string                   `json:"game"`
	Count          int                      `json:"count"`
	IsAuto         bool                     `json:"isAuto"`
	LottoNumbers   *entities.LottoNumbers   `json:"lottoNumbers,omitempty"`
	PensionNumbers *entities.PensionNumbers `json:"pensionNumbers,omitempty"`
}

func (r purchaseRequest) toDomain(game entities.Game) interfaces.PurchaseRequest {
	return interfaces.PurchaseRequest{
		Game:           game,
		Count:          r.Count,
		IsAuto:         r.IsAuto,
		LottoNumbers:   r.LottoNumbers,
		PensionNumbers: r.PensionNumbers,
	}
}

type purchaseResponse struct {
	Count   int                       `json:"count"`
	Lotto   []*entities.LottoTicket   `json:"lotto645,omitempty"`
	Scratch []*entities.ScratchTicket `json:"speetto1000,omitempty"`
	Pension []*entities.PensionTicket `json:"pension720,omitempty"`
}

type statsResponse struct {
	Lotto645    entities.PurchaseStats `json:"lotto645"`
	Speetto1000 entities.PurchaseStats `json:"speetto1000"`
	Pension720  entities.PurchaseStats `json:"pension720"`
	Combined    entities.PurchaseStats `json:"combined"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func decodeJSON(body io.Reader, v any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("malformed JSON: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
