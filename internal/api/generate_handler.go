package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/vidcards/internal/api/shared"
	"github.com/phrazzld/vidcards/internal/generation"
	"github.com/phrazzld/vidcards/internal/platform/logger"
	"github.com/phrazzld/vidcards/internal/service"
)

// defaultMaxBodyBytes caps request bodies when no limit is configured.
const defaultMaxBodyBytes int64 = 64 << 10

// GenerateHandler handles study card generation requests
type GenerateHandler struct {
	cardService  service.CardService
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler. A non-positive
// maxBodyBytes selects the 64 KiB default.
func NewGenerateHandler(
	cardService service.CardService,
	maxBodyBytes int64,
	logger *slog.Logger,
) *GenerateHandler {
	if cardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardService cannot be nil for GenerateHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenerateHandler")
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}

	return &GenerateHandler{
		cardService:  cardService,
		maxBodyBytes: maxBodyBytes,
		logger:       logger.With(slog.String("component", "generate_handler")),
	}
}

// Generate handles POST /api/generate requests
// It turns a YouTube link into study cards.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.respondInvalidRequest(w, r, fmt.Errorf("decode request: %w", err))
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		h.respondInvalidRequest(w, r, err)
		return
	}

	cards, err := h.cardService.Generate(r.Context(), req.URL)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err),
			ErrorCode(err),
			GetSafeErrorMessage(err),
			err)
		return
	}

	log.DebugContext(r.Context(), "generated study cards", slog.Int("card_count", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{Cards: cards})
}

// respondInvalidRequest reports an unreadable or incomplete request body.
func (h *GenerateHandler) respondInvalidRequest(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r,
		http.StatusBadRequest,
		generation.CategoryInvalidInput.String(),
		MsgURLRequired,
		err)
}
