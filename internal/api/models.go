package api

import (
	"encoding/json"

	"github.com/phrazzld/vidcards/internal/domain"
)

// GenerateRequest defines the payload for the card generation endpoint.
type GenerateRequest struct {
	URL string `json:"url" validate:"required"`
}

// UnmarshalJSON matches the "url" key exactly; encoding/json's
// case-insensitive field matching would accept "URL" or "Url". A present
// "url" must be a JSON string.
func (r *GenerateRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = GenerateRequest{}
	raw, ok := fields["url"]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, &r.URL)
}

// GenerateResponse defines the successful response for the card generation
// endpoint.
type GenerateResponse struct {
	Cards []domain.StudyCard `json:"cards"`
}
