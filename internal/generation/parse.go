package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/phrazzld/vidcards/internal/domain"
)

// ParseCards validates raw model output and extracts the study cards from it.
//
// Checks run in order: empty text (ErrUpstreamEmpty), invalid JSON
// (ErrMalformedResponse), missing or non-array "cards" (ErrInvalidSchema).
// Entries that are not objects with non-blank string "question" and "answer"
// fields are dropped and counted in dropped. If nothing survives the result is
// ErrNoValidCards. Surviving cards keep their upstream order. All returned
// errors are *Error values.
func ParseCards(text string) (cards []domain.StudyCard, dropped int, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, 0, NewError(CategoryUpstreamEmpty, ErrUpstreamEmpty)
	}

	payload := []byte(text)
	if !json.Valid(payload) {
		return nil, 0, NewError(CategoryMalformedResponse, ErrMalformedResponse)
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, 0, NewError(CategoryInvalidSchema,
			fmt.Errorf("%w: top-level value is not an object", ErrInvalidSchema))
	}

	rawCards, ok := root["cards"]
	if !ok || isJSONNull(rawCards) {
		return nil, 0, NewError(CategoryInvalidSchema,
			fmt.Errorf("%w: missing cards field", ErrInvalidSchema))
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(rawCards, &entries); err != nil {
		return nil, 0, NewError(CategoryInvalidSchema,
			fmt.Errorf("%w: cards field is not an array", ErrInvalidSchema))
	}

	cards = make([]domain.StudyCard, 0, len(entries))
	for _, entry := range entries {
		card, ok := parseCard(entry)
		if !ok {
			dropped++
			continue
		}
		cards = append(cards, card)
	}

	if len(cards) == 0 {
		return nil, dropped, NewError(CategoryNoValidCards,
			fmt.Errorf("%w: %d entries rejected", ErrNoValidCards, dropped))
	}

	return cards, dropped, nil
}

// parseCard decodes one entry of the cards array. Field names are matched
// exactly, unlike encoding/json's case-insensitive struct decoding.
func parseCard(entry json.RawMessage) (domain.StudyCard, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil || fields == nil {
		return domain.StudyCard{}, false
	}

	question, ok := stringField(fields, "question")
	if !ok {
		return domain.StudyCard{}, false
	}

	answer, ok := stringField(fields, "answer")
	if !ok {
		return domain.StudyCard{}, false
	}

	card, err := domain.NewStudyCard(question, answer)
	if err != nil {
		return domain.StudyCard{}, false
	}

	return card, true
}

func stringField(fields map[string]json.RawMessage, name string) (string, bool) {
	raw, ok := fields[name]
	if !ok || isJSONNull(raw) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}

	return s, true
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
