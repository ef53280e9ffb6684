package gemini

import "google.golang.org/genai"

// responseSchema describes {"cards":[{"question":string,"answer":string}]}.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"cards": {
				Type:        genai.TypeArray,
				Description: "Study flashcards covering the video's key concepts, in presentation order.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"question": {
							Type:        genai.TypeString,
							Description: "A clear, specific question about one concept or fact.",
						},
						"answer": {
							Type:        genai.TypeString,
							Description: "A concise but complete answer to the question.",
						},
					},
					Required:         []string{"question", "answer"},
					PropertyOrdering: []string{"question", "answer"},
				},
			},
		},
		Required: []string{"cards"},
	}
}
