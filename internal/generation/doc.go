// Package generation defines the boundary between the application and the
// external AI/LLM content generation service (Gemini in production).
//
// It holds three things: the ContentGenerator interface that adapters such as
// platform/gemini implement, the failure taxonomy (Category and Error) shared by
// the service and API layers, and ParseCards, which turns the raw text returned
// by the model into validated study flashcards.
package generation
