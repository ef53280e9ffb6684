// Package gemini provides an implementation of the generation.ContentGenerator
// interface that uses Google's Gemini API to turn a YouTube video into study
// flashcards.
//
// This package is an infrastructure adapter: it translates between the
// application's generation boundary and the google.golang.org/genai client
// without exposing the details of the external service to the core.
//
// Key components:
//
// 1. Generator:
//   - Implements generation.ContentGenerator
//   - Sends the video as file data alongside the rendered task prompt
//   - Requests JSON output constrained to the flashcard response schema
//
// 2. Client lifecycle:
//   - The genai client is built lazily on first use and shared by every
//     subsequent request; it is never mutated or torn down
//
// 3. Prompt Management:
//   - An embedded default prompt, optionally replaced by a template file
//
// 4. Error Handling:
//   - Rate limit and quota errors wrap generation.ErrRateLimited
//   - Credential errors wrap generation.ErrInvalidConfig
//   - Anything else wraps generation.ErrGenerationFailed
//
// The generator performs exactly one API call per request and never retries.
package gemini
