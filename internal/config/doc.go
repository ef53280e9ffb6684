// Package config loads application settings from defaults, an optional
// config.yaml, and VIDCARDS_-prefixed environment variables, then validates
// them with struct tags. The bare GEMINI_API_KEY variable is honoured as a
// fallback for the model credential.
package config
