// Package domain defines the core value types of the application.
//
// The central entity is StudyCard, a question/answer pair produced from a
// video by the generation pipeline. Study cards are transient, request-scoped
// values: they are validated on construction, never mutated, and never
// persisted.
package domain
