// Package service contains the application use cases.
//
// CardService turns a YouTube link into study cards: it validates and
// canonicalises the link, makes exactly one call to the configured
// generation.ContentGenerator under a request deadline, and validates the
// model output with generation.ParseCards. Every failure it returns carries a
// generation.Category, which the delivery layers (HTTP API, CLI) translate
// into status codes and user-facing messages.
//
// The service depends on the generation boundary interface, never on a
// concrete model client.
package service
