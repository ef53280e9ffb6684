// Package redact provides utilities for redacting sensitive information from strings
// before they are logged. Upstream SDK errors and model payloads can echo request
// URLs, API keys or bearer tokens; everything that reaches a log line from
// outside the process should pass through this package first.
package redact

import (
	"regexp"
	"unicode/utf8"
)

// Constants for redaction placeholders
const (
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedTokenPlaceholder      = "[REDACTED_TOKEN]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

// MaxPayloadLength is the number of bytes of an upstream payload kept by Payload.
const MaxPayloadLength = 512

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules are applied in order; later rules see the output of earlier ones.
var rules = []rule{
	// Google API keys, wherever they appear.
	{regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`), RedactedKeyPlaceholder},
	// Credentials passed as query parameters, e.g. ?key=... in request URLs.
	{regexp.MustCompile(`(?i)([?&](?:key|api_key|access_token|token)=)[^&\s"']+`), "${1}" + RedactedKeyPlaceholder},
	// JWT token pattern - matches the standard three-part base64url-encoded JWT token format
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), RedactedJWTPlaceholder},
	{regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9_\-.~+/=]{8,}`), "${1}" + RedactedTokenPlaceholder},
	{regexp.MustCompile(`(?i)(api[_-]?key|token|secret|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), RedactedKeyPlaceholder},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), RedactedEmailPlaceholder},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// Truncate shortens s to at most max bytes without splitting a UTF-8
// sequence, appending "...(truncated)" when anything was cut.
func Truncate(s string, max int) string {
	if max < 0 || len(s) <= max {
		return s
	}

	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut] + "...(truncated)"
}

// Payload prepares an untrusted upstream payload for a diagnostic log line:
// it is redacted and then truncated to MaxPayloadLength bytes.
func Payload(s string) string {
	return Truncate(String(s), MaxPayloadLength)
}
