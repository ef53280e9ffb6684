package youtube

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// VideoIDLength is the length of every YouTube video identifier.
const VideoIDLength = 11

// canonicalPrefix is the watch URL every reference normalises to.
const canonicalPrefix = "https://www.youtube.com/watch?v="

// ErrInvalidVideoURL is returned when an input is not a recognised video link.
var ErrInvalidVideoURL = errors.New("invalid YouTube video URL")

// videoURLPatterns are tried in order; the first match wins.
var videoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(?:www\.)?youtube\.com/watch\?v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`^https?://youtu\.be/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`^https?://(?:www\.)?youtube\.com/embed/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`^https?://(?:www\.)?youtube\.com/v/([A-Za-z0-9_-]{11})`),
}

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// VideoReference identifies a single YouTube video. The zero value is not a
// valid reference; obtain one through Parse.
type VideoReference struct {
	id string
}

// Parse extracts a VideoReference from a raw URL string.
func Parse(input string) (VideoReference, error) {
	id, ok := ExtractVideoID(input)
	if !ok {
		return VideoReference{}, fmt.Errorf("%w: %q", ErrInvalidVideoURL, truncate(input, 64))
	}
	return VideoReference{id: id}, nil
}

// ID returns the 11 character video identifier.
func (v VideoReference) ID() string {
	return v.id
}

// URL returns the canonical watch URL of the video.
func (v VideoReference) URL() string {
	return CanonicalURL(v.id)
}

// String implements fmt.Stringer.
func (v VideoReference) String() string {
	return v.id
}

// IsZero reports whether v was not produced by Parse.
func (v VideoReference) IsZero() bool {
	return v.id == ""
}

// IsValidVideoURL reports whether input, after trimming surrounding
// whitespace, starts with one of the recognised video URL shapes.
func IsValidVideoURL(input string) bool {
	_, ok := ExtractVideoID(input)
	return ok
}

// ExtractVideoID returns the video identifier captured by the first matching
// URL shape. The boolean is false when no shape matches.
func ExtractVideoID(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	for _, pattern := range videoURLPatterns {
		if match := pattern.FindStringSubmatch(trimmed); match != nil {
			return match[len(match)-1], true
		}
	}

	return "", false
}

// NormalizeURL rewrites any recognised video URL to the canonical
// https://www.youtube.com/watch?v=<ID> form. Normalising a canonical URL
// returns it unchanged.
func NormalizeURL(input string) (string, bool) {
	id, ok := ExtractVideoID(input)
	if !ok {
		return "", false
	}
	return CanonicalURL(id), true
}

// CanonicalURL builds the canonical watch URL for a video identifier. It does
// not validate id.
func CanonicalURL(id string) string {
	return canonicalPrefix + id
}

// IsValidVideoID reports whether id is a well-formed video identifier.
func IsValidVideoID(id string) bool {
	return videoIDPattern.MatchString(id)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
