package selector

import (
	"fmt"
	"strings"
)

// FallbackPolicy decides what happens when none of the preferred languages
// has a caption track.
type FallbackPolicy string

const (
	// FallbackNone fails with captions.NoTranscriptError.
	FallbackNone FallbackPolicy = "none"
	// FallbackFirst selects the first track the provider reported.
	FallbackFirst FallbackPolicy = "first"
)

// FallbackPolicyValues returns valid policy values
func FallbackPolicyValues() []string {
	return []string{string(FallbackNone), string(FallbackFirst)}
}

// ParseFallbackPolicy converts a config or flag value into a policy.
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch p := FallbackPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case FallbackNone, FallbackFirst:
		return p, nil
	}
	return "", fmt.Errorf("invalid fallback policy '%s', must be one of: %s",
		s, strings.Join(FallbackPolicyValues(), ", "))
}
