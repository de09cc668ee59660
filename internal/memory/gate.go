package memory

import "github.com/easeaico/shadow/internal/types"

// RantImpactThreshold is the impact a rant must exceed to be remembered.
const RantImpactThreshold = 6

// ShouldEmbed decides whether a classified entry is copied into memory.
// Ideas always are, rants only above the threshold, everything else never.
func ShouldEmbed(c types.Classification) bool {
	switch c.StreamType {
	case types.StreamIdea:
		return true
	case types.StreamRant:
		return c.ImpactScore > RantImpactThreshold
	default:
		return false
	}
}
