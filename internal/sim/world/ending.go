package world

import (
	"math"
	"math/rand"
)

// ConvType tags a conversation by participant kinds; ending behavior is
// type-dependent.
type ConvType string

const (
	TypeStudentStudent     ConvType = "student-student"
	TypeRecruiterRecruiter ConvType = "recruiter-recruiter"
	TypeStudentRecruiter   ConvType = "student-recruiter"
)

// Per-type base probability and exponential growth rate. Student
// small-talk winds down fastest; a student-recruiter pitch is the
// slowest to die and only the recruiter gets to call it.
var endingParams = map[ConvType]struct {
	base float64
	rate float64
}{
	TypeStudentStudent:     {base: 0, rate: 0.5},
	TypeRecruiterRecruiter: {base: 0.05, rate: 0.3},
	TypeStudentRecruiter:   {base: 0.02, rate: 0.15},
}

// Hard per-type turn ceilings; the liveness backstop for the otherwise
// open-ended stochastic process.
var forceEndLimits = map[ConvType]int{
	TypeStudentStudent:     8,
	TypeRecruiterRecruiter: 10,
	TypeStudentRecruiter:   15,
}

// EndingProbability returns the chance that the current speaker wraps
// up after the given number of messages:
//
//	p = base + (1-base) * (1 - e^(-rate*(n-1)))
//
// capped at 0.9 so an ending is never certain. The first two messages
// stay at the base probability, and in a student-recruiter conversation
// the student side never ends it.
func EndingProbability(messages int, convType ConvType, isRecruiter bool) float64 {
	if convType == TypeStudentRecruiter && !isRecruiter {
		return 0
	}
	params := endingParams[convType]
	if messages <= 2 {
		return params.base
	}
	p := params.base + (1-params.base)*(1-math.Exp(-params.rate*float64(messages-1)))
	if p > 0.9 {
		p = 0.9
	}
	return p
}

// ShouldConversationEnd draws once against EndingProbability.
func ShouldConversationEnd(rng *rand.Rand, messages int, convType ConvType, isRecruiter bool) bool {
	return rng.Float64() < EndingProbability(messages, convType, isRecruiter)
}

// ShouldForceEnd is true at or above the type's turn ceiling.
func ShouldForceEnd(messages int, convType ConvType) bool {
	limit, ok := forceEndLimits[convType]
	if !ok {
		limit = forceEndLimits[TypeStudentRecruiter]
	}
	return messages >= limit
}
