package species

import "strings"

// Category is a conservation-status code.
type Category string

const (
	Extinct              Category = "EX"
	ExtinctInTheWild     Category = "EW"
	CriticallyEndangered Category = "CR"
	Endangered           Category = "EN"
	Vulnerable           Category = "VU"
	NearThreatened       Category = "NT"
	LeastConcern         Category = "LC"
	DataDeficient        Category = "DD"
	NotEvaluated         Category = "NE"

	// Unknown is the "no information" sentinel. It is not a real
	// conservation status and ranks below every real code, so the first
	// real category always replaces it.
	Unknown Category = "UNKNOWN"

	// DefaultCategory is assigned to new species whose occurrence carries
	// no category. Unseen categories are not assumed to be harmless.
	DefaultCategory = CriticallyEndangered
)

var known = map[Category]struct{}{
	Extinct: {}, ExtinctInTheWild: {}, CriticallyEndangered: {},
	Endangered: {}, Vulnerable: {}, NearThreatened: {}, LeastConcern: {},
	DataDeficient: {}, NotEvaluated: {},
}

// longNames maps category names used by some remote APIs to codes.
var longNames = map[string]Category{
	"EXTINCT":               Extinct,
	"EXTINCT_IN_THE_WILD":   ExtinctInTheWild,
	"CRITICALLY_ENDANGERED": CriticallyEndangered,
	"ENDANGERED":            Endangered,
	"VULNERABLE":            Vulnerable,
	"NEAR_THREATENED":       NearThreatened,
	"LEAST_CONCERN":         LeastConcern,
	"DATA_DEFICIENT":        DataDeficient,
	"NOT_EVALUATED":         NotEvaluated,
}

// ParseCategory converts a code or a long name ("CRITICALLY_ENDANGERED")
// to a Category. The second value is false for empty or unknown input.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	if c, ok := longNames[strings.ReplaceAll(s, " ", "_")]; ok {
		return c, true
	}
	c := Category(s)
	if _, ok := known[c]; ok {
		return c, true
	}
	return "", false
}

// Rank is the severity of a category used to pick the worst category of a
// cluster. CR, EW and EX rank 1, 2 and 3, other real codes rank 0, the
// Unknown sentinel ranks -1.
func (c Category) Rank() int {
	switch c {
	case CriticallyEndangered:
		return 1
	case ExtinctInTheWild:
		return 2
	case Extinct:
		return 3
	case Unknown, "":
		return -1
	default:
		return 0
	}
}

// Worse returns the more severe of two categories. On equal rank the
// current value wins.
func Worse(current, candidate Category) Category {
	if candidate.Rank() > current.Rank() {
		return candidate
	}
	return current
}

func (c Category) String() string {
	return string(c)
}
