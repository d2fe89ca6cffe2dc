package deps

import "fmt"

// Classification is the category a node of a closure is assigned to.
//
// Every *Explicit value is its base value plus one: promotion of a local,
// explicitly installed package is done by adding 1 (see [Closure] docs).
type Classification int

const (
	// Unknown is the pre-classification sentinel.
	Unknown Classification = iota
	// Exclusive nodes are only needed by the requested packages.
	Exclusive
	// ExclusiveExplicit is Exclusive for an explicitly installed package.
	ExclusiveExplicit
	// Shared nodes are also needed by something outside the closure.
	Shared
	// SharedExplicit is Shared for an explicitly installed package.
	SharedExplicit
	// Optional nodes are optional dependencies of a requested package.
	Optional
	// OptionalExplicit is Optional for an explicitly installed package.
	OptionalExplicit

	numClassifications
)

// Classifications lists every non-Unknown value in report order.
var Classifications = []Classification{
	Exclusive, ExclusiveExplicit,
	Optional, OptionalExplicit,
	Shared, SharedExplicit,
}

var classificationNames = [numClassifications]string{
	Unknown:           "unknown",
	Exclusive:         "exclusive",
	ExclusiveExplicit: "exclusive-explicit",
	Shared:            "shared",
	SharedExplicit:    "shared-explicit",
	Optional:          "optional",
	OptionalExplicit:  "optional-explicit",
}

// String returns the kebab-case name ("shared-explicit").
func (c Classification) String() string {
	if c < 0 || c >= numClassifications {
		return fmt.Sprintf("classification(%d)", int(c))
	}
	return classificationNames[c]
}

// ParseClassification is the inverse of [Classification.String].
func ParseClassification(s string) (Classification, error) {
	for c, name := range classificationNames {
		if name == s {
			return Classification(c), nil
		}
	}
	return Unknown, fmt.Errorf("unknown classification %q", s)
}

// IsExplicit reports whether c is one of the *Explicit variants.
func (c Classification) IsExplicit() bool {
	return c == ExclusiveExplicit || c == SharedExplicit || c == OptionalExplicit
}

// Base strips the explicit promotion.
func (c Classification) Base() Classification {
	if c.IsExplicit() {
		return c - 1
	}
	return c
}

// IsExclusive reports whether c is Exclusive or ExclusiveExplicit.
func (c Classification) IsExclusive() bool { return c.Base() == Exclusive }

// IsShared reports whether c is Shared or SharedExplicit.
func (c Classification) IsShared() bool { return c.Base() == Shared }

// IsOptional reports whether c is Optional or OptionalExplicit.
func (c Classification) IsOptional() bool { return c.Base() == Optional }

// Title returns the report heading for the classification. In reverse mode
// the exclusive and optional groups hold requirers rather than dependencies.
func (c Classification) Title(reverse bool) string {
	if reverse {
		switch c {
		case Exclusive:
			return "Required by:"
		case ExclusiveExplicit:
			return "Required by explicit:"
		case Optional:
			return "Optional for:"
		case OptionalExplicit:
			return "Optional for explicit:"
		}
	}
	switch c {
	case Unknown:
		return "Total dependencies:"
	case Exclusive:
		return "Exclusive dependencies:"
	case ExclusiveExplicit:
		return "Exclusive explicit dependencies:"
	case Shared:
		return "Shared dependencies:"
	case SharedExplicit:
		return "Shared explicit dependencies:"
	case Optional:
		return "Optional dependencies:"
	case OptionalExplicit:
		return "Optional explicit dependencies:"
	}
	return c.String()
}
