package plugin

import (
	"fmt"
	"strings"
)

// Phase is a named point in the build where plugins contribute.
type Phase string

// Phases in execution order.
const (
	PhaseExternal Phase = "external"
	PhaseResource Phase = "resource"
	PhaseExtend   Phase = "extend"
	PhaseBefore   Phase = "before"
	PhaseAfter    Phase = "after"
	PhaseCleanup  Phase = "cleanup"
)

// Phases lists every phase in the order the Router visits them.
var Phases = []Phase{
	PhaseExternal,
	PhaseResource,
	PhaseExtend,
	PhaseBefore,
	PhaseAfter,
	PhaseCleanup,
}

// ParsePhase returns the phase named s.
func ParsePhase(s string) (Phase, error) {
	for _, p := range Phases {
		if string(p) == s {
			return p, nil
		}
	}
	names := make([]string, len(Phases))
	for i, p := range Phases {
		names[i] = string(p)
	}
	return "", fmt.Errorf("%w: %q, allowed phases are: %s", ErrInvalidPhase, s, strings.Join(names, "|"))
}

// capability names the descriptor field a phase reads, for warnings.
func (p Phase) capability() string {
	switch p {
	case PhaseExternal:
		return "external extension"
	case PhaseResource:
		return "resources"
	case PhaseExtend:
		return "extend function"
	case PhaseBefore:
		return "before rewrite"
	case PhaseAfter:
		return "after rewrite"
	case PhaseCleanup:
		return "cleanup function"
	default:
		return "capability"
	}
}
