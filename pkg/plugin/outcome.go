package plugin

import "fmt"

// Outcome is what a check function reports back: one of the five
// statuses plus a short human-readable message. The message becomes
// the text after the colon on the status line.
type Outcome struct {
	Status  Status
	Message string
}

// OKf builds a success outcome.
func OKf(format string, args ...any) Outcome {
	return Outcome{StatusOK, fmt.Sprintf(format, args...)}
}

// Warningf builds a WARNING outcome.
func Warningf(format string, args ...any) Outcome {
	return Outcome{StatusWarning, fmt.Sprintf(format, args...)}
}

// Criticalf builds a CRITICAL outcome.
func Criticalf(format string, args ...any) Outcome {
	return Outcome{StatusCritical, fmt.Sprintf(format, args...)}
}

// Unknownf builds an UNKNOWN outcome.
func Unknownf(format string, args ...any) Outcome {
	return Outcome{StatusUnknown, fmt.Sprintf(format, args...)}
}

// Dependantf builds a DEPENDANT outcome, for checks whose result hinges
// on another check that is itself in an unknown state.
func Dependantf(format string, args ...any) Outcome {
	return Outcome{StatusDependant, fmt.Sprintf(format, args...)}
}
