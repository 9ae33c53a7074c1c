package core

import "fmt"

// WindowPeriod is the time span a usage figure covers. Providers that only
// measure one fixed cadence substitute their own window and report it back;
// callers must read the window from the result, not assume their request
// was honored.
type WindowPeriod string

const (
	WindowHour5 WindowPeriod = "5h"
	WindowDay7  WindowPeriod = "7d"
	WindowDay30 WindowPeriod = "30d"
)

// AllWindowPeriods returns every window in ascending span order.
func AllWindowPeriods() []WindowPeriod {
	return []WindowPeriod{WindowHour5, WindowDay7, WindowDay30}
}

// ParseWindowPeriod maps a flag value onto the closed set.
func ParseWindowPeriod(s string) (WindowPeriod, error) {
	switch WindowPeriod(s) {
	case WindowHour5, WindowDay7, WindowDay30:
		return WindowPeriod(s), nil
	}
	return "", fmt.Errorf("invalid window %q (choose 5h, 7d or 30d)", s)
}

func (w WindowPeriod) String() string { return string(w) }
