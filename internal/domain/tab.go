package domain

import "fmt"

// Tab identifies one of the content panels on the page.
type Tab string

const (
	TabAbout  Tab = "about"
	TabBreeds Tab = "breeds"
	TabCare   Tab = "care"
)

// DefaultTab is the panel shown to a new visitor.
const DefaultTab = TabAbout

// Tabs lists the panels in display order.
var Tabs = []Tab{TabAbout, TabBreeds, TabCare}

// IsValid checks if the tab is one of the allowed values.
func (t Tab) IsValid() bool {
	switch t {
	case TabAbout, TabBreeds, TabCare:
		return true
	default:
		return false
	}
}

// Label returns the text shown on the tab trigger.
func (t Tab) Label() string {
	switch t {
	case TabAbout:
		return "About Cats"
	case TabBreeds:
		return "Cat Breeds"
	case TabCare:
		return "Cat Care"
	default:
		return string(t)
	}
}

// ParseTab converts a wire value into a Tab.
func ParseTab(s string) (Tab, error) {
	t := Tab(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTab, s)
	}
	return t, nil
}
