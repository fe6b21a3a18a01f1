package ui

import (
	"fmt"
	"time"
)

// ToastKind selects the toast colour.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// DefaultToastDuration is how long a toast stays visible.
const DefaultToastDuration = 3 * time.Second

// Toast is a transient notice. Showing a new toast replaces the previous one.
type Toast struct {
	Message string
	Kind    ToastKind
	Expires time.Time
}

// NewToast returns a toast that expires d after now.
func NewToast(msg string, kind ToastKind, now time.Time, d time.Duration) Toast {
	if d <= 0 {
		d = DefaultToastDuration
	}
	return Toast{Message: msg, Kind: kind, Expires: now.Add(d)}
}

// BlankInputToast is shown when analysis is requested for blank text.
func BlankInputToast(now time.Time, d time.Duration) Toast {
	return NewToast("⚠️ Please enter some text!", ToastWarning, now, d)
}

// CompleteToast is shown after a successful analysis of n units.
func CompleteToast(n int, now time.Time, d time.Duration) Toast {
	return NewToast(fmt.Sprintf("✅ Analysis complete for %d characters!", n), ToastSuccess, now, d)
}

// Visible reports whether the toast should still be drawn at now.
func (t Toast) Visible(now time.Time) bool {
	return t.Message != "" && now.Before(t.Expires)
}

// Render draws the toast with the style for its kind.
func (t Toast) Render(s Styles) string {
	if t.Message == "" {
		return ""
	}
	style := s.Info
	switch t.Kind {
	case ToastSuccess:
		style = s.Success
	case ToastWarning:
		style = s.Warning
	case ToastError:
		style = s.Error
	}
	return style.Copy().Padding(0, 1).Render(t.Message)
}
