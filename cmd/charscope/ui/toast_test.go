package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToastLifetime(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	toast := CompleteToast(5, now, 0)

	assert.Equal(t, "✅ Analysis complete for 5 characters!", toast.Message)
	assert.Equal(t, ToastSuccess, toast.Kind)
	assert.True(t, toast.Visible(now))
	assert.True(t, toast.Visible(now.Add(2999*time.Millisecond)))
	assert.False(t, toast.Visible(now.Add(DefaultToastDuration)))
}

func TestBlankInputToast(t *testing.T) {
	now := time.Now()
	toast := BlankInputToast(now, time.Second)
	assert.Equal(t, ToastWarning, toast.Kind)
	assert.Contains(t, toast.Message, "Please enter some text!")
	assert.False(t, toast.Visible(now.Add(time.Second)))
}

func TestToastRender(t *testing.T) {
	s := NewStyles(LightTheme())
	assert.Empty(t, Toast{}.Render(s))
	assert.False(t, Toast{}.Visible(time.Now()))
	assert.Contains(t, NewToast("hello", ToastError, time.Now(), time.Second).Render(s), "hello")
}
