package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/styles"
)

func TestNewPlaceInput(t *testing.T) {
	in := NewPlaceInput(styles.DefaultStyles())

	require.NotNil(t, in)
	assert.Empty(t, in.Value())
	assert.True(t, in.Focused())
}

func TestNewPlaceInput_NilStyles(t *testing.T) {
	in := NewPlaceInput(nil)

	require.NotNil(t, in)
	assert.NotNil(t, in.styles)
}

func TestPlaceInput_Init(t *testing.T) {
	assert.NotNil(t, NewPlaceInput(nil).Init())
}

func TestPlaceInput_TypingAndBackspace(t *testing.T) {
	in := NewPlaceInput(nil)

	for _, r := range "Lyon" {
		in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "Lyon", in.Value())

	in.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "Lyo", in.Value())
}

func TestPlaceInput_SetValueThenType(t *testing.T) {
	in := NewPlaceInput(nil)

	in.SetValue("Madrid, Madrid (Spain)")
	in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'!'}})

	assert.Equal(t, "Madrid, Madrid (Spain)!", in.Value())
}

func TestPlaceInput_View(t *testing.T) {
	in := NewPlaceInput(nil)

	assert.Contains(t, in.View(), "Place")
}

func TestPlaceInput_FocusBlur(t *testing.T) {
	in := NewPlaceInput(nil)

	in.Blur()
	assert.False(t, in.Focused())

	in.Focus()
	assert.True(t, in.Focused())
}

func TestPlaceInput_SetWidth(t *testing.T) {
	in := NewPlaceInput(nil)

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())
	assert.Equal(t, 88, in.textinput.Width)

	in.SetWidth(10)
	assert.Equal(t, 20, in.textinput.Width)
}
