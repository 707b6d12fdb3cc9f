package prompt

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo/internal/ui"
)

// TUI asks each question with an inline Bubble Tea text input.
type TUI struct {
	in  io.Reader
	out io.Writer
}

// NewTUI returns a prompter running on the given terminal streams.
func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{in: in, out: out}
}

func (p *TUI) Ask(question string) (string, error) {
	prog := tea.NewProgram(newAskModel(question), tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	m, ok := final.(askModel)
	if !ok || m.aborted {
		return "", ErrAborted
	}
	return m.input.Value(), nil
}

// askModel is a single-question Bubble Tea model.
type askModel struct {
	question string
	input    textinput.Model
	done     bool
	aborted  bool
}

func newAskModel(question string) askModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0 // titles have no length limit
	ti.Focus()
	return askModel{question: question, input: ti}
}

func (m askModel) Init() tea.Cmd { return textinput.Blink }

func (m askModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			m.done = true
			m.input.Blur()
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC, tea.KeyCtrlD:
			m.aborted = true
			m.input.Blur()
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m askModel) View() string {
	q := ui.Current().Prompt.Render(m.question)
	if m.done || m.aborted {
		// leave the answered question on screen
		return q + m.input.Value() + "\n"
	}
	return q + m.input.View()
}
