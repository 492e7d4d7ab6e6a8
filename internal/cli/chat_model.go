package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/amrenholt/deckbuild/internal/cli/formatter"
	"github.com/amrenholt/deckbuild/internal/service"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// chatMode tracks which interaction mode the chat session is in.
type chatMode int

const (
	modePicking chatMode = iota // huh template picker is active
	modeTyping                  // awaiting user input
	modeWorking                 // a generation or revision is in flight
)

// deckReadyMsg carries the outcome of an asynchronous generation.
type deckReadyMsg struct {
	res *service.Result
	err error
}

// chatModel is the bubbletea Model for the interactive deck chat.
type chatModel struct {
	// bubbletea components
	input  textinput.Model
	form   *huh.Form // template picker (nil once a template is chosen)
	picked *string   // picker result; heap-allocated because the model is copied on Update
	width  int

	// session state
	app          *App
	outDir       string
	templatePath string
	threadID     string
	topic        string
	version      int

	// mode management
	mode chatMode

	// input history
	history    []string
	historyIdx int

	// lifecycle
	quitting bool
}

// newChatModel creates a chat model. templateChoices, when non-empty and no
// template was forced, triggers an initial picker form.
func newChatModel(app *App, templatePath, outDir string, templateChoices []string) chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.Placeholder = "Topic for your deck"
	ti.CharLimit = 500

	m := chatModel{
		input:        ti,
		app:          app,
		outDir:       outDir,
		templatePath: templatePath,
		mode:         modeTyping,
		version:      1,
	}

	if templatePath == "" && len(templateChoices) > 0 {
		m.picked = new(string)
		m.form = templatePickerForm(templateChoices, m.picked)
		m.mode = modePicking
	}

	return m
}

// templatePickerForm builds a huh select over the discovered template files.
// The built-in starter template is always the first option.
func templatePickerForm(choices []string, result *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(choices)+1)
	options = append(options, huh.NewOption("Starter (built in)", ""))
	for _, c := range choices {
		options = append(options, huh.NewOption(filepath.Base(c), c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which template?").
				Options(options...).
				Value(result),
		),
	).WithTheme(deckbuildHuhTheme()).WithShowHelp(false)
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m chatModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		tea.Println(chatWelcome()),
	}
	if m.form != nil {
		cmds = append(cmds, m.form.Init())
	}
	return tea.Batch(cmds...)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width)
		}
		return m, nil

	case deckReadyMsg:
		return m.finishWork(msg)

	case tea.KeyMsg:
		// Global quit.
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.mode {
		case modePicking:
			return m.updatePicker(msg)
		case modeWorking:
			// Keys are ignored while the model is thinking.
			return m, nil
		default:
			return m.updateTyping(msg)
		}
	}

	// When picking, forward non-key messages to the huh form so it can
	// initialize and transition focus.
	if m.mode == modePicking && m.form != nil {
		return m.updatePicker(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) View() string {
	if m.quitting {
		return formatter.Dim("Goodbye.") + "\n"
	}
	if m.mode == modePicking && m.form != nil {
		return m.form.View()
	}
	if m.mode == modeWorking {
		return m.promptPrefix() + formatter.Dim("working on your deck…")
	}
	return m.promptPrefix() + m.input.View()
}

func (m *chatModel) promptPrefix() string {
	if m.threadID == "" {
		return formatter.StylePurple.Render("deck") + " " + formatter.Dim("❯") + " "
	}
	return formatter.StylePurple.Render("deck") + " " +
		formatter.Dim("(") + formatter.StyleGreen.Render("v"+fmt.Sprint(m.version-1)) + formatter.Dim(")") +
		" " + formatter.Dim("❯") + " "
}

// ── picker mode ──────────────────────────────────────────────────────────────

func (m chatModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.templatePath = *m.picked
		m.mode = modeTyping
		m.form = nil
		label := "starter"
		if m.templatePath != "" {
			label = filepath.Base(m.templatePath)
		}
		return m, tea.Batch(cmd, tea.Println(formatter.Dim("Using template: "+label)))
	}
	return m, cmd
}

// ── typing mode ──────────────────────────────────────────────────────────────

func (m chatModel) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if input == "" {
			return m, nil
		}
		m.addHistory(input)
		return m.handleInput(input)

	case tea.KeyUp:
		m.historyUp()
		return m, nil

	case tea.KeyDown:
		m.historyDown()
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m chatModel) handleInput(input string) (tea.Model, tea.Cmd) {
	switch input {
	case "/quit", "/exit":
		m.quitting = true
		return m, tea.Quit

	case "/reset":
		if m.threadID != "" {
			_ = m.app.decks(m.templatePath).ResetThread(context.Background(), m.threadID)
		}
		m.threadID = ""
		m.topic = ""
		m.version = 1
		m.input.Placeholder = "Topic for your deck"
		return m, tea.Println(formatter.Dim("Thread reset. Enter a new topic."))

	case "/help":
		return m, tea.Println(chatHelp())
	}

	echo := tea.Println(m.promptPrefix() + formatter.StyleFg.Render(input))

	if m.threadID == "" {
		m.topic = input
		m.mode = modeWorking
		return m, tea.Batch(echo, m.generateCmd(input))
	}
	m.mode = modeWorking
	return m, tea.Batch(echo, m.reviseCmd(input))
}

// ── generation ───────────────────────────────────────────────────────────────

func (m *chatModel) outPath() string {
	name := fmt.Sprintf("%s-v%d.pptx", slugify(m.topic), m.version)
	return filepath.Join(m.outDir, name)
}

func (m *chatModel) generateCmd(topic string) tea.Cmd {
	decks := m.app.decks(m.templatePath)
	out := m.outPath()
	return func() tea.Msg {
		res, err := decks.Generate(context.Background(), topic, "", out)
		return deckReadyMsg{res: res, err: err}
	}
}

func (m *chatModel) reviseCmd(instructions string) tea.Cmd {
	decks := m.app.decks(m.templatePath)
	threadID := m.threadID
	out := m.outPath()
	return func() tea.Msg {
		res, err := decks.Revise(context.Background(), threadID, instructions, out)
		return deckReadyMsg{res: res, err: err}
	}
}

func (m chatModel) finishWork(msg deckReadyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeTyping

	if msg.err != nil {
		return m, tea.Println(formatter.StyleRed.Render("✖ ") + msg.err.Error())
	}

	m.threadID = msg.res.ThreadID
	m.version++
	m.input.Placeholder = "How should the deck change?"

	lines := []string{formatter.DeckSummary(msg.res.Path, len(msg.res.Document.Slides))}
	for _, w := range msg.res.Warnings {
		lines = append(lines, "  "+formatter.WarningLine(w))
	}
	return m, tea.Println(strings.Join(lines, "\n"))
}

// ── history ──────────────────────────────────────────────────────────────────

func (m *chatModel) addHistory(input string) {
	m.history = append(m.history, input)
	m.historyIdx = len(m.history)
}

func (m *chatModel) historyUp() {
	if m.historyIdx > 0 {
		m.historyIdx--
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
	}
}

func (m *chatModel) historyDown() {
	if m.historyIdx < len(m.history)-1 {
		m.historyIdx++
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
	} else if m.historyIdx == len(m.history)-1 {
		m.historyIdx = len(m.history)
		m.input.Reset()
	}
}

// ── static text ──────────────────────────────────────────────────────────────

func chatWelcome() string {
	return formatter.Header("deckbuild chat") + "\n" +
		formatter.Dim("Enter a topic to generate a deck, then keep typing to revise it.\n"+
			"/reset starts over, /help lists commands, Esc quits.")
}

func chatHelp() string {
	return formatter.Dim(strings.Join([]string{
		"/reset   discard the current thread and start a new deck",
		"/help    show this help",
		"/quit    leave the chat",
	}, "\n"))
}
