package picker

import (
	"errors"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
)

// Item 是可选择的一个模型条目。
type Item struct {
	ID   string
	Name string
}

// ErrCancelled is returned when the user leaves the picker without choosing.
var ErrCancelled = errors.New("selection cancelled")

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type match struct {
	itemIdx int
	score   int
}

// Model 实现 bubbletea 的列表选择交互；Update/View 均为纯函数，便于测试。
type Model struct {
	input     textinput.Model
	items     []Item
	matches   []match
	cursor    int
	width     int
	maxRows   int
	chosen    *Item
	cancelled bool
	copied    string
}

func New(items []Item) Model {
	input := textinput.New()
	input.Placeholder = "filter models"
	input.Prompt = "> "
	input.Focus()

	m := Model{
		input:   input,
		items:   items,
		width:   80,
		maxRows: 12,
	}
	m.refilter()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			if item, ok := m.Current(); ok {
				m.chosen = &item
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyDown:
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		case tea.KeyCtrlY:
			if item, ok := m.Current(); ok {
				// 复制失败不阻断选择流程，仅忽略。
				if err := clipboard.WriteAll(item.ID); err == nil {
					m.copied = item.ID
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select a model"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.matches) == 0 {
		b.WriteString(dimStyle.Render("no models match"))
		b.WriteString("\n")
	}
	rows := m.maxRows
	if rows > len(m.matches) {
		rows = len(m.matches)
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	for i := start; i < start+rows; i++ {
		item := m.items[m.matches[i].itemIdx]
		line := item.ID
		if item.Name != "" && item.Name != item.ID {
			line += "  " + dimStyle.Render(item.Name)
		}
		line = runewidth.Truncate(line, m.width-4, "…")
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + selectedStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	footer := "enter select · ctrl+y copy id · esc cancel"
	if m.copied != "" {
		footer = "copied " + m.copied + " · " + footer
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(footer))
	return b.String()
}

// Current 返回光标下的条目。
func (m Model) Current() (Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return Item{}, false
	}
	return m.items[m.matches[m.cursor].itemIdx], true
}

// Chosen 返回最终选择；cancelled 时 ok 为 false。
func (m Model) Chosen() (Item, bool) {
	if m.chosen == nil {
		return Item{}, false
	}
	return *m.chosen, true
}

func (m *Model) refilter() {
	query := strings.TrimSpace(strings.ToLower(m.input.Value()))
	m.cursor = 0
	if query == "" {
		m.matches = make([]match, 0, len(m.items))
		for i := range m.items {
			m.matches = append(m.matches, match{itemIdx: i})
		}
		return
	}

	keys := make([]string, 0, len(m.items))
	for _, item := range m.items {
		key := strings.ToLower(item.ID)
		if item.Name != "" {
			key += " " + strings.ToLower(item.Name)
		}
		keys = append(keys, key)
	}
	results := fuzzy.Find(query, keys)
	m.matches = make([]match, 0, len(results))
	for _, res := range results {
		m.matches = append(m.matches, match{itemIdx: res.Index, score: res.Score})
	}
	sort.SliceStable(m.matches, func(i, j int) bool {
		if m.matches[i].score == m.matches[j].score {
			return m.items[m.matches[i].itemIdx].ID < m.items[m.matches[j].itemIdx].ID
		}
		return m.matches[i].score > m.matches[j].score
	})
}

// Run 启动交互式选择并返回用户选中的条目。
func Run(items []Item) (Item, error) {
	if len(items) == 0 {
		return Item{}, errors.New("no models to choose from")
	}
	prog := tea.NewProgram(New(items))
	final, err := prog.Run()
	if err != nil {
		return Item{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return Item{}, errors.New("unexpected picker model type")
	}
	if item, ok := m.Chosen(); ok {
		return item, nil
	}
	return Item{}, ErrCancelled
}
