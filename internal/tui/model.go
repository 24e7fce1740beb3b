// Package tui is a terminal front end for eatnsplit built on bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmynk/eatnsplit/internal/app"
	"github.com/mmynk/eatnsplit/internal/calculator"
	"github.com/mmynk/eatnsplit/internal/models"
)

type field int

const (
	fieldNone field = iota
	fieldName
	fieldImage
	fieldBillTotal
	fieldUserPaid
	fieldPayer
)

var (
	addFields   = []field{fieldName, fieldImage}
	splitFields = []field{fieldBillTotal, fieldUserPaid, fieldPayer}
)

// Model is the bubbletea model. It keeps only cursor and focus state; the
// friend list and both forms are re-read from the App after every key.
type Model struct {
	ctx    context.Context
	app    *app.App
	view   app.View
	cursor int
	focus  field
	buffer string // text of the focused field while editing
	err    error
}

// New creates a Model driving a.
func New(ctx context.Context, a *app.App) Model {
	m := Model{ctx: ctx, app: a}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) refresh() {
	v, err := m.app.View(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	m.view = v
	if m.cursor >= len(v.Friends) {
		m.cursor = max(len(v.Friends)-1, 0)
	}
	// Drop focus from a form that is no longer open.
	if (m.focus == fieldName || m.focus == fieldImage) && v.AddFriend == nil {
		m.focus = fieldNone
	}
	if (m.focus == fieldBillTotal || m.focus == fieldUserPaid || m.focus == fieldPayer) && v.SplitBill == nil {
		m.focus = fieldNone
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	m.err = nil
	var cmd tea.Cmd
	if m.focus == fieldNone {
		cmd = m.updateList(key)
	} else {
		m.updateForm(key)
	}
	m.refresh()
	return m, cmd
}

func (m *Model) updateList(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.Friends)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.view.Friends) > 0 {
			m.err = m.app.SelectFriend(m.ctx, m.view.Friends[m.cursor].ID)
		}
	case "a":
		m.app.ToggleAddFriend()
		m.refresh()
		if m.view.AddFriend != nil {
			m.focusField(fieldName)
		}
	case "tab":
		switch {
		case m.view.AddFriend != nil:
			m.focusField(fieldName)
		case m.view.SplitBill != nil:
			m.focusField(fieldBillTotal)
		}
	}
	return nil
}

func (m *Model) updateForm(key tea.KeyMsg) {
	switch key.Type {
	case tea.KeyEsc:
		m.focus = fieldNone
	case tea.KeyTab, tea.KeyShiftTab:
		m.cycleFocus(key.Type == tea.KeyShiftTab)
	case tea.KeyEnter:
		m.submit()
	case tea.KeyBackspace:
		if m.focus == fieldPayer {
			return
		}
		runes := []rune(m.buffer)
		if len(runes) > 0 {
			m.edit(string(runes[:len(runes)-1]))
		}
	case tea.KeySpace, tea.KeyLeft, tea.KeyRight:
		if m.focus == fieldPayer {
			m.togglePayer()
			return
		}
		if key.Type == tea.KeySpace {
			m.edit(m.buffer + " ")
		}
	case tea.KeyRunes:
		if m.focus == fieldPayer {
			if string(key.Runes) == "p" {
				m.togglePayer()
			}
			return
		}
		m.edit(m.buffer + string(key.Runes))
	}
}

// focusField moves focus to f and loads its current value for editing.
func (m *Model) focusField(f field) {
	m.focus = f
	m.buffer = ""
	switch f {
	case fieldName:
		m.buffer = m.view.AddFriend.Name
	case fieldImage:
		m.buffer = m.view.AddFriend.Image
	case fieldBillTotal:
		m.buffer = amountText(m.view.SplitBill.BillTotal)
	case fieldUserPaid:
		m.buffer = amountText(m.view.SplitBill.UserPaid)
	}
}

func (m *Model) cycleFocus(backwards bool) {
	fields := addFields
	if m.view.SplitBill != nil && m.view.AddFriend == nil {
		fields = splitFields
	}
	i := 0
	for j, f := range fields {
		if f == m.focus {
			i = j
		}
	}
	if backwards {
		i = (i - 1 + len(fields)) % len(fields)
	} else {
		i = (i + 1) % len(fields)
	}
	m.focusField(fields[i])
}

// edit applies text to the focused field. Text the form refuses is dropped
// and the buffer keeps its previous contents.
func (m *Model) edit(text string) {
	var accepted bool
	switch m.focus {
	case fieldName:
		accepted = m.app.SetFriendName(text)
	case fieldImage:
		accepted = m.app.SetFriendImage(text)
	case fieldBillTotal:
		accepted = m.app.SetBillTotal(text)
	case fieldUserPaid:
		accepted = m.app.SetUserPaid(text)
	}
	if accepted {
		m.buffer = text
	}
}

func (m *Model) togglePayer() {
	draft, open := m.app.BillDraft()
	if !open {
		return
	}
	next := models.PayerFriend
	if draft.Payer == models.PayerFriend {
		next = models.PayerUser
	}
	m.app.SetPayer(next)
}

func (m *Model) submit() {
	switch m.focus {
	case fieldName, fieldImage:
		friend, err := m.app.SubmitAddFriend(m.ctx)
		m.err = err
		if friend != nil {
			m.focus = fieldNone
			m.refresh()
			m.cursor = len(m.view.Friends) - 1
		}
	case fieldBillTotal, fieldUserPaid, fieldPayer:
		settlement, err := m.app.SubmitSplitBill(m.ctx)
		m.err = err
		if settlement != nil {
			m.focus = fieldNone
		}
	}
}

func amountText(v float64) string {
	if v == 0 {
		return ""
	}
	return calculator.FormatAmount(v)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Eat-'N-Split"))
	b.WriteString("\n\n")

	for i, f := range m.view.Friends {
		marker := "  "
		if i == m.cursor && m.focus == fieldNone {
			marker = cursorStyle.Render("> ")
		}
		row := fmt.Sprintf("%-12s %s", f.Name, balanceStyle(f.Status).Render(f.Message))
		if f.Selected {
			row = selectedStyle.Render(row)
		}
		b.WriteString(marker + row + "\n")
	}

	s := m.view.Summary
	b.WriteString(mutedStyle.Render(fmt.Sprintf("\nOwed to you %s£ · You owe %s£\n",
		calculator.FormatAmount(s.OwedToYou), calculator.FormatAmount(s.YouOwe))))

	if af := m.view.AddFriend; af != nil {
		form := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Add friend"),
			m.fieldLine("Friend name", fieldName, af.Name),
			m.fieldLine("Image URL", fieldImage, af.Image),
		)
		b.WriteString("\n" + formStyle.Render(form) + "\n")
	}

	if sb := m.view.SplitBill; sb != nil {
		payer := "You"
		if sb.Payer == models.PayerFriend {
			payer = sb.Friend.Name
		}
		form := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Split a bill with "+sb.Friend.Name),
			m.fieldLine("Bill value", fieldBillTotal, amountText(sb.BillTotal)),
			m.fieldLine("Your expense", fieldUserPaid, amountText(sb.UserPaid)),
			labelStyle.Render(sb.Friend.Name+"'s expense")+mutedStyle.Render(calculator.FormatAmount(sb.FriendPaid)),
			m.fieldLine("Who is paying the bill?", fieldPayer, payer),
		)
		b.WriteString("\n" + formStyle.Render(form) + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n" + mutedStyle.Render(m.help()) + "\n")
	return b.String()
}

func (m Model) fieldLine(label string, f field, value string) string {
	if m.focus == f {
		if f != fieldPayer {
			value = m.buffer
		}
		return labelStyle.Render(label) + focusedStyle.Render(value+" ")
	}
	return labelStyle.Render(label) + value
}

func (m Model) help() string {
	if m.focus == fieldNone {
		return fmt.Sprintf("↑/↓ move · enter select · a %s · tab edit form · q quit",
			strings.ToLower(m.view.AddButtonLabel))
	}
	if m.focus == fieldPayer {
		return "space/p switch payer · tab next field · enter submit · esc back"
	}
	return "type to edit · tab next field · enter submit · esc back"
}

func balanceStyle(s calculator.BalanceStatus) lipgloss.Style {
	switch s {
	case calculator.StatusYouOwe:
		return oweStyle
	case calculator.StatusOwesYou:
		return owedStyle
	default:
		return evenStyle
	}
}
