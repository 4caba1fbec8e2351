package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bakdaulet/kassa/internal/api"
)

type cashiersState int

const (
	cashiersStateBrowse cashiersState = iota
	cashiersStateForm
	cashiersStateDeleteConfirm
)

// CashiersModel manages operator accounts. The whole screen is admin-only;
// the menu never offers it to a cashier.
type CashiersModel struct {
	CommonModel
	client *api.Client

	state    cashiersState
	table    table.Model
	cashiers []api.Cashier
	form     *huh.Form
	editing  bool

	errText string

	// Form bindings
	formName   string
	formEmail  string
	formBranch string
}

func NewCashiersModel(client *api.Client) CashiersModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 30},
		{Title: "Branch", Width: 8},
	}

	return CashiersModel{
		client: client,
		table:  newTable(columns, 15),
	}
}

func (m CashiersModel) Title() string { return "Cashiers" }

func (m CashiersModel) ShortHelp() string {
	switch m.state {
	case cashiersStateBrowse:
		return "Esc: back | n: new | e: edit | x: delete | r: refresh"
	case cashiersStateDeleteConfirm:
		return "y: delete | n: keep"
	}

	return "Navigate form | Esc: cancel"
}

func (m CashiersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CashiersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cashiersLoadedMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("Loading failed: %v", msg.err)
			return m, nil
		}

		m.errText = ""
		m.cashiers = msg.cashiers
		m.refreshTable()

		return m, nil

	case cashierSavedMsg:
		m.state = cashiersStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.errText = fmt.Sprintf("Saving failed: %v", msg.err)
			return m, nil
		}

		m.errText = ""

		return m, m.loadCmd()

	case cashierDeletedMsg:
		m.state = cashiersStateBrowse
		if msg.err != nil {
			m.errText = fmt.Sprintf("Deleting failed: %v", msg.err)
			return m, nil
		}

		m.errText = ""

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case cashiersStateBrowse:
		return m.updateBrowse(msg)
	case cashiersStateForm:
		return m.updateForm(msg)
	case cashiersStateDeleteConfirm:
		return m.updateDeleteConfirm(msg)
	}

	return m, nil
}

func (m CashiersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "n":
			return m.enterForm(nil)
		case "e":
			if c := m.selected(); c != nil {
				return m.enterForm(c)
			}
		case "x":
			if m.selected() != nil {
				m.state = cashiersStateDeleteConfirm
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CashiersModel) selected() *api.Cashier {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.cashiers) {
		return nil
	}

	return &m.cashiers[idx]
}

func (m CashiersModel) enterForm(c *api.Cashier) (tea.Model, tea.Cmd) {
	m.editing = c != nil

	if c != nil {
		m.formName = c.Name
		m.formEmail = c.Email
		m.formBranch = strconv.FormatInt(c.BranchID, 10)
	} else {
		m.formName = ""
		m.formEmail = ""
		m.formBranch = "1"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.formEmail).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("invalid email")
					}
					return nil
				}),

			huh.NewInput().
				Key("branch").
				Title("Branch ID").
				Value(&m.formBranch).
				Validate(func(s string) error {
					if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
						return fmt.Errorf("branch must be a number")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = cashiersStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m CashiersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = cashiersStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m CashiersModel) updateDeleteConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		c := m.selected()
		if c == nil {
			m.state = cashiersStateBrowse
			return m, nil
		}

		return m, m.deleteCmd(c.ID)
	case "n", "esc":
		m.state = cashiersStateBrowse
		return m, nil
	}

	return m, nil
}

func (m CashiersModel) View() string {
	if m.state == cashiersStateDeleteConfirm {
		c := m.selected()
		name := ""
		if c != nil {
			name = c.Name
		}

		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("Delete cashier %q? (y/n)", name),
		)
	}

	content := tableBorderStyle.Render(m.table.View())

	if m.form != nil {
		title := "New Cashier"
		if m.editing {
			title = "Edit Cashier"
		}

		panel := panelStyle.Width(54).Render(title + "\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.errText != "" {
		content = errStyle(m.errText) + "\n" + content
	}

	return padStyle.Render(content)
}

func (m *CashiersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.cashiers))
	for _, c := range m.cashiers {
		rows = append(rows, table.Row{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Email,
			strconv.FormatInt(c.BranchID, 10),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type cashiersLoadedMsg struct {
	cashiers []api.Cashier
	err      error
}

func (m CashiersModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		cashiers, err := m.client.ListCashiers(ctx)

		return cashiersLoadedMsg{cashiers: cashiers, err: err}
	}
}

type cashierSavedMsg struct {
	err error
}

func (m CashiersModel) saveCmd() tea.Cmd {
	editing := m.editing

	var id int64
	if c := m.selected(); c != nil {
		id = c.ID
	}

	branchID, _ := strconv.ParseInt(strings.TrimSpace(m.form.GetString("branch")), 10, 64)

	params := api.CashierParams{
		Name:     strings.TrimSpace(m.form.GetString("name")),
		Email:    strings.TrimSpace(m.form.GetString("email")),
		BranchID: branchID,
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		var err error
		if editing {
			_, err = m.client.UpdateCashier(ctx, id, params)
		} else {
			_, err = m.client.CreateCashier(ctx, params)
		}

		return cashierSavedMsg{err: err}
	}
}

type cashierDeletedMsg struct {
	err error
}

func (m CashiersModel) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return cashierDeletedMsg{err: m.client.DeleteCashier(ctx, id)}
	}
}
