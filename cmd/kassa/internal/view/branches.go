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

type branchesState int

const (
	branchesStateBrowse branchesState = iota
	branchesStateForm
	branchesStateDeleteConfirm
)

type BranchesModel struct {
	CommonModel
	client  *api.Client
	isAdmin bool

	state    branchesState
	table    table.Model
	branches []api.Branch
	form     *huh.Form
	editing  bool

	errText string

	// Form bindings
	formName    string
	formAddress string
	formContact string
}

func NewBranchesModel(client *api.Client, isAdmin bool) BranchesModel {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 24},
		{Title: "Address", Width: 34},
		{Title: "Contact", Width: 20},
	}

	return BranchesModel{
		client:  client,
		isAdmin: isAdmin,
		table:   newTable(columns, 15),
	}
}

func (m BranchesModel) Title() string { return "Branches" }

func (m BranchesModel) ShortHelp() string {
	switch m.state {
	case branchesStateBrowse:
		help := "Esc: back | r: refresh"
		if m.isAdmin {
			help += " | n: new | e: edit | x: delete"
		}

		return help
	case branchesStateDeleteConfirm:
		return "y: delete | n: keep"
	}

	return "Navigate form | Esc: cancel"
}

func (m BranchesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BranchesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case branchesLoadedMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("Loading failed: %v", msg.err)
			return m, nil
		}

		m.errText = ""
		m.branches = msg.branches
		m.refreshTable()

		return m, nil

	case branchSavedMsg:
		m.state = branchesStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.errText = fmt.Sprintf("Saving failed: %v", msg.err)
			return m, nil
		}

		m.errText = ""

		return m, m.loadCmd()

	case branchDeletedMsg:
		m.state = branchesStateBrowse
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
	case branchesStateBrowse:
		return m.updateBrowse(msg)
	case branchesStateForm:
		return m.updateForm(msg)
	case branchesStateDeleteConfirm:
		return m.updateDeleteConfirm(msg)
	}

	return m, nil
}

func (m BranchesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "n":
			if m.isAdmin {
				return m.enterForm(nil)
			}
		case "e":
			if m.isAdmin {
				if b := m.selected(); b != nil {
					return m.enterForm(b)
				}
			}
		case "x":
			if m.isAdmin && m.selected() != nil {
				m.state = branchesStateDeleteConfirm
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BranchesModel) selected() *api.Branch {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.branches) {
		return nil
	}

	return &m.branches[idx]
}

func (m BranchesModel) enterForm(b *api.Branch) (tea.Model, tea.Cmd) {
	m.editing = b != nil

	if b != nil {
		m.formName = b.Name
		m.formAddress = b.Address
		m.formContact = b.Contact
	} else {
		m.formName = ""
		m.formAddress = ""
		m.formContact = ""
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
				Key("address").
				Title("Address").
				Value(&m.formAddress),

			huh.NewInput().
				Key("contact").
				Title("Contact").
				Value(&m.formContact),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = branchesStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m BranchesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = branchesStateBrowse
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

func (m BranchesModel) updateDeleteConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		b := m.selected()
		if b == nil {
			m.state = branchesStateBrowse
			return m, nil
		}

		return m, m.deleteCmd(b.ID)
	case "n", "esc":
		m.state = branchesStateBrowse
		return m, nil
	}

	return m, nil
}

func (m BranchesModel) View() string {
	if m.state == branchesStateDeleteConfirm {
		b := m.selected()
		name := ""
		if b != nil {
			name = b.Name
		}

		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("Delete branch %q? (y/n)", name),
		)
	}

	content := tableBorderStyle.Render(m.table.View())

	if m.form != nil {
		title := "New Branch"
		if m.editing {
			title = "Edit Branch"
		}

		panel := panelStyle.Width(54).Render(title + "\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.errText != "" {
		content = errStyle(m.errText) + "\n" + content
	}

	return padStyle.Render(content)
}

func (m *BranchesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.branches))
	for _, b := range m.branches {
		rows = append(rows, table.Row{
			strconv.FormatInt(b.ID, 10),
			b.Name,
			b.Address,
			b.Contact,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type branchesLoadedMsg struct {
	branches []api.Branch
	err      error
}

func (m BranchesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		branches, err := m.client.ListBranches(ctx)

		return branchesLoadedMsg{branches: branches, err: err}
	}
}

type branchSavedMsg struct {
	err error
}

func (m BranchesModel) saveCmd() tea.Cmd {
	editing := m.editing

	var id int64
	if b := m.selected(); b != nil {
		id = b.ID
	}

	params := api.BranchParams{
		Name:    strings.TrimSpace(m.form.GetString("name")),
		Address: strings.TrimSpace(m.form.GetString("address")),
		Contact: strings.TrimSpace(m.form.GetString("contact")),
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		var err error
		if editing {
			_, err = m.client.UpdateBranch(ctx, id, params)
		} else {
			_, err = m.client.CreateBranch(ctx, params)
		}

		return branchSavedMsg{err: err}
	}
}

type branchDeletedMsg struct {
	err error
}

func (m BranchesModel) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return branchDeletedMsg{err: m.client.DeleteBranch(ctx, id)}
	}
}
