package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bakdaulet/kassa/internal/api"
)

type debtsState int

const (
	debtsStateBrowse debtsState = iota
	debtsStatePayConfirm
)

type DebtsModel struct {
	CommonModel
	client *api.Client

	state debtsState
	table table.Model
	debts []api.Debt

	status  string
	errText string
}

func NewDebtsModel(client *api.Client) DebtsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Customer", Width: 24},
		{Title: "Phone", Width: 18},
		{Title: "Amount", Width: 10},
		{Title: "Status", Width: 10},
	}

	return DebtsModel{
		client: client,
		table:  newTable(columns, 15),
	}
}

func (m DebtsModel) Title() string { return "Debts" }

func (m DebtsModel) ShortHelp() string {
	if m.state == debtsStatePayConfirm {
		return "y: mark paid | n: keep"
	}

	return "Esc: back | p: mark paid | r: refresh"
}

func (m DebtsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DebtsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debtsLoadedMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("Loading failed: %v", msg.err)
			return m, nil
		}

		m.errText = ""
		m.debts = msg.debts
		m.refreshTable()

		return m, nil

	case debtPaidMsg:
		m.state = debtsStateBrowse
		if msg.err != nil {
			m.errText = fmt.Sprintf("Payment failed: %v", msg.err)
			return m, nil
		}

		m.errText = ""
		m.status = fmt.Sprintf("Debt of %s settled.", FormatMoney(msg.debt.AmountCents))

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == debtsStatePayConfirm {
		return m.updatePayConfirm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "p":
			if d := m.selected(); d != nil && !d.IsPaid {
				m.state = debtsStatePayConfirm
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DebtsModel) selected() *api.Debt {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.debts) {
		return nil
	}

	return &m.debts[idx]
}

func (m DebtsModel) updatePayConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		d := m.selected()
		if d == nil {
			m.state = debtsStateBrowse
			return m, nil
		}

		return m, m.payCmd(d.ID)
	case "n", "esc":
		m.state = debtsStateBrowse
		return m, nil
	}

	return m, nil
}

func (m DebtsModel) View() string {
	if m.state == debtsStatePayConfirm {
		d := m.selected()
		name, amount := "", ""
		if d != nil {
			name = d.Customer.Name
			amount = FormatMoney(d.AmountCents)
		}

		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("Mark %s's debt of %s as paid? (y/n)", name, amount),
		)
	}

	content := tableBorderStyle.Render(m.table.View())

	if m.errText != "" {
		content = errStyle(m.errText) + "\n" + content
	} else if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return padStyle.Render(content)
}

func (m *DebtsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.debts))
	for _, d := range m.debts {
		status := "open"
		if d.IsPaid {
			status = "paid"
		}

		rows = append(rows, table.Row{
			FormatDate(d.Date),
			d.Customer.Name,
			d.Customer.Phone,
			FormatMoney(d.AmountCents),
			status,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type debtsLoadedMsg struct {
	debts []api.Debt
	err   error
}

func (m DebtsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		debts, err := m.client.ListDebts(ctx)

		return debtsLoadedMsg{debts: debts, err: err}
	}
}

type debtPaidMsg struct {
	debt *api.Debt
	err  error
}

func (m DebtsModel) payCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		debt, err := m.client.MarkDebtPaid(ctx, id)

		return debtPaidMsg{debt: debt, err: err}
	}
}
