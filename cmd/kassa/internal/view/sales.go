package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bakdaulet/kassa/internal/api"
	"github.com/bakdaulet/kassa/internal/cart"
	"github.com/bakdaulet/kassa/internal/sale"
	"github.com/bakdaulet/kassa/internal/scan"
)

type salesState int

const (
	salesStateScan salesState = iota
	salesStateEditLine
	salesStateCustomer
	salesStateConfirm
	salesStateDone
)

// SalesModel is the register screen: scan or type codes, build the cart,
// check out. The scan classifier separates hardware scanner bursts from
// manual typing so a scanned code adds itself without an explicit Enter.
type SalesModel struct {
	CommonModel
	saleService *sale.Service
	client      *api.Client

	state      salesState
	classifier *scan.Classifier
	cart       *cart.Cart
	cursor     int
	form       *huh.Form

	dailyCount int
	dailyCents int64

	status  string
	errText string

	// Form bindings
	formPrice    string
	formQty      string
	formDebt     bool
	formName     string
	formPhone    string
	formComment  string
	editedLineID string
}

func NewSalesModel(saleSvc *sale.Service, client *api.Client) SalesModel {
	return SalesModel{
		saleService: saleSvc,
		client:      client,
		classifier:  scan.New(),
		cart:        cart.New(),
	}
}

func (m SalesModel) Title() string { return "Sale" }

func (m SalesModel) ShortHelp() string {
	switch m.state {
	case salesStateScan:
		return "Scan or type a code | e: edit | x: remove | c: customer | d: debt | p: pay | Esc: back"
	case salesStateConfirm:
		return "Enter: confirm | Esc: cancel"
	case salesStateDone:
		return "Esc: new sale"
	}

	return "Navigate form | Esc: cancel"
}

func (m SalesModel) Init() tea.Cmd {
	return m.loadDailyCmd()
}

func (m SalesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scanDeadlineMsg:
		return m.handleDeadline(msg)

	case resolveResultMsg:
		return m.handleResolve(msg)

	case checkoutResultMsg:
		return m.handleCheckout(msg)

	case dailySalesMsg:
		if msg.err == nil {
			m.dailyCount = len(msg.sales)
			m.dailyCents = 0
			for _, s := range msg.sales {
				m.dailyCents += s.TotalCents
			}
		}

		return m, nil
	}

	switch m.state {
	case salesStateScan:
		return m.updateScan(msg)
	case salesStateEditLine, salesStateCustomer:
		return m.updateForm(msg)
	case salesStateConfirm:
		return m.updateConfirm(msg)
	case salesStateDone:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = salesStateScan
			m.status = ""

			return m, nil
		}

		return m, nil
	}

	return m, nil
}

func (m SalesModel) updateScan(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyEsc:
		if m.classifier.Value() != "" {
			m.classifier.Reset()
			return m, nil
		}

		return m, Back

	case tea.KeyBackspace:
		m.classifier.Backspace()
		return m, nil

	case tea.KeyEnter:
		if code, submitted := m.classifier.Enter(); submitted {
			return m, m.resolveCmd(code)
		}

		return m, nil

	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}

		return m, nil

	case tea.KeyDown:
		if m.cursor < m.cart.Len()-1 {
			m.cursor++
		}

		return m, nil

	case tea.KeyRunes:
		// Single letters act as commands while the code field is empty;
		// anything else feeds the classifier.
		if m.classifier.Value() == "" && len(keyMsg.Runes) == 1 {
			if model, cmd, handled := m.handleCommand(keyMsg.Runes[0]); handled {
				return model, cmd
			}
		}

		for _, r := range keyMsg.Runes {
			m.classifier.Insert(r)
		}

		return m, m.scheduleDeadline()
	}

	return m, nil
}

// handleCommand dispatches single-letter shortcuts on the cart.
func (m SalesModel) handleCommand(r rune) (tea.Model, tea.Cmd, bool) {
	switch r {
	case 'e':
		model, cmd := m.enterLineEdit()
		return model, cmd, true
	case 'x':
		lines := m.cart.Lines()
		if m.cursor < len(lines) {
			m.cart.RemoveLine(lines[m.cursor].ID)
			if m.cursor >= m.cart.Len() && m.cursor > 0 {
				m.cursor--
			}
		}

		return m, nil, true
	case 'c':
		model, cmd := m.enterCustomerForm()
		return model, cmd, true
	case 'd':
		m.cart.MarkAllAsDebt(!m.cart.HasDebt())
		return m, nil, true
	case 'p':
		if m.cart.Len() == 0 {
			m.errText = "Cart is empty."
			return m, nil, true
		}

		if m.cart.HasDebt() && m.cart.Customer() == nil {
			m.errText = "Debt sale needs a customer. Press c to add one."
			return m, nil, true
		}

		m.errText = ""
		m.state = salesStateConfirm

		return m, nil, true
	}

	return m, nil, false
}

// scheduleDeadline arms a wakeup for the classifier's quiescence timer.
// Stale wakeups are filtered by comparing the deadline they carry.
func (m SalesModel) scheduleDeadline() tea.Cmd {
	deadline, ok := m.classifier.Deadline()
	if !ok {
		return nil
	}

	return tea.Tick(time.Until(deadline), func(time.Time) tea.Msg {
		return scanDeadlineMsg{deadline: deadline}
	})
}

func (m SalesModel) handleDeadline(msg scanDeadlineMsg) (tea.Model, tea.Cmd) {
	current, ok := m.classifier.Deadline()
	if !ok || !current.Equal(msg.deadline) {
		return m, nil
	}

	if code, submitted := m.classifier.Expire(); submitted {
		return m, m.resolveCmd(code)
	}

	return m, nil
}

func (m SalesModel) handleResolve(msg resolveResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, api.ErrNotFound) {
			m.errText = fmt.Sprintf("No product with code %s.", msg.code)
		} else {
			m.errText = fmt.Sprintf("Lookup failed: %v", msg.err)
		}

		return m, nil
	}

	m.errText = ""
	m.cart.AddLine(msg.candidate)

	return m, nil
}

func (m SalesModel) handleCheckout(msg checkoutResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.state = salesStateScan
		m.errText = fmt.Sprintf("Checkout failed: %v", msg.err)

		return m, nil
	}

	m.cart.Clear()
	m.classifier.Reset()
	m.cursor = 0
	m.state = salesStateDone
	m.errText = ""
	m.status = fmt.Sprintf("Sale recorded: %s", FormatMoney(msg.sale.TotalCents))

	return m, m.loadDailyCmd()
}

func (m SalesModel) enterLineEdit() (tea.Model, tea.Cmd) {
	lines := m.cart.Lines()
	if m.cursor >= len(lines) {
		return m, nil
	}

	line := lines[m.cursor]
	m.editedLineID = line.ID.String()
	m.formPrice = FormatMoney(line.PriceCents)
	m.formQty = strconv.Itoa(line.Quantity)
	m.formDebt = line.IsDebt

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("price").
				Title("Price").
				Value(&m.formPrice).
				Validate(func(s string) error {
					_, err := ParseMoney(s)
					return err
				}),

			huh.NewInput().
				Key("quantity").
				Title("Quantity").
				Value(&m.formQty).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("quantity must be a positive number")
					}
					return nil
				}),

			huh.NewConfirm().
				Key("debt").
				Title("Debt line").
				Value(&m.formDebt),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = salesStateEditLine

	return m, m.form.Init()
}

func (m SalesModel) enterCustomerForm() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formPhone = ""
	m.formComment = ""

	if customer := m.cart.Customer(); customer != nil {
		m.formName = customer.Name
		m.formPhone = customer.Phone
		m.formComment = customer.Comment
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Customer name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("phone").
				Title("Phone").
				Value(&m.formPhone).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("phone cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("comment").
				Title("Comment").
				Value(&m.formComment),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = salesStateCustomer

	return m, m.form.Init()
}

func (m SalesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = salesStateScan
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == salesStateEditLine {
		m.applyLineEdit()
	} else {
		m.cart.SetCustomer(&cart.Customer{
			Name:    strings.TrimSpace(m.form.GetString("name")),
			Phone:   strings.TrimSpace(m.form.GetString("phone")),
			Comment: strings.TrimSpace(m.form.GetString("comment")),
		})
	}

	m.state = salesStateScan
	m.form = nil

	return m, nil
}

func (m *SalesModel) applyLineEdit() {
	for _, line := range m.cart.Lines() {
		if line.ID.String() != m.editedLineID {
			continue
		}

		price, err := ParseMoney(m.form.GetString("price"))
		if err != nil {
			return
		}

		qty, err := strconv.Atoi(strings.TrimSpace(m.form.GetString("quantity")))
		if err != nil {
			return
		}

		debt := m.form.GetBool("debt")
		m.cart.UpdateLine(line.ID, cart.LineUpdate{
			PriceCents: &price,
			Quantity:   &qty,
			IsDebt:     &debt,
		})

		return
	}
}

func (m SalesModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyEsc:
		m.state = salesStateScan
		return m, nil
	case tea.KeyEnter:
		return m, m.checkoutCmd()
	}

	return m, nil
}

func (m SalesModel) View() string {
	switch m.state {
	case salesStateDone:
		return lipgloss.NewStyle().Padding(2).Render(
			okStyle(m.status) + "\n\n(Esc to start a new sale)",
		)
	case salesStateConfirm:
		return m.viewConfirm()
	}

	content := m.viewCart()

	if m.form != nil {
		title := "Edit Line"
		if m.state == salesStateCustomer {
			title = "Customer"
		}

		panel := panelStyle.Width(44).Render(title + "\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return padStyle.Render(content)
}

func (m SalesModel) viewCart() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Today: %d sales, %s\n\n", m.dailyCount, FormatMoney(m.dailyCents))

	input := m.classifier.Value()
	marker := ""
	if m.classifier.Scanning() {
		marker = faintStyle.Render(" [scanner]")
	}

	fmt.Fprintf(&b, "Code: %s_%s\n\n", input, marker)

	lines := m.cart.Lines()
	if len(lines) == 0 {
		b.WriteString(faintStyle.Render("Cart is empty. Scan a barcode to begin.") + "\n")
	}

	for i, line := range lines {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		debt := ""
		if line.IsDebt {
			debt = " [debt]"
		}

		fmt.Fprintf(&b, "%s%-30s %3d x %8s = %10s%s\n",
			cursor, line.Name, line.Quantity,
			FormatMoney(line.PriceCents),
			FormatMoney(line.PriceCents*int64(line.Quantity)),
			debt,
		)
	}

	fmt.Fprintf(&b, "\nItems: %d   Total: %s\n", m.cart.ItemCount(), FormatMoney(m.cart.TotalCents()))

	if customer := m.cart.Customer(); customer != nil {
		fmt.Fprintf(&b, "Customer: %s (%s)\n", customer.Name, customer.Phone)
	}

	if m.errText != "" {
		b.WriteString("\n" + errStyle(m.errText) + "\n")
	}

	return b.String()
}

func (m SalesModel) viewConfirm() string {
	var b strings.Builder

	b.WriteString("Confirm sale\n\n")

	for _, line := range m.cart.Lines() {
		fmt.Fprintf(&b, "  %-30s %3d x %8s\n", line.Name, line.Quantity, FormatMoney(line.PriceCents))
	}

	fmt.Fprintf(&b, "\nTotal: %s\n", FormatMoney(m.cart.TotalCents()))

	if m.cart.HasDebt() {
		customer := m.cart.Customer()
		fmt.Fprintf(&b, "Debt sale for %s (%s)\n", customer.Name, customer.Phone)
	}

	b.WriteString("\nEnter to confirm, Esc to cancel.")

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

// Messages

type scanDeadlineMsg struct {
	deadline time.Time
}

type resolveResultMsg struct {
	code      string
	candidate cart.LineCandidate
	err       error
}

func (m SalesModel) resolveCmd(code string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		_, candidate, err := m.saleService.ResolveScan(ctx, code)

		return resolveResultMsg{code: code, candidate: candidate, err: err}
	}
}

type checkoutResultMsg struct {
	sale *api.Sale
	err  error
}

func (m SalesModel) checkoutCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		created, err := m.saleService.Checkout(ctx, m.cart)

		return checkoutResultMsg{sale: created, err: err}
	}
}

type dailySalesMsg struct {
	sales []api.Sale
	err   error
}

func (m SalesModel) loadDailyCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		sales, err := m.client.DailySales(ctx)

		return dailySalesMsg{sales: sales, err: err}
	}
}
