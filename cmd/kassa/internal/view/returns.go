package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bakdaulet/kassa/internal/api"
)

type returnsState int

const (
	returnsStateForm returnsState = iota
	returnsStateResult
)

// ReturnsModel records a product return against a backend-configured
// reason and puts the quantity back in stock.
type ReturnsModel struct {
	CommonModel
	client *api.Client

	state   returnsState
	form    *huh.Form
	reasons []api.ReturnReason

	status  string
	errText string

	// Form bindings
	formBarcode string
	formQty     string
	formReason  string
}

func NewReturnsModel(client *api.Client) ReturnsModel {
	return ReturnsModel{client: client}
}

func (m ReturnsModel) Title() string { return "Returns" }

func (m ReturnsModel) ShortHelp() string {
	if m.state == returnsStateResult {
		return "Esc: back"
	}

	return "Navigate form | Esc: back"
}

func (m ReturnsModel) Init() tea.Cmd {
	return m.loadReasonsCmd()
}

func (m ReturnsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reasonsLoadedMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("Loading reasons failed: %v", msg.err)
			return m, nil
		}

		m.errText = ""
		m.reasons = msg.reasons

		return m.buildForm()

	case returnDoneMsg:
		m.state = returnsStateResult
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrNotFound) {
				m.errText = "No product with that barcode."
			} else {
				m.errText = fmt.Sprintf("Return failed: %v", msg.err)
			}

			return m, nil
		}

		m.errText = ""
		m.status = fmt.Sprintf("Return of %d item(s) recorded.", msg.ret.Quantity)

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		if m.state == returnsStateResult {
			m.status = ""
			m.errText = ""

			return m.buildForm()
		}

		return m, Back
	}

	if m.state != returnsStateForm || m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.submitCmd()
}

func (m ReturnsModel) buildForm() (tea.Model, tea.Cmd) {
	m.formBarcode = ""
	m.formQty = "1"
	m.formReason = ""

	options := make([]huh.Option[string], 0, len(m.reasons))
	for _, reason := range m.reasons {
		options = append(options, huh.NewOption(reason.Name, reason.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("barcode").
				Title("Barcode").
				Value(&m.formBarcode).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("barcode cannot be empty")
					}
					return nil
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

			huh.NewSelect[string]().
				Key("reason").
				Title("Reason").
				Options(options...).
				Value(&m.formReason),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = returnsStateForm

	return m, m.form.Init()
}

func (m ReturnsModel) View() string {
	if m.state == returnsStateResult {
		if m.errText != "" {
			return lipgloss.NewStyle().Padding(2).Render(errStyle(m.errText) + "\n\n(Esc for a new return)")
		}

		return lipgloss.NewStyle().Padding(2).Render(okStyle(m.status) + "\n\n(Esc for a new return)")
	}

	if m.form == nil {
		if m.errText != "" {
			return lipgloss.NewStyle().Padding(2).Render(errStyle(m.errText))
		}

		return lipgloss.NewStyle().Padding(2).Render("Loading return reasons...")
	}

	return lipgloss.NewStyle().Padding(2).Render("Record a return\n\n" + m.form.View())
}

// Messages

type reasonsLoadedMsg struct {
	reasons []api.ReturnReason
	err     error
}

func (m ReturnsModel) loadReasonsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		reasons, err := m.client.ReturnReasons(ctx)

		return reasonsLoadedMsg{reasons: reasons, err: err}
	}
}

type returnDoneMsg struct {
	ret *api.Return
	err error
}

func (m ReturnsModel) submitCmd() tea.Cmd {
	barcode := strings.TrimSpace(m.form.GetString("barcode"))
	qty, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("quantity")))
	reason := m.form.GetString("reason")

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		ret, err := m.client.CreateReturn(ctx, api.CreateReturnParams{
			Barcode:  barcode,
			Quantity: qty,
			ReasonID: reason,
		})

		return returnDoneMsg{ret: ret, err: err}
	}
}
