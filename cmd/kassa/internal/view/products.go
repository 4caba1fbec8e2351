package view

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bakdaulet/kassa/internal/api"
	"github.com/bakdaulet/kassa/internal/importer"
)

const productPageSize = 50

type productsState int

const (
	productsStateBrowse productsState = iota
	productsStateSearch
	productsStateForm
	productsStateDeleteConfirm
	productsStateFilePick
	productsStateImporting
	productsStateImportResult
)

type ProductsModel struct {
	CommonModel
	client        *api.Client
	importService *importer.Service
	isAdmin       bool

	state      productsState
	table      table.Model
	products   []api.Product
	form       *huh.Form
	filePicker filepicker.Model
	page       int
	searchTerm string
	editing    bool // form edits the selected product instead of creating

	status  string
	errText string

	// Form bindings
	formBarcode string
	formName    string
	formPrice   string
	formStock   string
	formDesc    string
	formSearch  string
}

func NewProductsModel(client *api.Client, impSvc *importer.Service, isAdmin bool) ProductsModel {
	columns := []table.Column{
		{Title: "Barcode", Width: 15},
		{Title: "Name", Width: 34},
		{Title: "Price", Width: 10},
		{Title: "Stock", Width: 7},
	}

	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.Height = 15

	return ProductsModel{
		client:        client,
		importService: impSvc,
		isAdmin:       isAdmin,
		table:         newTable(columns, 15),
		filePicker:    fp,
		page:          1,
	}
}

func (m ProductsModel) Title() string { return "Products" }

func (m ProductsModel) ShortHelp() string {
	switch m.state {
	case productsStateBrowse:
		help := "Esc: back | s: search | [ ]: page | r: refresh"
		if m.isAdmin {
			help += " | n: new | e: edit | x: delete | i: import"
		}

		return help
	case productsStateDeleteConfirm:
		return "y: delete | n: keep"
	case productsStateFilePick:
		return "Enter: select | Esc: cancel"
	}

	return "Navigate form | Esc: cancel"
}

func (m ProductsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ProductsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("Loading failed: %v", msg.err)
			return m, nil
		}

		m.errText = ""
		m.products = msg.products
		m.refreshTable()

		return m, nil

	case productSavedMsg:
		m.state = productsStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.errText = fmt.Sprintf("Saving failed: %v", msg.err)
			return m, nil
		}

		m.errText = ""
		m.status = fmt.Sprintf("Saved %s.", msg.name)

		return m, m.loadCmd()

	case productDeletedMsg:
		m.state = productsStateBrowse
		if msg.err != nil {
			m.errText = fmt.Sprintf("Deleting failed: %v", msg.err)
			return m, nil
		}

		m.errText = ""

		return m, m.loadCmd()

	case importDoneMsg:
		m.state = productsStateImportResult
		if msg.err != nil {
			m.errText = fmt.Sprintf("Import failed: %v", msg.err)
			return m, nil
		}

		m.errText = ""
		m.status = fmt.Sprintf("Imported %d products, %d skipped.", msg.created, msg.skipped)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case productsStateBrowse:
		return m.updateBrowse(msg)
	case productsStateSearch, productsStateForm:
		return m.updateForm(msg)
	case productsStateDeleteConfirm:
		return m.updateDeleteConfirm(msg)
	case productsStateFilePick:
		return m.updateFilePick(msg)
	case productsStateImporting:
		return m, nil
	case productsStateImportResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = productsStateBrowse
			m.status = ""
		}

		return m, nil
	}

	return m, nil
}

func (m ProductsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "s":
			return m.enterSearch()
		case "[":
			if m.page > 1 {
				m.page--
				return m, m.loadCmd()
			}

			return m, nil
		case "]":
			if len(m.products) == productPageSize {
				m.page++
				return m, m.loadCmd()
			}

			return m, nil
		case "n":
			if m.isAdmin {
				return m.enterForm(nil)
			}
		case "e":
			if m.isAdmin {
				if p := m.selected(); p != nil {
					return m.enterForm(p)
				}
			}
		case "x":
			if m.isAdmin && m.selected() != nil {
				m.state = productsStateDeleteConfirm
				return m, nil
			}
		case "i":
			if m.isAdmin {
				m.state = productsStateFilePick
				return m, m.filePicker.Init()
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ProductsModel) selected() *api.Product {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.products) {
		return nil
	}

	return &m.products[idx]
}

func (m ProductsModel) enterSearch() (tea.Model, tea.Cmd) {
	m.formSearch = m.searchTerm

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("search").
				Title("Search by name (empty to show all)").
				Value(&m.formSearch),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = productsStateSearch
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProductsModel) enterForm(p *api.Product) (tea.Model, tea.Cmd) {
	m.editing = p != nil

	if p != nil {
		m.formBarcode = p.Barcode
		m.formName = p.Name
		m.formPrice = FormatMoney(p.PriceCents)
		m.formStock = strconv.Itoa(p.Stock)
		m.formDesc = p.Description
	} else {
		m.formBarcode = ""
		m.formName = ""
		m.formPrice = ""
		m.formStock = "0"
		m.formDesc = ""
	}

	barcode := huh.NewInput().
		Key("barcode").
		Title("Barcode").
		Value(&m.formBarcode).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("barcode cannot be empty")
			}
			return nil
		})
	if m.editing {
		// The barcode is the product key; it cannot change on edit.
		barcode = huh.NewInput().Key("barcode").Title("Barcode").Value(&m.formBarcode)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			barcode,

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
				Key("price").
				Title("Price").
				Value(&m.formPrice).
				Validate(func(s string) error {
					_, err := ParseMoney(s)
					return err
				}),

			huh.NewInput().
				Key("stock").
				Title("Stock").
				Value(&m.formStock).
				Validate(func(s string) error {
					if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("stock must be a number")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = productsStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProductsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = productsStateBrowse
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

	if m.state == productsStateSearch {
		m.searchTerm = strings.TrimSpace(m.form.GetString("search"))
		m.page = 1
		m.state = productsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()
	}

	return m, m.saveCmd()
}

func (m ProductsModel) updateDeleteConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		p := m.selected()
		if p == nil {
			m.state = productsStateBrowse
			return m, nil
		}

		return m, m.deleteCmd(p.Barcode)
	case "n", "esc":
		m.state = productsStateBrowse
		return m, nil
	}

	return m, nil
}

func (m ProductsModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = productsStateBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = productsStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ProductsModel) View() string {
	switch m.state {
	case productsStateFilePick:
		return padStyle.Render("Select a price list file:\n\n" + m.filePicker.View())
	case productsStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case productsStateImportResult:
		if m.errText != "" {
			return lipgloss.NewStyle().Padding(2).Render(errStyle(m.errText) + "\n\n(Esc to go back)")
		}

		return lipgloss.NewStyle().Padding(2).Render(okStyle(m.status) + "\n\n(Esc to go back)")
	case productsStateDeleteConfirm:
		p := m.selected()
		name := ""
		if p != nil {
			name = p.Name
		}

		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("Delete %q? (y/n)", name),
		)
	}

	header := fmt.Sprintf("Page %d", m.page)
	if m.searchTerm != "" {
		header = fmt.Sprintf("Search: %q", m.searchTerm)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableBorderStyle.Render(m.table.View()),
	)

	if m.form != nil {
		title := "Search"
		if m.state == productsStateForm {
			title = "New Product"
			if m.editing {
				title = "Edit Product"
			}
		}

		panel := panelStyle.Width(54).Render(title + "\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.errText != "" {
		content = errStyle(m.errText) + "\n" + content
	} else if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return padStyle.Render(content)
}

func (m *ProductsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.products))
	for _, p := range m.products {
		rows = append(rows, table.Row{
			p.Barcode,
			p.Name,
			FormatMoney(p.PriceCents),
			strconv.Itoa(p.Stock),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type productsLoadedMsg struct {
	products []api.Product
	err      error
}

func (m ProductsModel) loadCmd() tea.Cmd {
	term := m.searchTerm
	page := m.page

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if term != "" {
			products, err := m.client.SearchProducts(ctx, api.ProductSearchParams{Name: term})
			return productsLoadedMsg{products: products, err: err}
		}

		products, err := m.client.ListProducts(ctx, page, productPageSize)

		return productsLoadedMsg{products: products, err: err}
	}
}

type productSavedMsg struct {
	name string
	err  error
}

func (m ProductsModel) saveCmd() tea.Cmd {
	editing := m.editing
	barcode := strings.TrimSpace(m.form.GetString("barcode"))
	name := strings.TrimSpace(m.form.GetString("name"))
	priceText := m.form.GetString("price")
	stockText := m.form.GetString("stock")
	desc := strings.TrimSpace(m.form.GetString("description"))

	return func() tea.Msg {
		price, err := ParseMoney(priceText)
		if err != nil {
			return productSavedMsg{name: name, err: err}
		}

		stock, err := strconv.Atoi(strings.TrimSpace(stockText))
		if err != nil {
			return productSavedMsg{name: name, err: err}
		}

		ctx, cancel := APICtx()
		defer cancel()

		if editing {
			_, err = m.client.UpdateProduct(ctx, barcode, api.ProductUpdateParams{
				Name:        &name,
				PriceCents:  &price,
				Stock:       &stock,
				Description: &desc,
			})
		} else {
			_, err = m.client.CreateProduct(ctx, api.ProductCreateParams{
				Barcode:     barcode,
				Name:        name,
				PriceCents:  price,
				Stock:       stock,
				Description: desc,
			})
		}

		return productSavedMsg{name: name, err: err}
	}
}

type productDeletedMsg struct {
	err error
}

func (m ProductsModel) deleteCmd(barcode string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return productDeletedMsg{err: m.client.DeleteProduct(ctx, barcode)}
	}
}

type importDoneMsg struct {
	created int
	skipped int
	err     error
}

func (m ProductsModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{err: err}
		}
		defer f.Close()

		params, err := m.importService.Import(importer.FormatPriceList, f)
		if err != nil {
			return importDoneMsg{err: err}
		}

		ctx, cancel := APICtx()
		defer cancel()

		var created, skipped int

		for _, p := range params {
			if _, err := m.client.CreateProduct(ctx, p); err != nil {
				// Duplicates and rejects are counted, not fatal.
				skipped++
				continue
			}

			created++
		}

		return importDoneMsg{created: created, skipped: skipped}
	}
}
