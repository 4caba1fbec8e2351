package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/bakdaulet/kassa/cmd/kassa/internal/view"
	"github.com/bakdaulet/kassa/internal/api"
	"github.com/bakdaulet/kassa/internal/config"
	"github.com/bakdaulet/kassa/internal/importer"
	"github.com/bakdaulet/kassa/internal/sale"
	"github.com/bakdaulet/kassa/internal/session"
)

type model struct {
	client         *api.Client
	sessionService *session.Service
	saleService    *sale.Service
	importService  *importer.Service

	currentView View

	loginView    view.LoginModel
	salesView    view.SalesModel
	productsView view.ProductsModel
	branchesView view.BranchesModel
	cashiersView view.CashiersModel
	debtsView    view.DebtsModel
	returnsView  view.ReturnsModel
}

type View int

const (
	ViewLogin    View = 0
	ViewMenu     View = 1
	ViewSales    View = 2
	ViewProducts View = 3
	ViewBranches View = 4
	ViewCashiers View = 5
	ViewDebts    View = 6
	ViewReturns  View = 7
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sessionPath := cfg.Session.Path
	if sessionPath == "" {
		sessionPath, err = session.DefaultSessionPath()
		if err != nil {
			slog.Error("failed to resolve session path", "error", err)
			os.Exit(1)
		}
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	sessionSvc := session.NewService(session.NewFileStore(sessionPath), client)
	saleSvc := sale.NewService(client)
	impSvc := importer.NewService()

	m := model{
		client:         client,
		sessionService: sessionSvc,
		saleService:    saleSvc,
		importService:  impSvc,
		currentView:    ViewLogin,
		loginView:      view.NewLoginModel(sessionSvc),
	}

	if sess, err := sessionSvc.Hydrate(); err == nil && sess != nil {
		client.SetToken(sess.Token)
		m.currentView = ViewMenu
	}

	return m
}

func (m model) Init() tea.Cmd {
	if m.currentView == ViewLogin {
		return m.loginView.Init()
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case view.LoggedInMsg:
		m.client.SetToken(msg.Session.Token)
		m.currentView = ViewMenu

		return m, nil

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil

	case view.LogoutMsg:
		if err := m.sessionService.Logout(); err != nil {
			slog.Error("failed to clear session", "error", err)
		}

		m.client.SetToken("")
		m.currentView = ViewLogin
		m.loginView = view.NewLoginModel(m.sessionService)

		return m, m.loginView.Init()

	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewSales:
		var newModel tea.Model
		newModel, cmd = m.salesView.Update(msg)
		m.salesView = newModel.(view.SalesModel)
	case ViewProducts:
		var newModel tea.Model
		newModel, cmd = m.productsView.Update(msg)
		m.productsView = newModel.(view.ProductsModel)
	case ViewBranches:
		var newModel tea.Model
		newModel, cmd = m.branchesView.Update(msg)
		m.branchesView = newModel.(view.BranchesModel)
	case ViewCashiers:
		var newModel tea.Model
		newModel, cmd = m.cashiersView.Update(msg)
		m.cashiersView = newModel.(view.CashiersModel)
	case ViewDebts:
		var newModel tea.Model
		newModel, cmd = m.debtsView.Update(msg)
		m.debtsView = newModel.(view.DebtsModel)
	case ViewReturns:
		var newModel tea.Model
		newModel, cmd = m.returnsView.Update(msg)
		m.returnsView = newModel.(view.ReturnsModel)
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	isAdmin := m.sessionService.IsAdmin()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "1":
		m.currentView = ViewSales
		m.salesView = view.NewSalesModel(m.saleService, m.client)

		return m, m.salesView.Init()
	case "2":
		m.currentView = ViewProducts
		m.productsView = view.NewProductsModel(m.client, m.importService, isAdmin)

		return m, m.productsView.Init()
	case "3":
		m.currentView = ViewDebts
		m.debtsView = view.NewDebtsModel(m.client)

		return m, m.debtsView.Init()
	case "4":
		m.currentView = ViewReturns
		m.returnsView = view.NewReturnsModel(m.client)

		return m, m.returnsView.Init()
	case "5":
		m.currentView = ViewBranches
		m.branchesView = view.NewBranchesModel(m.client, isAdmin)

		return m, m.branchesView.Init()
	case "6":
		if isAdmin {
			m.currentView = ViewCashiers
			m.cashiersView = view.NewCashiersModel(m.client)

			return m, m.cashiersView.Init()
		}
	case "l":
		return m, view.Logout
	}

	return m, nil
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		return m.viewMenu()
	case ViewSales:
		return m.salesView.View()
	case ViewProducts:
		return m.productsView.View()
	case ViewBranches:
		return m.branchesView.View()
	case ViewCashiers:
		return m.cashiersView.View()
	case ViewDebts:
		return m.debtsView.View()
	case ViewReturns:
		return m.returnsView.View()
	}

	return "Unknown View"
}

func (m model) viewMenu() string {
	name := ""
	if sess := m.sessionService.Current(); sess != nil {
		name = sess.User.Name
	}

	menu := fmt.Sprintf("Kassa — %s\n\n", name) +
		"1. New Sale\n" +
		"2. Products\n" +
		"3. Debts\n" +
		"4. Returns\n" +
		"5. Branches\n"

	if m.sessionService.IsAdmin() {
		menu += "6. Cashiers\n"
	}

	menu += "\nl. Logout\nq. Quit"

	return lipgloss.NewStyle().Padding(2).Render(menu)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run terminal", "error", err)
		os.Exit(1)
	}
}
