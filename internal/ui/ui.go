package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/auth"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/catalogue"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/models"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/services"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/session"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	CatalogueView
	DetailView
	FormView
	DeleteConfirmView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	gateway *auth.Gateway
	catalog services.CatalogService
	width   int
	height  int
	help    help.Model
	keys    keyMap

	// login
	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    int
	loginStatus   string

	// catalogue
	user        session.User
	bookList    list.Model
	books       []models.Book
	filtered    []models.Book
	loading     bool
	statusText  string
	filterField catalogue.Field
	searchInput textinput.Model
	filtering   bool

	form     *FormModel
	selected *models.Book
	err      error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, gateway *auth.Gateway, catalog services.CatalogService) *Model {
	email := textinput.New()
	email.Placeholder = "Email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword

	search := textinput.New()
	search.Placeholder = "Search Text"

	bookList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	bookList.SetFilteringEnabled(false)

	return &Model{
		ctx:           ctx,
		view:          LoginView,
		gateway:       gateway,
		catalog:       catalog,
		help:          help.New(),
		keys:          newKeyMap(),
		emailInput:    email,
		passwordInput: password,
		searchInput:   search,
		bookList:      bookList,
		filterField:   catalogue.FieldTitle,
	}
}

// Init starts on the catalogue when a restored session is active, otherwise
// on the login view.
func (m *Model) Init() tea.Cmd {
	if user, err := m.gateway.CurrentUser(m.ctx); err == nil {
		m.user = user
		m.view = CatalogueView
		return m.refresh()
	}
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.bookList.Width() == 0 {
			m.bookList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoginView:
			return m.handleLoginKeys(msg)
		case CatalogueView:
			return m.handleCatalogueKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		case DeleteConfirmView:
			return m.handleDeleteConfirmKeys(msg)
		}

	case loginResultMsg:
		if msg.err != nil {
			m.loginStatus = fmt.Sprintf("Login failed: %v", msg.err)
			return m, nil
		}
		m.user = msg.user
		m.loginStatus = ""
		m.view = CatalogueView
		return m, m.refresh()

	case booksFetchedMsg:
		m.loading = false
		if msg.err != nil {
			m.books = nil
			m.filtered = nil
			m.statusText = fmt.Sprintf("%v", msg.err)
			m.rebuildList()
			return m, nil
		}
		m.books = msg.books
		m.filtered = msg.books
		m.statusText = ""
		if len(msg.books) == 0 {
			m.statusText = catalogue.EmptyCatalogueMessage
		}
		m.rebuildList()
		return m, nil

	case imageUploadedMsg:
		if m.form != nil {
			m.form.HandleUploadResult(msg)
		}
		return m, nil

	case bookSavedMsg:
		if m.form == nil {
			return m, nil
		}
		m.form.HandleSaveResult(msg)
		if m.form.State() == StateDone {
			m.statusText = m.form.Status()
			m.form = nil
			m.view = CatalogueView
			return m, m.refresh()
		}
		return m, nil

	case bookDeletedMsg:
		m.view = CatalogueView
		m.selected = nil
		if msg.err != nil {
			m.statusText = fmt.Sprintf("%v", msg.err)
			return m, nil
		}
		m.statusText = msg.message
		return m, m.refresh()

	case loggedOutMsg:
		m.view = LoginView
		m.user = session.User{}
		m.books = nil
		m.filtered = nil
		return m, textinput.Blink
	}

	return m.updateInputs(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case LoginView:
		return m.renderLogin()
	case CatalogueView:
		return m.renderCatalogue()
	case DetailView:
		return m.renderDetail()
	case FormView:
		return m.renderForm()
	case DeleteConfirmView:
		return m.renderDeleteConfirm()
	default:
		return ""
	}
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.passwordInput.Blur()
			m.emailInput.Focus()
		} else {
			m.emailInput.Blur()
			m.passwordInput.Focus()
		}
		return m, nil
	case "enter":
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		m.loginStatus = "Signing in..."
		return m, m.attemptLogin(email, password)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleCatalogueKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.searchInput.Blur()
			return m, nil
		case "ctrl+f":
			m.cycleFilterField()
			return m, nil
		case "enter":
			m.filtering = false
			m.searchInput.Blur()
			m.applyFilter()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.filtering = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case "r":
		m.searchInput.SetValue("")
		m.filtered = m.books
		m.statusText = ""
		if len(m.books) == 0 {
			m.statusText = catalogue.EmptyCatalogueMessage
		}
		m.rebuildList()
		return m, nil
	case "a":
		m.form = NewAddForm(m.ctx, m.catalog, m.user.ID)
		m.view = FormView
		return m, textinput.Blink
	case "e":
		if book, ok := m.selectedBook(); ok {
			m.form = NewUpdateForm(m.ctx, m.catalog, book)
			m.view = FormView
			return m, textinput.Blink
		}
	case "d":
		if book, ok := m.selectedBook(); ok {
			m.selected = &book
			m.view = DeleteConfirmView
		}
		return m, nil
	case "enter":
		if book, ok := m.selectedBook(); ok {
			m.selected = &book
			m.view = DetailView
		}
		return m, nil
	case "ctrl+l":
		return m, m.logout()
	}

	var cmd tea.Cmd
	m.bookList, cmd = m.bookList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = CatalogueView
		m.selected = nil
		return m, nil
	case "e":
		if m.selected != nil {
			m.form = NewUpdateForm(m.ctx, m.catalog, *m.selected)
			m.view = FormView
			return m, textinput.Blink
		}
	case "d":
		m.view = DeleteConfirmView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		// the form is fully locked while the record saves
		if m.form.State() == StateSubmitting {
			return m, nil
		}
		// discard the draft
		m.form = nil
		m.view = CatalogueView
		return m, nil
	case "ctrl+u":
		return m, m.form.StartUpload(m.form.ImagePath())
	case "ctrl+s":
		return m, m.form.Submit()
	}

	return m, m.form.Update(msg)
}

func (m *Model) handleDeleteConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		if m.selected == nil {
			m.view = CatalogueView
			return m, nil
		}
		book := *m.selected
		return m, m.deleteBook(book)
	case "n", "esc", "q":
		m.view = CatalogueView
		m.selected = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == CatalogueView && !m.filtering {
		m.bookList, cmd = m.bookList.Update(msg)
	}
	return m, cmd
}

// selectedBook returns the book under the list cursor.
func (m *Model) selectedBook() (models.Book, bool) {
	item := m.bookList.SelectedItem()
	if item == nil {
		return models.Book{}, false
	}
	bi, ok := item.(bookItem)
	return bi.book, ok
}

func (m *Model) cycleFilterField() {
	switch m.filterField {
	case catalogue.FieldTitle:
		m.filterField = catalogue.FieldAuthor
	case catalogue.FieldAuthor:
		m.filterField = catalogue.FieldISBN
	default:
		m.filterField = catalogue.FieldTitle
	}
}

// applyFilter recomputes the filtered slice from the full set. The full set
// itself is never touched so a reset is always possible.
func (m *Model) applyFilter() {
	criteria := catalogue.Criteria{Field: m.filterField, Text: strings.TrimSpace(m.searchInput.Value())}
	m.filtered = catalogue.Apply(m.books, criteria)
	m.statusText = ""
	if len(m.filtered) == 0 && criteria.Text != "" {
		m.statusText = catalogue.NoResultsMessage(criteria)
	}
	m.rebuildList()
}

func (m *Model) rebuildList() {
	items := make([]list.Item, len(m.filtered))
	for i, book := range m.filtered {
		items[i] = bookItem{book: book}
	}
	m.bookList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.bookList.Title = fmt.Sprintf("%s's Books", m.user.Name)
	m.bookList.SetFilteringEnabled(false)
	m.bookList.SetSize(m.width-4, m.height-8)
}

func (m *Model) attemptLogin(email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.gateway.Login(m.ctx, email, password)
		return loginResultMsg{user: user, err: err}
	}
}

// refresh reloads the catalogue from the book service. The loading flag is
// cleared when booksFetchedMsg arrives, on success and failure alike.
func (m *Model) refresh() tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		books, err := m.catalog.ListForUser(m.ctx, m.user.ID)
		return booksFetchedMsg{books: books, err: err}
	}
}

func (m *Model) deleteBook(book models.Book) tea.Cmd {
	return func() tea.Msg {
		message, err := m.catalog.Delete(m.ctx, services.DeleteRequest{
			BookID:     book.BookID,
			CoverImage: book.CoverImage,
		})
		return bookDeletedMsg{message: message, err: err}
	}
}

func (m *Model) logout() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: m.gateway.Logout(m.ctx)}
	}
}

func (m *Model) renderLogin() string {
	title := styles.title.Render("Book Catalogue")
	fields := fmt.Sprintf("Email:    %s\nPassword: %s", m.emailInput.View(), m.passwordInput.View())

	status := ""
	if m.loginStatus != "" {
		status = "\n" + styles.warn.Render(m.loginStatus)
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, fields, status, helpView)
}

func (m *Model) renderCatalogue() string {
	if m.loading {
		return styles.help.Render("Loading books...")
	}

	var b strings.Builder
	if m.filtering {
		fmt.Fprintf(&b, "Filter by %s: %s\n\n", m.filterField, m.searchInput.View())
	}
	b.WriteString(m.bookList.View())

	if m.statusText != "" {
		b.WriteString("\n")
		b.WriteString(styles.warn.Render(m.statusText))
	}

	helpKeys := []key.Binding{m.keys.add, m.keys.edit, m.keys.del, m.keys.filter, m.keys.reset, m.keys.quit}
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return ""
	}
	book := m.selected

	title := styles.title.Render(book.Title)
	info := fmt.Sprintf(
		"Author: %s\nISBN: %s\nPublisher: %s\nYear: %s\nGenres: %s\nLanguage: %s\nPages: %s\n\n%s",
		book.Author, book.ISBN, book.Publisher, book.PublicationYear,
		strings.Join(book.Genres, ", "), book.Language, book.NumberOfPages, book.Summary,
	)

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.edit, m.keys.del, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}

func (m *Model) renderForm() string {
	if m.form == nil {
		return ""
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.upload, m.keys.save, m.keys.back})
	return fmt.Sprintf("%s\n%s", m.form.View(), helpView)
}

func (m *Model) renderDeleteConfirm() string {
	title := styles.title.Render(catalogue.DeleteConfirmation)
	var name string
	if m.selected != nil {
		name = fmt.Sprintf("\n%s by %s\n", m.selected.Title, m.selected.Author)
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s%s\n%s", title, name, helpView)
}
