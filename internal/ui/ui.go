package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Prabhat9801/libman/internal/models"
	"github.com/Prabhat9801/libman/internal/views"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	IssuedListView ViewState = iota
	HistoryListView
	CatalogView
	ConfirmReturnView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	view        ViewState
	coordinator *views.Coordinator
	width       int
	height      int
	issuedList  list.Model
	historyList list.Model
	catalogList list.Model
	selected    *views.IssuedRow
	returned    *models.IssueRecord
	fetchErr    string
	err         error
	help        help.Model
	keys        keyMap
}

type issuedFetchedMsg struct {
	rows []views.IssuedRow
	err  error
}

type historyFetchedMsg struct {
	rows []views.HistoryRow
	err  error
}

type catalogFetchedMsg struct {
	books []models.Book
	err   error
}

type returnCompleteMsg struct {
	record *models.IssueRecord
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The coordinator must be built without a confirmation callback; the TUI's
// confirm view plays that role, and Return is only invoked after an explicit
// "y" keypress.
func NewModel(ctx context.Context, coordinator *views.Coordinator) *Model {
	m := &Model{
		ctx:         ctx,
		view:        IssuedListView,
		coordinator: coordinator,
		help:        help.New(),
		keys:        newKeyMap(),
	}

	m.issuedList = newList("Issued Books")
	m.historyList = newList("Return History")
	m.catalogList = newList("Book Inventory")

	return m
}

func newList(title string) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	return l
}

// Init initializes the TUI by fetching the issued books.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchIssued(), m.fetchHistory(), m.fetchCatalog())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.issuedList.SetSize(msg.Width-4, msg.Height-8)
		m.historyList.SetSize(msg.Width-4, msg.Height-8)
		m.catalogList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case IssuedListView:
			return m.handleIssuedListKeys(msg)
		case HistoryListView, CatalogView:
			return m.handleBrowseKeys(msg)
		case ConfirmReturnView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case issuedFetchedMsg:
		// A failed refresh keeps the stale rows on screen next to the error.
		if msg.err != nil {
			m.fetchErr = views.ErrorMessage(msg.err, "Failed to load issued books.")
			return m, nil
		}
		m.fetchErr = ""
		items := make([]list.Item, len(msg.rows))
		for i, row := range msg.rows {
			items[i] = issuedItem{row: row}
		}
		return m, m.issuedList.SetItems(items)

	case historyFetchedMsg:
		if msg.err != nil {
			m.fetchErr = views.ErrorMessage(msg.err, "Failed to load return history.")
			return m, nil
		}
		items := make([]list.Item, len(msg.rows))
		for i, row := range msg.rows {
			items[i] = historyItem{row: row}
		}
		return m, m.historyList.SetItems(items)

	case catalogFetchedMsg:
		if msg.err != nil {
			m.fetchErr = views.ErrorMessage(msg.err, "Failed to load books.")
			return m, nil
		}
		items := make([]list.Item, len(msg.books))
		for i, book := range msg.books {
			items[i] = bookItem{book: book}
		}
		return m, m.catalogList.SetItems(items)

	case returnCompleteMsg:
		m.returned = msg.record
		m.err = msg.err
		m.view = ResultView
		if msg.err == nil {
			return m, tea.Batch(m.fetchIssued(), m.fetchHistory())
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case IssuedListView:
		return m.renderBrowse(m.issuedList, []key.Binding{m.keys.enter, m.keys.cycle, m.keys.refresh, m.keys.quit})
	case HistoryListView:
		return m.renderBrowse(m.historyList, []key.Binding{m.keys.cycle, m.keys.refresh, m.keys.quit})
	case CatalogView:
		return m.renderBrowse(m.catalogList, []key.Binding{m.keys.cycle, m.keys.refresh, m.keys.quit})
	case ConfirmReturnView:
		return m.renderConfirm()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleIssuedListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.view = HistoryListView
		return m, nil
	case "r":
		return m, m.fetchIssued()
	case "enter":
		selected := m.issuedList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(issuedItem); ok {
				row := item.row
				m.selected = &row
				m.view = ConfirmReturnView
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.issuedList, cmd = m.issuedList.Update(msg)
	return m, cmd
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.view == HistoryListView {
			m.view = CatalogView
		} else {
			m.view = IssuedListView
		}
		return m, nil
	case "r":
		if m.view == HistoryListView {
			return m, m.fetchHistory()
		}
		return m, m.fetchCatalog()
	case "esc":
		m.view = IssuedListView
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		// declined: no request is sent and the issued list is untouched
		m.selected = nil
		m.view = IssuedListView
		return m, nil
	case "y":
		return m, m.startReturn()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.selected = nil
		m.returned = nil
		m.err = nil
		m.view = IssuedListView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case IssuedListView:
		m.issuedList, cmd = m.issuedList.Update(msg)
	case HistoryListView:
		m.historyList, cmd = m.historyList.Update(msg)
	case CatalogView:
		m.catalogList, cmd = m.catalogList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchIssued() tea.Cmd {
	return func() tea.Msg {
		err := m.coordinator.Issued().Refresh(m.ctx)
		return issuedFetchedMsg{rows: m.coordinator.Issued().Rows(), err: err}
	}
}

func (m *Model) fetchHistory() tea.Cmd {
	return func() tea.Msg {
		err := m.coordinator.History().Refresh(m.ctx)
		return historyFetchedMsg{rows: m.coordinator.History().Rows(), err: err}
	}
}

func (m *Model) fetchCatalog() tea.Cmd {
	return func() tea.Msg {
		books, err := m.coordinator.Books(m.ctx)
		return catalogFetchedMsg{books: books, err: err}
	}
}

func (m *Model) startReturn() tea.Cmd {
	row := *m.selected
	return func() tea.Msg {
		record, err := m.coordinator.Return(m.ctx, row.RecordID, row.Student, row.Title)
		return returnCompleteMsg{record: record, err: err}
	}
}

func (m *Model) renderBrowse(l list.Model, helpKeys []key.Binding) string {
	helpView := m.help.ShortHelpView(helpKeys)

	var banner string
	if m.fetchErr != "" {
		banner = styles.err.Render(m.fetchErr) + "\n\n"
	}

	return fmt.Sprintf("%s%s\n\n%s", banner, l.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render("Are you sure you want to return this book?")
	info := fmt.Sprintf("\nStudent: %s\nBook: %s\nIssued: %s\n", m.selected.Student, m.selected.Title, m.selected.IssuedOn)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		msg := views.ErrorMessage(m.err, "Failed to return book.")
		return styles.err.Render(msg) + "\n\n" + styles.help.Render("enter: back, q: quit")
	}

	title := styles.ok.Render("✓ Book returned")
	info := fmt.Sprintf("\nStudent: %s\nBook: %s\nReturned: %s\n",
		m.returned.StudentName, m.returned.BookTitle, m.returned.ReturnDate.Display())

	return fmt.Sprintf("%s\n%s\n%s", title, info, styles.help.Render("enter: back, q: quit"))
}
