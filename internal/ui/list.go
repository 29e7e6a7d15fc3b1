package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/Prabhat9801/libman/internal/models"
	"github.com/Prabhat9801/libman/internal/views"
)

var (
	_ list.Item = issuedItem{}
	_ list.Item = historyItem{}
	_ list.Item = bookItem{}
)

// issuedItem wraps [views.IssuedRow] to implement [list.Item].
type issuedItem struct {
	row views.IssuedRow
}

func (i issuedItem) FilterValue() string { return i.row.Title }
func (i issuedItem) Title() string       { return fmt.Sprintf("%s - %s", i.row.Title, i.row.Student) }
func (i issuedItem) Description() string {
	return fmt.Sprintf("%s • %s • issued %s", i.row.BookID, i.row.Author, i.row.IssuedOn)
}

// historyItem wraps [views.HistoryRow] to implement [list.Item].
type historyItem struct {
	row views.HistoryRow
}

func (i historyItem) FilterValue() string { return i.row.Title }
func (i historyItem) Title() string       { return fmt.Sprintf("%s - %s", i.row.Title, i.row.Student) }
func (i historyItem) Description() string {
	return fmt.Sprintf("issued %s • returned %s", i.row.IssuedOn, i.row.ReturnedOn)
}

// bookItem wraps [models.Book] to implement [list.Item].
type bookItem struct {
	book models.Book
}

func (i bookItem) FilterValue() string { return i.book.Title }
func (i bookItem) Title() string       { return i.book.Title }
func (i bookItem) Description() string {
	stock := fmt.Sprintf("%d copies", i.book.Quantity)
	if !i.book.Available() {
		stock = "out of stock"
	}
	return fmt.Sprintf("%s • %s • %s • %s", i.book.BookID, i.book.Author, i.book.Category, stock)
}
