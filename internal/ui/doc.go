// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for circulation management:
//  1. [IssuedListView] : Browse currently issued books and pick one to return
//  2. [HistoryListView] : Browse completed returns
//  3. [CatalogView] : Browse the book inventory
//  4. [ConfirmReturnView] : Confirm a return before it is sent
//  5. [ResultView] : Display the outcome of a return
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Fetches and mutations run as tea.Cmd functions so the message loop stays responsive,
// and a failed fetch keeps the previously rendered rows on screen next to the error.
//
// Keyboard navigation uses vim-style bindings (j/k, tab, enter, esc, y/n, r, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
