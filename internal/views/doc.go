// Package views implements the issued-book lifecycle view-model.
//
// Two read views and a mutation coordinator keep the rendered tables consistent
// with backend state:
//
//   - [IssuedView] : the set of currently issued records, one "return" affordance per row
//   - [HistoryView] : previously returned records, filtered client-side from the full record set
//   - [Coordinator] : add/issue/return mutations plus the view refreshes they imply
//
// There is no shared mutable cache. Refresh() rebuilds a view from a full re-fetch
// (full replacement, idempotent); the server is the sole source of truth. A failed
// refresh leaves the previously rendered rows intact and surfaces a visible error
// state instead. The issued set and the history set are always disjoint: their
// union is the full record set.
//
// Rendering is injected: views hold display-ready row structs produced by the pure
// mappers [NewIssuedRow] and [NewHistoryRow], and the CLI/TUI layers decide how to
// paint them. Command handlers return result/error values so the whole lifecycle
// is unit-testable without a terminal.
package views
