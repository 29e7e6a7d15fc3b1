// Package models defines the domain entities exchanged with the Remote Library Service.
//
// Two entity kinds exist:
//   - [Book] : an inventory item identified by its externally assigned BookID, with a remaining quantity
//   - [IssueRecord] : a loan transaction linking a student to a book
//
// An IssueRecord moves through a two-state lifecycle, [StatusIssued] → [StatusReturned],
// exactly once and never in reverse. The transition is performed by the service; clients
// only render consistently with it. ReturnDate is unset while issued and set by the
// service at the moment of return.
//
// Calendar dates cross the wire as ISO dates (YYYY-MM-DD) via the [Date] type.
package models
