// Package tasks orchestrates bulk catalog operations against the Remote Library Service with real-time progress reporting.
//
// # Core Operations
//
// The [CatalogSyncer] interface defines two operations:
//
//  1. [CatalogSyncer.ImportBooks] : Bulk book import from a CSV file
//     - Parses and validates rows client-side before any network call
//     - Posts valid rows concurrently through a rate-limited worker pool
//     - Returns per-row results including rejected and failed rows
//
//  2. [CatalogSyncer.Snapshot] : Export the full catalog to disk
//     - Fetches the inventory and every issue record
//     - Writes each dataset in the requested format plus a JSON manifest
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [CatalogEngine] implements [CatalogSyncer] with a single dependency on the
// [services.Library] client.
package tasks
