// Package state provides the thread-safe library store with optimistic
// mutation semantics.
//
// # Overview
//
// This package implements the application's single source of truth for
// generation records: the user's own library, the public explore feed,
// loading and generating flags, playback position, and the current error
// banner. It sits between the API gateway and the UI and is the only place
// record lists are mutated.
//
// # Architecture
//
// The store follows an optimistic mutate-then-reconcile pattern:
//
//	UI event                         Store                        Gateway
//	────────                         ─────                        ───────
//	toggle favorite ───────────────> flip record locally
//	                                 notify (UI repaints now)
//	                                 call gateway ──────────────> POST .../favorite
//	                                 on failure: flip back <───── error
//	                                 notify again
//
// The user sees the effect immediately; the server round-trip only ever
// produces a correction, never the first paint.
//
// # Mutation Semantics
//
// Each mutation has a precise reconciliation rule:
//
//   - ToggleFavorite / TogglePublic: The flip is its own inverse. On
//     gateway failure the record is flipped back, so the value after
//     reconciliation equals the value before the call.
//   - Delete: The record is removed up front and a backup retained. On
//     failure the backup is re-appended; the set of record IDs is restored
//     though the position may differ.
//   - Generate: No optimistic record is inserted because the server assigns
//     the ID. IsGenerating is true strictly between invocation and
//     resolution. On success the confirmed record is prepended; on failure
//     the list is untouched and Err is set.
//   - Mutations against an ID not present in the library are no-ops and
//     never reach the gateway.
//
// # List Fetches
//
// LoadGenerations consumes a Watch stream from the gateway: the Loading
// result raises IsLoading and clears Err, a success replaces the whole
// list, a failure sets Err. LoadExplore follows the same shape except that
// failures are only logged, because a broken public feed should not block
// the user's own library. Refresh replaces the library silently with no
// flag changes, which is what the background poller needs.
//
// # Concurrency Model
//
// All state lives behind a single sync.Mutex. Mutations run synchronously
// on the caller's goroutine (Bubble Tea command goroutines in practice)
// and hold the lock only around in-memory updates, never across network
// calls. Concurrent mutations serialize at the lock; last write wins.
//
// View() returns a deep copy, so a caller can never mutate stored records
// through a snapshot, and the UI can render without holding any lock.
//
// # Change Notification
//
// Changes() exposes a buffered channel with capacity one. Every state
// change performs a non-blocking send, so an arbitrary burst of mutations
// coalesces into a single pending notification. The UI drains the channel
// and re-snapshots; it never misses the latest state and never queues
// stale repaints.
//
// # Testing Considerations
//
// The store is constructed against a small Gateway interface, so tests
// supply a fake with canned Results and gates that block calls mid-flight
// to observe the optimistic window. No HTTP server is needed.
package state
