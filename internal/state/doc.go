// Package state holds the view state of a bookgrid mount.
//
// A ViewState has three fields (Loading, Err, Items) and resolves to one of
// three phases, checked in this order: loading, error, ready. A Store
// starts loading and is settled exactly once by the fetch outcome; later
// Settle calls are ignored, so there is no way back to loading and no
// refetch.
//
// Subscribers run synchronously inside Settle, after the new state is
// visible, so a view observing the store always recomputes before anything
// else can touch it. Snapshot returns deep-enough copies (items slice and
// error) for callers to use without locking.
package state
