// Package rewind wraps a single-pass item producer with a replayable,
// in-memory history so callers can rewind to any previously observed
// position and re-emit items without re-consuming the producer.
//
// # Overview
//
// A Recorder owns a Source and an append-only history of every item the
// source has produced. Positions in the history are Points: globally
// monotonic sequence numbers that stay stable across prefix eviction, so a
// Point recorded before a Forget still names the same logical slot after it.
//
// Cursors traverse a Recorder. A cursor is either progressing (pulling fresh
// items from the source, recording each one) or replaying (re-emitting
// recorded items from a history position). Two cursor flavors exist:
//
//   - the copying cursor yields copies of recorded items
//   - the referencing cursor yields pointers into history slots; history
//     storage is chunked so slot addresses never move as the history grows
//
// API surface
//
//	rec := rewind.NewRecorder(source.FromSlice([]int{1, 2, 3, 4, 5, 6}))
//	cur := rec.Copying()
//	cur.Next() // 1
//	cur.Next() // 2
//	cur.Backtrack(0)
//	cur.Next() // 1 again, replayed from history
//
//	// Reverse traversal over the recorded prefix.
//	wb := cur.WalkBack()
//	v, _ := wb.Next()      // most recent item
//	cur.Backtrack(wb.RefPoint()) // resume forward replay at that slot
//
//	// Bound memory by discarding everything already consumed.
//	rec.Forget()
//
// # Shared recorders
//
// NewShared builds a recorder that many goroutines may drive at once. Source
// pulls are serialized under a mutex, history access goes through a
// read/write lock, and cursors are cheap to Clone: every clone shares the
// source and history but owns its position, so K clones together pull each
// source item exactly once and all observe the same item at the same Point.
// A panic during a source pull poisons the shared recorder; all later
// operations on it fail loudly rather than run on suspect state.
//
// Eviction is available on shared recorders too. Because Points are
// eviction-stable and references pin their chunk for the garbage collector,
// an outstanding reference stays valid even if its slot is later forgotten.
package rewind
