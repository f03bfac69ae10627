// Package source provides single-pass producers for feeding a rewind
// recorder: in-memory adapters (slices, channels, funcs, iter.Seq), line
// readers, Pebble range scans, and a follow-a-file tail source. All of them
// implement rewind.Source and report exhaustion as ok=false from Next.
package source
