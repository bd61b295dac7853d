// Package record defines the row record edited by the grid: a nested mapping of
// scalar leaves identified by a unique id stored under IDKey.
//
// Values are addressed by property paths, an ordered list of keys. Reads never
// create structure. Writes create missing intermediate mappings and replace any
// intermediate value that is not a mapping (a scalar or a sequence) with a
// fresh mapping, discarding the old value.
package record
