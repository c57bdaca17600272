/*
Package swapstore defines the common interfaces tying together the storage
subpackages of the atomic swap state layer.

The root package holds only interfaces and a few primitive types (raw store
access, iteration, block context, seconds-precision time). Concrete pieces
live below:

  store    in-memory btree store and cache wraps
  store/iavl  durable, versioned commit store
  orm      length-prefixed namespaces, buckets and range queries
  coin     value type for escrowed funds
  x/aswap  the atomic swap state itself

Nothing in this module starts goroutines on behalf of the caller or guards
state with locks. A store handle is borrowed for the duration of one logical
operation and the host environment serializes those operations.
*/
package swapstore
