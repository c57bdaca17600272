/*
Package aswap implements the persistent state of atomic swaps.

An atomic swap escrows funds locked by a preimage hash. The funds can be
released to the recipient by supplying a valid preimage before the swap
expires, or returned to the source afterwards.

The hard part of this package is not the swap logic but keeping two tables
consistent on every write: the primary table maps a swap id to the record,
and a secondary index maps (recipient, id) to a constant marker so swaps
can be listed per recipient without scanning the primary table. Every entry
of the primary table has exactly one matching index entry and index entries
are never created on their own. To uphold that, SwapBucket is the only
sanctioned way to touch swap state; callers must never write the raw store
directly.

All listings are ordered by the raw id bytes and resumable: passing the
last seen id of one page as the start of the next pages through the whole
set with no gaps and no duplicates.
*/
package aswap
