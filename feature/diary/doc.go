// Package diary implements the reconciliation and caching engine of the
// diary persistence layer.
//
// # Transactions
//
// Engine.Transaction is the single write boundary: it loads the decoded
// entry mapping for a date (cache-first, querying the store at month
// granularity on a miss), hands the mapping to a caller-supplied mutation,
// persists exactly the sub-trees the mutation reports dirty, and refreshes
// the parsed-entry cache. Store and codec failures abort the transaction
// and propagate to the caller; there is no retry logic at this layer.
//
// # Dirty tracking
//
// The mutation returns a Dirty bitmask with independent bits for entry
// metadata and for the comment sequence. The store step upserts entry rows
// keyed by diary_id and reconciles comments positionally against the stored
// rows: overwrite the first N in place, append the rest. Position is
// identity, which rests on the documented precondition that comments are
// only ever appended or edited, never reordered or deleted.
//
// # Concurrency
//
// Transactions for the same month key are serialized inside one process.
// Across processes the store step is a plain read-then-write sequence with
// no version check, so the application must ensure at most one writer per
// date context; the later of two racing writers wins wholesale.
//
// # Queries
//
// Engine.Calendar aggregates the distinct (year, month) pairs of all
// stored entries. Engine.LoadConf and Engine.SaveConf give access to the
// application's singleton configuration blob.
package diary
