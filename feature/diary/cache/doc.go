// Package cache implements the parsed-entry cache that fronts the diary
// store, memoizing the expensive query-and-decode step per date key with
// stampede protection for concurrent loads of the same key.
package cache
