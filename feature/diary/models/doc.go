// Package models defines the diary data model in both of its forms.
//
// # Stored form
//
// DiaryRecord, CommentRecord, RefererRecord and ConfRecord are GORM models
// mirroring the persisted layout: 'diaries' carries a unique index on
// diary_id plus redundant year/month/day columns so month-range queries
// never parse identifiers, 'comments' is owned 1:N by 'diaries' with an
// indexed sequence number, 'conf' holds the singleton configuration blob,
// and 'referers' exists as a schema placeholder only.
//
// # In-memory form
//
// Entry and Comment are the decoded representations produced by a style
// codec. An Entry owns its comments; their order is insertion order and is
// load-bearing: the store step reconciles comments positionally, assuming
// the application only appends or edits in place, never reorders or
// deletes.
//
// The comment timestamp is a deliberate representational seam: a string
// column in storage, a time.Time in memory. SetDate and DateValue are the
// only conversion points.
package models
