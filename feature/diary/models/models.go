package models

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// DiaryIDPattern matches a canonical diary identifier (YYYYMMDD) and captures
// its year, month and day parts.
var DiaryIDPattern = regexp.MustCompile(`^(\d{4})(\d\d)(\d\d)$`)

// SplitDiaryID derives the denormalized year/month/day parts from a diary_id.
// ok is false when the id does not have the canonical YYYYMMDD shape.
func SplitDiaryID(diaryID string) (year, month, day string, ok bool) {
	m := DiaryIDPattern.FindStringSubmatch(diaryID)
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2], m[3], true
}

// Entry is the in-memory representation of a single day's diary, fully
// decoded by a style codec. It owns its comments; ordering is insertion
// order and is significant during reconciliation.
type Entry struct {
	ID           string // canonical YYYYMMDD
	Title        string
	Body         string // style-specific source text
	Style        string // lowercase style tag, e.g. "wiki"
	LastModified time.Time
	Visible      bool
	Comments     []*Comment
}

// AddComment appends a comment to the entry, preserving insertion order.
func (e *Entry) AddComment(c *Comment) {
	e.Comments = append(e.Comments, c)
}

// Comment is the in-memory representation of a single diary comment.
type Comment struct {
	Name    string
	Mail    string
	Body    string
	Date    time.Time
	Visible bool
}

// SortedIDs returns the keys of an entry mapping in ascending diary_id
// order, for deterministic iteration.
func SortedIDs(entries map[string]*Entry) []string {
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DiaryRecord represents a row of the 'diaries' table, the stored form of an
// Entry. The date parts are stored redundantly so month-range queries never
// need to parse diary_id.
type DiaryRecord struct {
	ID           uint   `gorm:"column:id;primaryKey;autoIncrement"`
	DiaryID      string `gorm:"column:diary_id;size:8;uniqueIndex"`
	Year         string `gorm:"column:year;size:4;index:idx_diaries_year_month"`
	Month        string `gorm:"column:month;size:2;index:idx_diaries_year_month"`
	Day          string `gorm:"column:day;size:2"`
	Title        string `gorm:"column:title"`
	Body         string `gorm:"column:body;type:text"`
	Style        string `gorm:"column:style;size:32"`
	LastModified int64  `gorm:"column:last_modified"`
	Visible      bool   `gorm:"column:visible"`

	Comments []CommentRecord `gorm:"foreignKey:DiaryRef"`
	Referers []RefererRecord `gorm:"foreignKey:DiaryRef"`
}

// TableName overrides the table name to match the original collection name.
func (DiaryRecord) TableName() string {
	return "diaries"
}

// CommentRecord represents a row of the 'comments' table. Comments belong to
// exactly one diary and have no independent lifecycle. No is the 1-based
// position within the entry; the secondary index on it supports ordered
// access.
type CommentRecord struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement"`
	DiaryRef uint   `gorm:"column:diary_ref;index"`
	No       int    `gorm:"column:no;index"`
	Name     string `gorm:"column:name"`
	Mail     string `gorm:"column:mail"`
	Body     string `gorm:"column:body;type:text"`
	// LastModified is stored as a string column, matching the original
	// schema; in memory it is a time.Time. The conversion lives in
	// SetDate/DateValue only.
	LastModified string `gorm:"column:last_modified;size:20"`
	Visible      bool   `gorm:"column:visible"`
}

// TableName overrides the table name for comments.
func (CommentRecord) TableName() string {
	return "comments"
}

// SetDate stores a timestamp into the string-typed last_modified column.
func (c *CommentRecord) SetDate(t time.Time) {
	c.LastModified = strconv.FormatInt(t.Unix(), 10)
}

// DateValue parses the string-typed last_modified column back into a
// time.Time. An unparseable value yields the zero epoch rather than an
// error, matching the original's to_i coercion.
func (c *CommentRecord) DateValue() time.Time {
	sec, err := strconv.ParseInt(c.LastModified, 10, 64)
	if err != nil {
		return time.Unix(0, 0)
	}
	return time.Unix(sec, 0)
}

// RefererRecord represents a row of the 'referers' table. Schema placeholder
// only; the core never reads or writes it.
type RefererRecord struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement"`
	DiaryRef uint   `gorm:"column:diary_ref;index"`
	URL      string `gorm:"column:url"`
	Count    int    `gorm:"column:count"`
}

// TableName overrides the table name for referers.
func (RefererRecord) TableName() string {
	return "referers"
}

// ConfRecord represents the singleton configuration blob. At most one row
// exists; the accessor enforces the upsert-the-singleton pattern.
type ConfRecord struct {
	ID   uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Body string `gorm:"column:body;type:text"`
}

// TableName overrides the table name for the configuration singleton.
func (ConfRecord) TableName() string {
	return "conf"
}

// Migrate creates or updates the schema for all diary tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&ConfRecord{}, &DiaryRecord{}, &CommentRecord{}, &RefererRecord{}); err != nil {
		return fmt.Errorf("failed to migrate diary schema: %w", err)
	}
	return nil
}
