package diary

import (
	"context"
	"errors"
	"fmt"

	"diary-store/feature/diary/models"

	"gorm.io/gorm"
)

// persist writes every entry in the mapping back to the store, touching
// only the sub-trees whose dirty bit is set. A zero bitmask is a no-op.
//
// There is no multi-record transaction or optimistic concurrency check
// around the read-then-write sequence; see Transaction for the writer
// contract.
func (e *Engine) persist(ctx context.Context, entries map[string]*models.Entry, dirty Dirty) error {
	if dirty == DirtyNone {
		return nil
	}

	for _, diaryID := range models.SortedIDs(entries) {
		entry := entries[diaryID]
		year, month, day, _ := models.SplitDiaryID(diaryID)

		var rec models.DiaryRecord
		err := e.db.WithContext(ctx).
			Preload("Comments", func(db *gorm.DB) *gorm.DB {
				return db.Order("no ASC")
			}).
			Where("diary_id = ?", diaryID).
			First(&rec).Error
		exists := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up diary %s: %w", diaryID, err)
		}

		if dirty&DirtyEntry != 0 {
			codec, err := e.styles.Resolve(entry.Style)
			if err != nil {
				return err
			}
			body, err := codec.Encode(entry)
			if err != nil {
				return fmt.Errorf("failed to encode entry %s: %w", diaryID, err)
			}

			if exists {
				updates := map[string]any{
					"title":         entry.Title,
					"last_modified": entry.LastModified.Unix(),
					"style":         entry.Style,
					"visible":       entry.Visible,
					"body":          body,
				}
				if err := e.db.WithContext(ctx).Model(&rec).Updates(updates).Error; err != nil {
					return fmt.Errorf("failed to update diary %s: %w", diaryID, err)
				}
			} else {
				rec = models.DiaryRecord{
					DiaryID:      diaryID,
					Year:         year,
					Month:        month,
					Day:          day,
					Title:        entry.Title,
					Body:         body,
					Style:        entry.Style,
					LastModified: entry.LastModified.Unix(),
					Visible:      entry.Visible,
				}
				if err := e.db.WithContext(ctx).Create(&rec).Error; err != nil {
					return fmt.Errorf("failed to create diary %s: %w", diaryID, err)
				}
				// The just-created record carries into comment
				// reconciliation so a brand-new entry's comments are
				// persisted within the same transaction.
				exists = true
			}
		}

		if exists && dirty&DirtyComment != 0 {
			if err := e.reconcileComments(ctx, &rec, entry); err != nil {
				return err
			}
		}
	}

	return nil
}

// reconcileComments aligns the stored comment rows of rec with entry's
// in-memory comment sequence using positional matching: the first
// len(stored) comments overwrite their row in place, the remainder are
// appended as new rows.
//
// Precondition: the surrounding application only appends comments or edits
// them in place. It never reorders or deletes, so position identifies a
// comment.
func (e *Engine) reconcileComments(ctx context.Context, rec *models.DiaryRecord, entry *models.Entry) error {
	existing := len(rec.Comments)

	for i, com := range entry.Comments {
		if i < existing {
			stored := &rec.Comments[i]
			stored.SetDate(com.Date)
			updates := map[string]any{
				"name":          com.Name,
				"mail":          com.Mail,
				"body":          com.Body,
				"last_modified": stored.LastModified,
				"visible":       com.Visible,
			}
			if err := e.db.WithContext(ctx).Model(stored).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update comment %d of diary %s: %w", i+1, entry.ID, err)
			}
		} else {
			row := models.CommentRecord{
				DiaryRef: rec.ID,
				No:       i + 1,
				Name:     com.Name,
				Mail:     com.Mail,
				Body:     com.Body,
				Visible:  com.Visible,
			}
			row.SetDate(com.Date)
			if err := e.db.WithContext(ctx).Create(&row).Error; err != nil {
				return fmt.Errorf("failed to append comment %d of diary %s: %w", i+1, entry.ID, err)
			}
		}
	}

	return nil
}
