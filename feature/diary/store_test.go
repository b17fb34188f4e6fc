package diary

import (
	"context"
	"testing"
	"time"

	"diary-store/feature/diary/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedDiaryWithComments(t *testing.T, db *gorm.DB, diaryID string, commentBodies ...string) *models.DiaryRecord {
	t.Helper()

	rec := seedDiary(t, db, diaryID, "seeded")
	for i, body := range commentBodies {
		row := models.CommentRecord{
			DiaryRef: rec.ID,
			No:       i + 1,
			Name:     "seed",
			Mail:     "seed@example.com",
			Body:     body,
			Visible:  true,
		}
		row.SetDate(time.Now())
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("failed to seed comment %d: %v", i+1, err)
		}
	}
	return rec
}

func loadComments(t *testing.T, db *gorm.DB, diaryRef uint) []models.CommentRecord {
	t.Helper()

	var comments []models.CommentRecord
	if err := db.Where("diary_ref = ?", diaryRef).Order("no ASC").Find(&comments).Error; err != nil {
		t.Fatalf("failed to load comments: %v", err)
	}
	return comments
}

func TestPersistCommentBitLeavesMetadataAlone(t *testing.T) {
	db := setupTestDB(t, "persist_comment_bit")
	engine := newTestEngine(db)
	ctx := context.Background()

	rec := seedDiaryWithComments(t, db, "20230601", "original comment")

	err := engine.Transaction(ctx, "20230601", func(entries map[string]*models.Entry) Dirty {
		entry := entries["20230601"]
		// Change both sub-trees in memory, declare only the comments.
		entry.Title = "should not be written"
		entry.Comments[0].Body = "edited comment"
		return DirtyComment
	})
	assert.NoError(t, err)

	var stored models.DiaryRecord
	assert.NoError(t, db.First(&stored, rec.ID).Error)
	assert.Equal(t, "seeded", stored.Title)

	comments := loadComments(t, db, rec.ID)
	assert.Len(t, comments, 1)
	assert.Equal(t, "edited comment", comments[0].Body)
}

func TestPersistEntryBitLeavesCommentsAlone(t *testing.T) {
	db := setupTestDB(t, "persist_entry_bit")
	engine := newTestEngine(db)
	ctx := context.Background()

	rec := seedDiaryWithComments(t, db, "20230602", "original comment")

	err := engine.Transaction(ctx, "20230602", func(entries map[string]*models.Entry) Dirty {
		entry := entries["20230602"]
		entry.Title = "renamed"
		entry.Comments[0].Body = "should not be written"
		return DirtyEntry
	})
	assert.NoError(t, err)

	var stored models.DiaryRecord
	assert.NoError(t, db.First(&stored, rec.ID).Error)
	assert.Equal(t, "renamed", stored.Title)

	comments := loadComments(t, db, rec.ID)
	assert.Len(t, comments, 1)
	assert.Equal(t, "original comment", comments[0].Body)
}

func TestPersistPositionalReconciliation(t *testing.T) {
	db := setupTestDB(t, "persist_positional")
	engine := newTestEngine(db)
	ctx := context.Background()

	rec := seedDiaryWithComments(t, db, "20230603", "first", "second")
	before := loadComments(t, db, rec.ID)

	err := engine.Transaction(ctx, "20230603", func(entries map[string]*models.Entry) Dirty {
		entry := entries["20230603"]
		entry.Comments[0].Body = "first (edited)"
		entry.AddComment(&models.Comment{Name: "carol", Body: "third", Date: time.Now(), Visible: true})
		entry.AddComment(&models.Comment{Name: "dave", Body: "fourth", Date: time.Now(), Visible: false})
		return DirtyComment
	})
	assert.NoError(t, err)

	after := loadComments(t, db, rec.ID)
	assert.Len(t, after, 4)

	// The first two rows were overwritten in place, keeping their ids.
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, before[1].ID, after[1].ID)
	assert.Equal(t, "first (edited)", after[0].Body)
	assert.Equal(t, "second", after[1].Body)

	// The remainder were appended in order.
	assert.Equal(t, 3, after[2].No)
	assert.Equal(t, "third", after[2].Body)
	assert.Equal(t, 4, after[3].No)
	assert.Equal(t, "fourth", after[3].Body)
	assert.False(t, after[3].Visible)
}

func TestPersistIdempotent(t *testing.T) {
	db := setupTestDB(t, "persist_idempotent")
	engine := newTestEngine(db)
	ctx := context.Background()

	mutate := func(entries map[string]*models.Entry) Dirty {
		entry, ok := entries["20230604"]
		if !ok {
			entry = &models.Entry{
				ID:           "20230604",
				Title:        "stable",
				Body:         "same body\n",
				Style:        "wiki",
				LastModified: time.Unix(1685836800, 0),
				Visible:      true,
			}
			entry.AddComment(&models.Comment{Name: "alice", Body: "hello", Date: time.Unix(1685836800, 0), Visible: true})
			entries["20230604"] = entry
		}
		return DirtyEntry | DirtyComment
	}

	assert.NoError(t, engine.Transaction(ctx, "20230604", mutate))
	assert.NoError(t, engine.Transaction(ctx, "20230604", mutate))

	var diaryCount, commentCount int64
	assert.NoError(t, db.Model(&models.DiaryRecord{}).Where("diary_id = ?", "20230604").Count(&diaryCount).Error)
	assert.NoError(t, db.Model(&models.CommentRecord{}).Count(&commentCount).Error)
	assert.EqualValues(t, 1, diaryCount)
	assert.EqualValues(t, 1, commentCount)
}

func TestPersistCommentsRequireStoredEntry(t *testing.T) {
	db := setupTestDB(t, "persist_orphan_comments")
	engine := newTestEngine(db)
	ctx := context.Background()

	// Only the comment bit is set for a brand-new entry: nothing may be
	// written, since comments attach to an existing record.
	err := engine.Transaction(ctx, "20230605", func(entries map[string]*models.Entry) Dirty {
		entry := &models.Entry{ID: "20230605", Style: "wiki", LastModified: time.Now()}
		entry.AddComment(&models.Comment{Name: "eve", Body: "floating", Date: time.Now(), Visible: true})
		entries["20230605"] = entry
		return DirtyComment
	})
	assert.NoError(t, err)

	var diaryCount, commentCount int64
	assert.NoError(t, db.Model(&models.DiaryRecord{}).Count(&diaryCount).Error)
	assert.NoError(t, db.Model(&models.CommentRecord{}).Count(&commentCount).Error)
	assert.Zero(t, diaryCount)
	assert.Zero(t, commentCount)
}

func TestPersistNoOpWithoutDirtyBits(t *testing.T) {
	db := setupTestDB(t, "persist_noop")
	engine := newTestEngine(db)
	ctx := context.Background()

	seedDiary(t, db, "20230606", "untouched")

	err := engine.Transaction(ctx, "20230606", func(entries map[string]*models.Entry) Dirty {
		entries["20230606"].Title = "changed in memory only"
		return DirtyNone
	})
	assert.NoError(t, err)

	var stored models.DiaryRecord
	assert.NoError(t, db.Where("diary_id = ?", "20230606").First(&stored).Error)
	assert.Equal(t, "untouched", stored.Title)
}
