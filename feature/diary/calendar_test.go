package diary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalendarAggregatesDistinctMonths(t *testing.T) {
	db := setupTestDB(t, "calendar")
	engine := newTestEngine(db)
	ctx := context.Background()

	seedDiary(t, db, "20230101", "a")
	seedDiary(t, db, "20230115", "b")
	seedDiary(t, db, "20230201", "c")
	seedDiary(t, db, "20221231", "d")

	calendar, err := engine.Calendar(ctx)
	assert.NoError(t, err)

	// January appears once despite two entries; years group separately.
	assert.Equal(t, map[string][]string{
		"2022": {"12"},
		"2023": {"01", "02"},
	}, calendar)
}

func TestCalendarEmptyStore(t *testing.T) {
	db := setupTestDB(t, "calendar_empty")
	engine := newTestEngine(db)

	calendar, err := engine.Calendar(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, calendar)
}
