package diary

import (
	"context"
	"fmt"

	"diary-store/feature/diary/models"
)

// Calendar returns the mapping from year to the distinct months that hold
// at least one entry, each month list in ascending order.
//
// This is always a full scan of the (year, month) pairs; the query is
// infrequent relative to single-date transactions, so no cache sits in
// front of it and results may lag concurrent writes by design.
func (e *Engine) Calendar(ctx context.Context) (map[string][]string, error) {
	var rows []struct {
		Year  string
		Month string
	}

	err := e.db.WithContext(ctx).
		Model(&models.DiaryRecord{}).
		Distinct("year", "month").
		Order("year ASC, month ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan calendar: %w", err)
	}

	calendar := make(map[string][]string)
	for _, row := range rows {
		calendar[row.Year] = append(calendar[row.Year], row.Month)
	}
	return calendar, nil
}
