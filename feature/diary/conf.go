package diary

import (
	"context"
	"errors"
	"fmt"

	"diary-store/feature/diary/models"

	"gorm.io/gorm"
)

// LoadConf returns the singleton configuration blob's text, or the empty
// string when none has been saved yet. A missing singleton is a normal
// case, not an error.
func (e *Engine) LoadConf(ctx context.Context) (string, error) {
	var rec models.ConfRecord
	err := e.db.WithContext(ctx).Order("id ASC").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	return rec.Body, nil
}

// SaveConf stores the configuration blob, updating the singleton when it
// exists and creating it otherwise. Exactly one row exists after a
// successful save.
func (e *Engine) SaveConf(ctx context.Context, body string) error {
	var rec models.ConfRecord
	err := e.db.WithContext(ctx).Order("id ASC").First(&rec).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec = models.ConfRecord{Body: body}
		if err := e.db.WithContext(ctx).Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to create configuration: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to load configuration: %w", err)
	default:
		if err := e.db.WithContext(ctx).Model(&rec).Update("body", body).Error; err != nil {
			return fmt.Errorf("failed to update configuration: %w", err)
		}
		return nil
	}
}
