package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/helixml/csvsplit/domain/split"
	"github.com/helixml/csvsplit/internal/database"
	"gorm.io/gorm"
)

// RunStore implements split.RunStore using GORM.
type RunStore struct {
	db     database.Database
	mapper RunMapper
}

// NewRunStore creates a new RunStore.
func NewRunStore(db database.Database) RunStore {
	return RunStore{
		db:     db,
		mapper: RunMapper{},
	}
}

// Save inserts a run, or updates it when it already has an ID.
func (s RunStore) Save(ctx context.Context, run split.Run) (split.Run, error) {
	model := s.mapper.ToModel(run)
	if err := s.db.Session(ctx).Save(&model).Error; err != nil {
		return split.Run{}, fmt.Errorf("save run: %w", err)
	}
	return s.mapper.ToDomain(model), nil
}

// Find returns up to limit runs, newest first. A limit < 1 returns all runs.
func (s RunStore) Find(ctx context.Context, limit int) ([]split.Run, error) {
	var models []RunModel
	db := s.db.Session(ctx).Order("finished_at DESC, id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find runs: %w", err)
	}

	runs := make([]split.Run, len(models))
	for i, model := range models {
		runs[i] = s.mapper.ToDomain(model)
	}
	return runs, nil
}

// LatestCompleted returns the most recent successful run.
func (s RunStore) LatestCompleted(ctx context.Context) (split.Run, bool, error) {
	var model RunModel
	result := s.db.Session(ctx).
		Where("state = ?", string(split.RunStateCompleted)).
		Order("finished_at DESC, id DESC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return split.Run{}, false, nil
		}
		return split.Run{}, false, fmt.Errorf("latest completed run: %w", result.Error)
	}
	return s.mapper.ToDomain(model), true, nil
}

var _ split.RunStore = RunStore{}
