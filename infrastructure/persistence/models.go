package persistence

import "time"

// RunModel represents a split run in the database.
type RunModel struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Source      string    `gorm:"column:source;type:text;not null"`
	NumLines    int       `gorm:"column:num_lines;not null"`
	HeaderLines int       `gorm:"column:header_lines;not null;default:0"`
	Files       int       `gorm:"column:files;not null;default:0"`
	DataLines   int       `gorm:"column:data_lines;not null;default:0"`
	State       string    `gorm:"column:state;type:varchar(32);index;not null"`
	Error       string    `gorm:"column:error;type:text;default:''"`
	StartedAt   time.Time `gorm:"column:started_at;not null"`
	FinishedAt  time.Time `gorm:"column:finished_at;index;not null"`
}

// TableName returns the table name.
func (RunModel) TableName() string {
	return "split_runs"
}
