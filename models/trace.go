package models

import (
	"gorm.io/gorm"
	"time"
	"virustrace/graph"
)

// TraceRecord keeps the history of answered queries.
type TraceRecord struct {
	ID        int       `gorm:"primaryKey;column:id"`
	RequestID string    `gorm:"column:request_id;size:36"`
	Batch     string    `gorm:"column:batch;index;size:64"`
	Source    int64     `gorm:"column:source"`
	MinTime   int64     `gorm:"column:min_time"`
	Target    int64     `gorm:"column:target"`
	MaxTime   int64     `gorm:"column:max_time"`
	Found     bool      `gorm:"column:found"`
	HopTime   int64     `gorm:"column:hop_time"`
	Via       int64     `gorm:"column:via"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (TraceRecord) TableName() string {
	return "trace_query"
}

func NewTraceRecord(requestID, batch string, q graph.Query, res graph.Result) TraceRecord {
	r := TraceRecord{
		RequestID: requestID,
		Batch:     batch,
		Source:    q.Source,
		MinTime:   q.MinTime,
		Target:    q.Target,
		MaxTime:   q.MaxTime,
		Found:     res.Found,
	}
	if res.Found {
		r.HopTime = res.Hop.Time
		r.Via = res.Hop.Via
	}
	return r
}

func SaveTrace(db *gorm.DB, r *TraceRecord) error {
	return db.Create(r).Error
}
