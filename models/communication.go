package models

import (
	"fmt"
	"gorm.io/gorm"
	"virustrace/graph"
	"virustrace/logs"
)

const pageSize = 100

// Communication is one stored triple. Batch groups the triples that make up
// one contact graph.
type Communication struct {
	ID    int    `gorm:"primaryKey;column:id"`
	Batch string `gorm:"column:batch;index;size:64"`
	SrcID int64  `gorm:"column:src_id"`
	DstID int64  `gorm:"column:dst_id"`
	Time  int64  `gorm:"column:time"`
}

func (Communication) TableName() string {
	return "communication"
}

func (c Communication) Triple() graph.Triple {
	return graph.Triple{C1: c.SrcID, C2: c.DstID, Time: c.Time}
}

// SaveBatch stores triples under batch, keeping their order in the id column.
func SaveBatch(db *gorm.DB, batch string, triples []graph.Triple) (int, error) {
	if len(triples) == 0 {
		return 0, nil
	}
	rows := make([]Communication, 0, len(triples))
	for _, t := range triples {
		rows = append(rows, Communication{Batch: batch, SrcID: t.C1, DstID: t.C2, Time: t.Time})
	}
	if err := db.CreateInBatches(rows, pageSize).Error; err != nil {
		return 0, fmt.Errorf("insert batch %s: %w", batch, err)
	}
	logs.Logger.Infof("stored %d communications in batch %s", len(rows), batch)
	return len(rows), nil
}

// batchPage selects one page of a batch in insertion order.
func batchPage(db *gorm.DB, batch string, pageNumber int) *gorm.DB {
	return db.Where("batch = ?", batch).Order("id").Limit(pageSize).Offset((pageNumber - 1) * pageSize)
}

// LoadBatch reads every triple of batch in the order it was stored.
func LoadBatch(db *gorm.DB, batch string) ([]graph.Triple, error) {
	var triples []graph.Triple
	for pageNumber := 1; ; pageNumber++ {
		var rows []Communication
		if err := batchPage(db, batch, pageNumber).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("load batch %s: %w", batch, err)
		}
		if len(rows) == 0 {
			break
		}
		for _, row := range rows {
			triples = append(triples, row.Triple())
		}
	}
	return triples, nil
}
