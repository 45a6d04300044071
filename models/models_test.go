package models

import (
	"errors"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"testing"
	"virustrace/graph"
)

// dryRunDB never touches a server; statements are only built.
func dryRunDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/virustrace",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

// mockDB backs gorm with sqlmock so statements run against scripted results.
func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db, mock
}

func communicationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "batch", "src_id", "dst_id", "time"})
}

func TestBatchPage_Offsets(t *testing.T) {
	db := dryRunDB(t)
	var rows []Communication
	first := batchPage(db, "outbreak", 1).Find(&rows).Statement.SQL.String()
	assert.Contains(t, first, "LIMIT")
	assert.NotContains(t, first, "OFFSET", "the first page starts at the beginning")

	var more []Communication
	second := batchPage(db, "outbreak", 2).Find(&more).Statement.SQL.String()
	assert.Contains(t, second, "OFFSET", "the second page skips one full page")
}

func TestLoadBatch_Pages(t *testing.T) {
	db, mock := mockDB(t)
	const selectPage = "SELECT \\* FROM `communication` WHERE batch = \\?"

	full := communicationRows()
	for i := 1; i <= pageSize; i++ {
		full.AddRow(i, "outbreak", int64(i), int64(i+1), int64(i))
	}
	mock.ExpectQuery(selectPage).WillReturnRows(full)
	mock.ExpectQuery(selectPage).WillReturnRows(communicationRows().AddRow(pageSize+1, "outbreak", 7, 8, 900))
	mock.ExpectQuery(selectPage).WillReturnRows(communicationRows())

	triples, err := LoadBatch(db, "outbreak")
	require.NoError(t, err)
	require.Len(t, triples, pageSize+1)
	assert.Equal(t, graph.Triple{C1: 1, C2: 2, Time: 1}, triples[0])
	assert.Equal(t, graph.Triple{C1: 7, C2: 8, Time: 900}, triples[pageSize])
	assert.NoError(t, mock.ExpectationsWereMet(), "loading stops at the first empty page")
}

func TestLoadBatch_Error(t *testing.T) {
	db, mock := mockDB(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	_, err := LoadBatch(db, "outbreak")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load batch outbreak")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSaveBatch(t *testing.T) {
	db, mock := mockDB(t)
	mock.ExpectExec("INSERT INTO `communication`").
		WillReturnResult(sqlmock.NewResult(1, 3))

	n, err := SaveBatch(db, "outbreak", []graph.Triple{
		{C1: 1, C2: 2, Time: 5},
		{C1: 2, C2: 3, Time: 10},
		{C1: 3, C2: 4, Time: 12},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveBatch_Error(t *testing.T) {
	db, mock := mockDB(t)
	mock.ExpectExec("INSERT INTO `communication`").WillReturnError(errors.New("duplicate"))

	_, err := SaveBatch(db, "outbreak", []graph.Triple{{C1: 1, C2: 2, Time: 5}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert batch outbreak")
}

func TestBatchPageSQL(t *testing.T) {
	db := dryRunDB(t)
	var rows []Communication
	stmt := batchPage(db, "outbreak", 3).Find(&rows).Statement
	sql := stmt.SQL.String()
	assert.Contains(t, sql, "FROM `communication`")
	assert.Contains(t, sql, "batch = ?")
	assert.Contains(t, sql, "ORDER BY id")
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")
	require.NotEmpty(t, stmt.Vars)
	assert.Equal(t, "outbreak", stmt.Vars[0])
}

func TestCommunicationTriple(t *testing.T) {
	c := Communication{Batch: "b", SrcID: 3, DstID: 4, Time: 9}
	assert.Equal(t, graph.Triple{C1: 3, C2: 4, Time: 9}, c.Triple())
	assert.Equal(t, "communication", c.TableName())
}

func TestSaveBatch_Empty(t *testing.T) {
	n, err := SaveBatch(dryRunDB(t), "b", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewTraceRecord(t *testing.T) {
	q := graph.Query{Source: 1, MinTime: 0, Target: 3, MaxTime: 20}
	found := NewTraceRecord("req", "b", q, graph.Result{Found: true, Hop: graph.Hop{Node: 3, Time: 10, Via: 2}})
	assert.True(t, found.Found)
	assert.Equal(t, int64(10), found.HopTime)
	assert.Equal(t, int64(2), found.Via)
	assert.Equal(t, int64(3), found.Target)

	safe := NewTraceRecord("req", "b", q, graph.Result{})
	assert.False(t, safe.Found)
	assert.Zero(t, safe.HopTime)
	assert.Equal(t, "trace_query", safe.TableName())
}
