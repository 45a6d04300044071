package models

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"time"
	"virustrace/conf"
	"virustrace/logs"
)

var _db *gorm.DB

// Init connects to the configured MySQL database and migrates the tables.
func Init() {
	var err error
	_db, err = gorm.Open(mysql.Open(conf.Config.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logs.Logger.WithError(err).Fatal("failed to connect database")
	}
	sqlDB, err := _db.DB()
	if err != nil {
		logs.Logger.WithError(err).Fatal("failed to get sql.DB")
	}
	sqlDB.SetMaxIdleConns(conf.Config.Mysql.MaxIdleConns)
	sqlDB.SetMaxOpenConns(conf.Config.Mysql.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		logs.Logger.WithError(err).Fatal("failed to ping database")
	}
	if err := _db.AutoMigrate(&Communication{}, &TraceRecord{}); err != nil {
		logs.Logger.WithError(err).Fatal("failed to migrate tables")
	}
	logs.Logger.Info("connected to database")
}

func GetMysqlDB() *gorm.DB {
	return _db
}
