package database

import (
	"Streamify/config"
	"Streamify/models"
	"Streamify/pkg/log"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 初始化数据库连接
func NewDB(conf *config.Config) *gorm.DB {
	level := logger.Warn
	if conf.Debug() {
		level = logger.Info
	}
	db, err := gorm.Open(mysql.Open(conf.MySQL.Dsn()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		log.L.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.L.Fatal("failed to get sql.DB", zap.Error(err))
	}
	if conf.MySQL.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(conf.MySQL.MaxOpenConns)
	}
	if conf.MySQL.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(conf.MySQL.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.L.Info("connect database success")
	return db
}

// Migrate 建表并补齐全文索引
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}

	m := db.Migrator()
	if !m.HasIndex(&models.Video{}, models.VideoFulltextIndex) {
		sql := "CREATE FULLTEXT INDEX " + models.VideoFulltextIndex + " ON videos (title, description)"
		if err := db.Exec(sql).Error; err != nil {
			return err
		}
	}
	log.L.Info("database migrated", zap.Int("tables", len(models.All())))
	return nil
}
