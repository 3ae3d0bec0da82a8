package database

import (
	"fmt"
	"log"

	"accounting/config"
	"accounting/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)  // 最大空闲连接数
	sqlDB.SetMaxOpenConns(100) // 最大打开连接数

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Category{},
		&models.Record{},
	); err != nil {
		return err
	}

	// 初始化系统默认类别
	if err := seedDefaultCategories(); err != nil {
		return err
	}

	log.Println("数据库初始化完成")
	return nil
}

// seedDefaultCategories 写入系统默认类别（幂等，已存在则跳过）
func seedDefaultCategories() error {
	var count int64
	if err := DB.Model(&models.Category{}).Where("is_default = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var categories []models.Category
	for i, name := range models.DefaultExpenseCategories() {
		categories = append(categories, models.Category{
			Name:      name,
			Type:      models.RecordTypeExpense,
			Sort:      (i + 1) * 10,
			IsDefault: true,
		})
	}
	for i, name := range models.DefaultIncomeCategories() {
		categories = append(categories, models.Category{
			Name:      name,
			Type:      models.RecordTypeIncome,
			Sort:      (i + 1) * 10,
			IsDefault: true,
		})
	}

	if err := DB.Create(&categories).Error; err != nil {
		return fmt.Errorf("初始化默认类别失败: %w", err)
	}
	log.Printf("已初始化 %d 个默认类别", len(categories))
	return nil
}
