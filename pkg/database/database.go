package database

import (
	"fmt"
	"hiregate_backend/internal/config"
	"hiregate_backend/internal/model"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Duplicate-key errors must surface as gorm.ErrDuplicatedKey so the
		// result writer can treat re-submission as a conditional-insert miss.
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.JobPosting{},
		&model.JobApplication{},
		&model.Exam{},
		&model.Question{},
		&model.ExamCredential{},
		&model.ExamResult{},
		&model.Termination{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed the administrator account on first run.
	var count int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&count)
	if count == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin := &model.User{
			Name:     "Administrator",
			Email:    "admin@hiregate.local",
			Password: string(hashed),
			Role:     model.Admin,
		}
		db.Create(admin)
		log.Println("Seeded default admin account")
	}

	return db, nil
}
