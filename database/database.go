package database

import (
	"fmt"
	"log"

	config "github.com/kiptoo5489/learnhub/configs"
	"github.com/kiptoo5489/learnhub/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// gormConfig is shared by Connect and the test databases. TranslateError
// maps driver unique-violation errors onto gorm.ErrDuplicatedKey so handlers
// can turn them into 409s.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
		TranslateError:                           true,
	}
}

// Connect opens the Postgres connection. The returned handle is passed down
// to handlers and services explicitly; there is no package-level instance.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fmt.Println("✅ Database connected successfully")
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lesson{},
		&models.Quiz{},
		&models.QuizAttempt{},
		&models.Enrollment{},
		&models.Certificate{},
		&models.Payment{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("✅ Database migration successful")
	return nil
}

func SeedAdmin(db *gorm.DB) {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("Admin credentials not configured, skipping seed.")
		return
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		log.Printf("🔥 Failed to check for admin user: %v", err)
		return
	}
	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		Username: config.ConfigOr("ADMIN_FULL_NAME", "admin"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := db.Create(&adminUser).Error; err != nil {
		log.Printf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}
