package database

import (
	"time"

	"stock-audit/internal/config"
	"stock-audit/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	log := config.Logger()

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Infof("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
		if err == nil {
			log.Info("connected to DB successfully")
			break
		}

		log.Warnf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Audit{},
		&models.AuditItem{},
		&models.ItemSerial{},
		&models.ScanEvent{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	createDefaultAdmin(cfg)
	seedDefaultUsers()
}

// admin comes only from config/env, never from a form
func createDefaultAdmin(cfg *config.Config) {
	log := config.Logger()

	username := cfg.AdminUsername
	if username == "" {
		username = "admin@stock.local"
	}
	password := cfg.AdminPassword
	if password == "" {
		password = "Admin123!"
	}

	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		log.Warnf("failed to check admin user: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Warnf("failed to hash default admin password: %v", err)
		return
	}

	admin := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Warnf("failed to create default admin: %v", err)
		return
	}

	log.Infof("created default admin user: %s", username)
}

// a scanner operator and a read-only account for the floor demo
func seedDefaultUsers() {
	log := config.Logger()

	type seedUser struct {
		Username string
		Password string
		Role     models.UserRole
	}

	users := []seedUser{
		{
			Username: "scanner@stock.local",
			Password: "Scanner123!",
			Role:     models.RoleOperator,
		},
		{
			Username: "viewer@stock.local",
			Password: "Viewer123!",
			Role:     models.RoleViewer,
		},
	}

	for _, u := range users {
		var count int64
		if err := DB.Model(&models.User{}).
			Where("username = ?", u.Username).
			Count(&count).Error; err != nil {
			log.Warnf("failed to check seed user %s: %v", u.Username, err)
			continue
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Warnf("failed to hash password for %s: %v", u.Username, err)
			continue
		}

		user := models.User{
			Username:     u.Username,
			PasswordHash: string(hash),
			Role:         u.Role,
		}

		if err := DB.Create(&user).Error; err != nil {
			log.Warnf("failed to create seed user %s: %v", u.Username, err)
			continue
		}

		log.Infof("created seed user: %s (role=%s)", u.Username, u.Role)
	}
}
