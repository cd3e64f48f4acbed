package Models

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the configured database and runs migrations.
// DB_DRIVER selects the backend: sqlite (default, local file),
// postgres or mysql with DB_DSN.
func Connect() {
	var dialector gorm.Dialector
	switch os.Getenv("DB_DRIVER") {
	case "postgres":
		dialector = postgres.Open(os.Getenv("DB_DSN"))
	case "mysql":
		dialector = mysql.Open(os.Getenv("DB_DSN"))
	default:
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "monjez.db"
		}
		dialector = sqlite.Open(path)
	}

	connection, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	DB = connection

	// 1. Base entities with no dependencies
	DB.AutoMigrate(
		&Employee{},
		&Task{},
		&SystemAuditLog{},
	)

	// 2. Entities referencing the base set
	DB.AutoMigrate(
		&Assignment{}, // employee -> task edge
		&TaskLog{},
		&Announcement{},
		&AnnouncementReply{},
	)

	seedAdmin(connection)
}

// seedAdmin creates the bootstrap administrator account on an empty
// database so the system is reachable after first start.
func seedAdmin(db *gorm.DB) {
	var count int64
	if err := db.Model(&Employee{}).Count(&count).Error; err != nil {
		log.Printf("admin seed check failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe@1"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("admin seed failed: %v", err)
		return
	}

	admin := Employee{
		ID:          "admin",
		Name:        "System Administrator",
		JobTitle:    "Administrator",
		Active:      true,
		Role:        RoleAdmin,
		Permissions: PermissionList(AllPermissions...),
		Password:    string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("admin seed failed: %v", err)
		return
	}
	log.Println("Seeded default admin account")
}
