package main

import (
	"github.com/kimhour/StudentClearance/internal/config"
	"github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/database"
	"github.com/kimhour/StudentClearance/internal/env"
	"github.com/kimhour/StudentClearance/internal/model"
	"github.com/kimhour/StudentClearance/internal/util"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	env.LoadEnv()
}

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()
	cfg := config.GetConfig()

	logger.Infof("Database configuration: %+v", cfg.DB)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	migrateErr := db.AutoMigrate(
		&model.User{},
		&model.Requirement{},
		&model.StudentRequirement{},
		&model.Clearance{},
		&model.SubmittedClearance{},
		&model.Setting{},
	)
	if migrateErr != nil {
		logger.Panic(migrateErr)
	}

	if err := seed(db, logger); err != nil {
		logger.Panic(err)
	}

	logger.Info("Migration and seed complete")
}

// seed creates the default admin accounts and two sample students. Existing
// usernames are left untouched so reruns are safe.
func seed(db *gorm.DB, logger *zap.SugaredLogger) error {
	type seedUser struct {
		user     model.User
		password string
	}

	users := []seedUser{
		{user: model.User{Username: "admin1", Name: "Administrator 1", Role: constant.UserRoleAdmin}, password: "admin123"},
		{user: model.User{Username: "admin2", Name: "Administrator 2", Role: constant.UserRoleAdmin}, password: "admin123"},
		{user: model.User{Username: "admin3", Name: "Administrator 3", Role: constant.UserRoleAdmin}, password: "admin123"},
		{
			user: model.User{
				Username: "0221-1001",
				Name:     "John Doe",
				Role:     constant.UserRoleStudent,
				Course:   "IT",
				Year:     3,
				Major:    "WMAD",
				Section:  "A",
			},
			// students log in with their student number as the initial password
			password: "0221-1001",
		},
		{
			user: model.User{
				Username: "0222-1002",
				Name:     "Jane Smith",
				Role:     constant.UserRoleStudent,
				Course:   "CS",
				Year:     2,
				Section:  "B",
			},
			password: "0222-1002",
		},
	}

	for _, su := range users {
		var count int64
		if err := db.Model(&model.User{}).Where("username = ?", su.user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			logger.Debugf("User %s already exists, skipping", su.user.Username)
			continue
		}

		hash, err := util.HashPassword(su.password)
		if err != nil {
			return err
		}

		su.user.Password = hash
		if err := db.Create(&su.user).Error; err != nil {
			return err
		}

		logger.Infof("Seeded user %s (%s)", su.user.Username, su.user.Role)
	}

	return nil
}
