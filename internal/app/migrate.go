package app

import (
	"gorm.io/gorm"

	"github.com/axiomcity/axiom-susu/internal/model"
)

// AutoMigrate 自动建表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.InterestHub{},
		&model.HubMember{},
		&model.PurposeCategory{},
		&model.PurposeGroup{},
		&model.GroupMember{},
		&model.Contribution{},
		&model.ModeThreshold{},
		&model.PurposeCategoryMultiplier{},
		&model.FeatureFlag{},
		&model.Charter{},
		&model.CharterAcceptance{},
		&model.ReliabilityProfile{},
		&model.AnalyticsEvent{},
	)
}
