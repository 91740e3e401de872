package database

import (
	"github.com/aperture-social/aperture/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Post{},
	&models.Comment{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.Notification{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
