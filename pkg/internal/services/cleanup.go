package services

import (
	"github.com/aperture-social/aperture/pkg/internal/database"
	"github.com/aperture-social/aperture/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

// DoAutoDatabaseCleanup sweeps records orphaned by the eventual-consistency
// windows of multi-step mutations: comments whose post is gone and
// notifications whose receiver is gone.
func DoAutoDatabaseCleanup() {
	log.Debug().Msg("Now running auto database cleanup...")

	var count int64

	result := database.C.
		Where("post_id NOT IN (?)", database.C.Model(&models.Post{}).Select("id")).
		Delete(&models.Comment{})
	if result.Error != nil {
		log.Warn().Err(result.Error).Msg("An error occurred when cleaning up orphan comments...")
	} else {
		count += result.RowsAffected
	}

	result = database.C.
		Where("receiver_id NOT IN (?)", database.C.Model(&models.Account{}).Select("id")).
		Delete(&models.Notification{})
	if result.Error != nil {
		log.Warn().Err(result.Error).Msg("An error occurred when cleaning up orphan notifications...")
	} else {
		count += result.RowsAffected
	}

	log.Info().Int64("affected", count).Msg("Auto database cleanup finished.")
}
