package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	authModel "capstonehub_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler periodically removes expired blacklist and
// refresh-token rows so the tables do not grow without bound.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(6 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			res := db.Where("expired_at < ?", now).Delete(&authModel.TokenBlacklistModel{})
			if res.Error != nil {
				log.Println("[ERROR] blacklist cleanup failed:", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[INFO] blacklist cleanup removed %d rows", res.RowsAffected)
			}

			res = db.Where("expired_at < ? OR revoked_at IS NOT NULL", now).
				Delete(&authModel.RefreshTokenModel{})
			if res.Error != nil {
				log.Println("[ERROR] refresh token cleanup failed:", res.Error)
			}
		}
	}()
}
