package user

import (
	"errors"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/database"
	"gorm.io/gorm"
)

// IsModerator vérifie si un utilisateur est modérateur à partir de son ID
func IsModerator(userID string) (bool, error) {
	var isModerator bool
	if err := database.DB.Model(&User{}).Select("is_moderator").Where("id = ?", userID).Scan(&isModerator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil // utilisateur introuvable, donc pas modérateur
		}
		return false, err
	}
	return isModerator, nil
}

func ExistsByID(userID string) bool {
	var count int64
	database.DB.Model(&User{}).Where("id = ?", userID).Count(&count)
	return count > 0
}
