package database

import (
	"time"

	"github.com/thekizzer/microblog/internal/models"
)

func (d *Database) SaveUser(user *models.User) error {
	return translate(d.db.Create(user).Error)
}

func (d *Database) UpdateUser(user *models.User) error {
	return translate(d.db.Save(user).Error)
}

func (d *Database) GetUser(id uint) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (d *Database) FindUserByUsername(username string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (d *Database) UpdateLastSeen(id uint) error {
	return translate(d.db.Model(&models.User{}).Where("id = ?", id).Update("last_seen_at", time.Now()).Error)
}

func (d *Database) SearchUsersByUsername(query string) ([]models.User, error) {
	var users []models.User
	err := d.db.
		Where("username LIKE ?", "%"+query+"%").
		Order("username ASC").
		Limit(20).
		Find(&users).Error
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}
