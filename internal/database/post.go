package database

import (
	"github.com/thekizzer/microblog/internal/models"
)

func (d *Database) SavePost(post *models.Post) error {
	return translate(d.db.Create(post).Error)
}

func (d *Database) GetPost(id uint) (*models.Post, error) {
	var post models.Post
	if err := d.db.Preload("User").First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}
