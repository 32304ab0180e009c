package repository

import (
	"strings"

	"learnify_backend/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

// Find 置顶优先、新帖在前；tags 命中任意一个即可
func (r *PostRepository) Find(category string, tags []string) ([]model.Post, error) {
	query := r.DB.Model(&model.Post{}).
		Preload("Author").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Preload("Replies.Author")

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if len(tags) > 0 {
		tagQuery := r.DB
		for _, tag := range tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			tagQuery = tagQuery.Or("FIND_IN_SET(?, tags) > 0", tag)
		}
		query = query.Where(tagQuery)
	}

	var posts []model.Post
	err := query.Order("is_pinned DESC, created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *PostRepository) FindByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.DB.
		Preload("Author").
		Preload("Author.Badges").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Preload("Replies.Author").
		Where("id = ?", id).First(&post).Error
	return &post, err
}

func (r *PostRepository) Save(post *model.Post) error {
	return r.DB.Save(post).Error
}

// IncrementViews 乐观自增，最后写入者生效，不保证跨并发读的强序
func (r *PostRepository) IncrementViews(id string) error {
	return r.DB.Model(&model.Post{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *PostRepository) AppendReply(reply *model.Reply) error {
	return r.DB.Create(reply).Error
}

// HasUpvoted 用户是否已点赞
func (r *PostRepository) HasUpvoted(userID uint, contentType, contentID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.PostUpvote{}).
		Where("user_id = ? AND content_type = ? AND content_id = ?", userID, contentType, contentID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostRepository) AddUpvote(userID uint, contentType, contentID string) error {
	return r.DB.Create(&model.PostUpvote{
		UserID:      userID,
		ContentType: contentType,
		ContentID:   contentID,
	}).Error
}

func (r *PostRepository) RemoveUpvote(userID uint, contentType, contentID string) error {
	return r.DB.
		Where("user_id = ? AND content_type = ? AND content_id = ?", userID, contentType, contentID).
		Delete(&model.PostUpvote{}).Error
}

func (r *PostRepository) CountUpvotes(contentType, contentID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.PostUpvote{}).
		Where("content_type = ? AND content_id = ?", contentType, contentID).
		Count(&count).Error
	return count, err
}
