package repositories

import (
	"errors"

	"heyprodata_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrAlreadyLiked = errors.New("post already liked by this user")
	ErrLikeNotFound = errors.New("like not found")
)

// FeedCriteria filters the slate feed.
type FeedCriteria struct {
	Kind     string `form:"kind"`
	AuthorID string `form:"author_id"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type PostRepository interface {
	Create(post *models.Post) error
	FindByID(id string) (*models.Post, error)
	ListFeed(criteria FeedCriteria) ([]models.Post, int64, error)
	Delete(id string) error
	// AddLike inserts a like and bumps the counter atomically; a second
	// like by the same user returns ErrAlreadyLiked.
	AddLike(postID, userID string) error
	RemoveLike(postID, userID string) error
}

type PostRepositoryImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepositoryImpl) FindByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostRepositoryImpl) ListFeed(criteria FeedCriteria) ([]models.Post, int64, error) {
	var posts []models.Post
	query := r.db.Model(&models.Post{})

	if criteria.Kind != "" {
		query = query.Where("kind = ?", criteria.Kind)
	}
	if criteria.AuthorID != "" {
		query = query.Where("author_id = ?", criteria.AuthorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error

	return posts, total, err
}

func (r *PostRepositoryImpl) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Post{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}

func (r *PostRepositoryImpl) AddLike(postID, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		like := &models.PostLike{PostID: postID, UserID: userID}
		if err := tx.Create(like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyLiked
			}
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
}

func (r *PostRepositoryImpl) RemoveLike(postID, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&models.PostLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrLikeNotFound
		}
		return tx.Model(&models.Post{}).Where("id = ? AND like_count > 0", postID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
}
