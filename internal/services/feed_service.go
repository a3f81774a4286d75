package services

import (
	"encoding/json"

	"heyprodata_backend/internal/models"
	"heyprodata_backend/internal/repositories"
	"heyprodata_backend/internal/services/dto"
	"heyprodata_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type FeedService interface {
	CreatePost(authorID string, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	GetPost(postID string) (*dto.PostResponse, error)
	ListFeed(criteria repositories.FeedCriteria) (*dto.FeedResponse, error)
	DeletePost(postID, requesterID string) error
	LikePost(postID, userID string) error
	UnlikePost(postID, userID string) error
}

type FeedServiceImpl struct {
	postRepo    repositories.PostRepository
	profileRepo repositories.ProfileRepository
}

func NewFeedService(postRepo repositories.PostRepository, profileRepo repositories.ProfileRepository) FeedService {
	return &FeedServiceImpl{postRepo: postRepo, profileRepo: profileRepo}
}

func (s *FeedServiceImpl) CreatePost(authorID string, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	kind := models.PostKind(req.Kind)
	if kind == "" {
		kind = models.PostKindSlate
	}

	mediaJSON, err := json.Marshal(req.MediaIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	post := &models.Post{
		AuthorID: authorID,
		Kind:     kind,
		Body:     req.Body,
		MediaIDs: datatypes.JSON(mediaJSON),
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.toPostResponse(post), nil
}

func (s *FeedServiceImpl) GetPost(postID string) (*dto.PostResponse, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrNotFound(err, "Post not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return s.toPostResponse(post), nil
}

func (s *FeedServiceImpl) ListFeed(criteria repositories.FeedCriteria) (*dto.FeedResponse, error) {
	normalizePagination(&criteria.Page, &criteria.PageSize)

	posts, total, err := s.postRepo.ListFeed(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.FeedResponse{
		Posts:    make([]dto.PostResponse, 0, len(posts)),
		Total:    total,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}
	for i := range posts {
		resp.Posts = append(resp.Posts, *s.toPostResponse(&posts[i]))
	}
	return resp, nil
}

func (s *FeedServiceImpl) DeletePost(postID, requesterID string) error {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.ErrNotFound(err, "Post not found")
		}
		return apperrors.InternalError(err)
	}

	if post.AuthorID != requesterID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.postRepo.Delete(postID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *FeedServiceImpl) LikePost(postID, userID string) error {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.ErrNotFound(err, "Post not found")
		}
		return apperrors.InternalError(err)
	}

	if err := s.postRepo.AddLike(postID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrAlreadyLiked) {
			return apperrors.ErrConflict(err, "post", "You have already liked this post")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *FeedServiceImpl) UnlikePost(postID, userID string) error {
	if err := s.postRepo.RemoveLike(postID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrLikeNotFound) {
			return apperrors.ErrNotFound(err, "Like not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *FeedServiceImpl) toPostResponse(post *models.Post) *dto.PostResponse {
	resp := &dto.PostResponse{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Kind:      post.Kind,
		Body:      post.Body,
		MediaIDs:  decodeStringList(post.MediaIDs),
		LikeCount: post.LikeCount,
		CreatedAt: post.CreatedAt,
	}
	if profile, err := s.profileRepo.FindByUserID(post.AuthorID); err == nil {
		resp.AuthorName = profile.DisplayName
	}
	return resp
}
