package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"learnify_backend/internal/model"
	"learnify_backend/internal/repository"
	"learnify_backend/internal/util"
	"learnify_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const postViewDedupTTL = 10 * time.Minute

type CommunityService struct {
	PostRepo *repository.PostRepository
	Redis    *redis.Client
}

func NewCommunityService(postRepo *repository.PostRepository, rdb *redis.Client) *CommunityService {
	return &CommunityService{
		PostRepo: postRepo,
		Redis:    rdb,
	}
}

type PostCreateRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Category string   `json:"category" binding:"required,oneof=question discussion project-showcase mentorship eco-action"`
	Tags     []string `json:"tags"`
}

type ReplyCreateRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostView 帖子视图，在模型之上补充标签数组与点赞状态
type PostView struct {
	model.Post
	Tags       []string `json:"tags"`
	Upvotes    int64    `json:"upvotes"`
	HasUpvoted bool     `json:"hasUpvoted"`
}

type ReplyView struct {
	model.Reply
	Upvotes    int64 `json:"upvotes"`
	HasUpvoted bool  `json:"hasUpvoted"`
}

type UpvoteResult struct {
	Upvoted bool  `json:"upvoted"`
	Upvotes int64 `json:"upvotes"`
}

func splitTags(tags string) []string {
	if tags == "" {
		return []string{}
	}
	return strings.Split(tags, ",")
}

func joinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return strings.Join(cleaned, ",")
}

// viewerID 为 0 表示未登录，点赞状态一律为 false
func (s *CommunityService) buildPostView(post *model.Post, viewerID uint) (*PostView, error) {
	upvotes, err := s.PostRepo.CountUpvotes(model.UpvotePost, post.ID)
	if err != nil {
		return nil, err
	}
	view := &PostView{
		Post:    *post,
		Tags:    splitTags(post.Tags),
		Upvotes: upvotes,
	}
	if viewerID != 0 {
		view.HasUpvoted, err = s.PostRepo.HasUpvoted(viewerID, model.UpvotePost, post.ID)
		if err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (s *CommunityService) GetPosts(category string, tags []string, viewerID uint) ([]PostView, error) {
	posts, err := s.PostRepo.Find(category, tags)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for i := range posts {
		view, err := s.buildPostView(&posts[i], viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetPost 读取帖子详情并累加浏览量。同一用户 10 分钟内的重复访问
// 通过 Redis SETNX 去重，不重复计数；Redis 不可用时退化为每次都计
func (s *CommunityService) GetPost(ctx context.Context, id string, viewerID uint) (*PostView, error) {
	post, err := s.PostRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	countView := true
	if s.Redis != nil && viewerID != 0 {
		key := fmt.Sprintf("post_v:%s:u:%d", id, viewerID)
		ok, err := s.Redis.SetNX(ctx, key, 1, postViewDedupTTL).Result()
		if err != nil {
			logger.Log.Warn("Redis view dedup unavailable", zap.Error(err))
		} else {
			countView = ok
		}
	}
	if countView {
		if err := s.PostRepo.IncrementViews(id); err != nil {
			logger.Log.Warn("Failed to increment post views", zap.String("post_id", id), zap.Error(err))
		} else {
			post.Views++
		}
	}

	return s.buildPostView(post, viewerID)
}

func (s *CommunityService) CreatePost(authorID uint, req PostCreateRequest) (*PostView, error) {
	post := &model.Post{
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
		Category: model.PostCategory(req.Category),
		Tags:     joinTags(req.Tags),
	}
	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}

	created, err := s.PostRepo.FindByID(post.ID)
	if err != nil {
		return nil, err
	}
	return s.buildPostView(created, authorID)
}

func (s *CommunityService) AddReply(postID string, authorID uint, req ReplyCreateRequest) (*PostView, error) {
	post, err := s.PostRepo.FindByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.PostRepo.AppendReply(&model.Reply{
		PostID:   post.ID,
		AuthorID: authorID,
		Content:  req.Content,
	}); err != nil {
		return nil, err
	}

	updated, err := s.PostRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	return s.buildPostView(updated, authorID)
}

// ToggleUpvote 点赞开关：已点过则取消，未点过则点上
func (s *CommunityService) ToggleUpvote(userID uint, contentType, contentID string) (*UpvoteResult, error) {
	if contentType != model.UpvotePost && contentType != model.UpvoteReply {
		return nil, fmt.Errorf("unknown upvote target: %s", contentType)
	}

	exists, err := s.upvoteTargetExists(contentType, contentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrPostNotFound
	}

	upvoted, err := s.PostRepo.HasUpvoted(userID, contentType, contentID)
	if err != nil {
		return nil, err
	}
	if upvoted {
		err = s.PostRepo.RemoveUpvote(userID, contentType, contentID)
	} else {
		err = s.PostRepo.AddUpvote(userID, contentType, contentID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.PostRepo.CountUpvotes(contentType, contentID)
	if err != nil {
		return nil, err
	}
	return &UpvoteResult{Upvoted: !upvoted, Upvotes: count}, nil
}

func (s *CommunityService) upvoteTargetExists(contentType, contentID string) (bool, error) {
	var count int64
	var err error
	switch contentType {
	case model.UpvotePost:
		err = s.PostRepo.DB.Model(&model.Post{}).Where("id = ?", contentID).Count(&count).Error
	case model.UpvoteReply:
		err = s.PostRepo.DB.Model(&model.Reply{}).Where("id = ?", contentID).Count(&count).Error
	}
	return count > 0, err
}

// ToggleSolved 仅作者可以切换帖子的已解决状态
func (s *CommunityService) ToggleSolved(postID string, userID uint) (*PostView, error) {
	post, err := s.PostRepo.FindByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, util.ErrNotAuthorized
	}

	post.IsSolved = !post.IsSolved
	if err := s.PostRepo.Save(post); err != nil {
		return nil, err
	}
	return s.buildPostView(post, userID)
}
