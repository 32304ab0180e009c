package controller

import (
	"errors"
	"strings"

	"learnify_backend/internal/service"
	"learnify_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommunityController struct {
	CommunityService *service.CommunityService
}

func NewCommunityController(communityService *service.CommunityService) *CommunityController {
	return &CommunityController{CommunityService: communityService}
}

// viewerID 未登录时为 0
func viewerID(ctx *gin.Context) uint {
	if claims := util.GetUserFromContext(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}

// GetPosts godoc
// @Summary 帖子列表
// @Description 按分类和标签筛选帖子，置顶优先，其余按创建时间倒序
// @Tags 社区
// @Produce  json
// @Param   category query string false "帖子分类" Enums(question, discussion, project-showcase, mentorship, eco-action)
// @Param   tags query string false "标签，逗号分隔"
// @Success 200 {object} util.Response{data=[]service.PostView} "成功"
// @Router /api/community/posts [get]
func (c *CommunityController) GetPosts(ctx *gin.Context) {
	var tags []string
	if raw := ctx.Query("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	posts, err := c.CommunityService.GetPosts(ctx.Query("category"), tags, viewerID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// GetPost godoc
// @Summary 帖子详情
// @Description 读取帖子详情并累加浏览量，同一用户10分钟内重复访问不重复计数
// @Tags 社区
// @Produce  json
// @Param   id path string true "帖子ID"
// @Success 200 {object} util.Response{data=service.PostView} "成功"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/community/posts/{id} [get]
func (c *CommunityController) GetPost(ctx *gin.Context) {
	post, err := c.CommunityService.GetPost(ctx.Request.Context(), ctx.Param("id"), viewerID(ctx))
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, post)
}

// CreatePost godoc
// @Summary 发布帖子
// @Tags 社区
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.PostCreateRequest true "帖子内容"
// @Success 201 {object} util.Response{data=service.PostView} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/community/posts [post]
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.PostCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.CommunityService.CreatePost(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// AddReply godoc
// @Summary 回复帖子
// @Tags 社区
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "帖子ID"
// @Param   body body service.ReplyCreateRequest true "回复内容"
// @Success 201 {object} util.Response{data=service.PostView} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/community/posts/{id}/replies [post]
func (c *CommunityController) AddReply(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ReplyCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.CommunityService.AddReply(ctx.Param("id"), claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, post)
}

// ToggleUpvote godoc
// @Summary 点赞/取消点赞
// @Description 对帖子或回复切换点赞状态，已点过则取消
// @Tags 社区
// @Produce  json
// @Security ApiKeyAuth
// @Param   type path string true "目标类型" Enums(post, reply)
// @Param   id path string true "目标ID"
// @Success 200 {object} util.Response{data=service.UpvoteResult} "成功"
// @Failure 400 {object} util.Response "目标类型无效"
// @Failure 401 {object} util.Response "未授权"
// @Failure 404 {object} util.Response "目标不存在"
// @Router /api/community/{type}/{id}/upvote [post]
func (c *CommunityController) ToggleUpvote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.CommunityService.ToggleUpvote(claims.UserID, ctx.Param("type"), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else if strings.Contains(err.Error(), "unknown upvote target") {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// ToggleSolved godoc
// @Summary 切换已解决状态
// @Description 仅帖子作者可以标记/取消标记已解决
// @Tags 社区
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "帖子ID"
// @Success 200 {object} util.Response{data=service.PostView} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Failure 403 {object} util.Response "非帖子作者"
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/community/posts/{id}/solved [put]
func (c *CommunityController) ToggleSolved(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	post, err := c.CommunityService.ToggleSolved(ctx.Param("id"), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPostNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotAuthorized):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, post)
}
