package controller

import (
	"errors"

	"learnify_backend/internal/service"
	"learnify_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService    *service.UserService
	StorageService *service.StorageService
}

func NewUserController(userService *service.UserService, storageService *service.StorageService) *UserController {
	return &UserController{
		UserService:    userService,
		StorageService: storageService,
	}
}

// GetLeaderboard godoc
// @Summary 排行榜
// @Description 按积分取靠前用户，type=eco 按环保积分，默认按技能积分
// @Tags 用户
// @Produce  json
// @Param   type query string false "排行榜类型" Enums(eco, skill)
// @Param   limit query int false "返回数量，默认20，上限20"
// @Success 200 {object} util.Response{data=[]model.User} "成功"
// @Router /api/users/leaderboard [get]
func (c *UserController) GetLeaderboard(ctx *gin.Context) {
	limit := int(util.MustParseUint(ctx.Query("limit")))
	users, err := c.UserService.GetLeaderboard(ctx.Query("type"), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// GetStats godoc
// @Summary 用户统计
// @Description 当前用户的积分、等级、徽章数与全站排名
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.UserStats} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/users/stats [get]
func (c *UserController) GetStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.UserService.GetStats(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, stats)
}

// UploadAvatar godoc
// @Summary 上传头像
// @Description 上传头像图片并更新用户资料
// @Tags 用户
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "头像图片"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "文件缺失或类型不支持"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/users/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	url, err := c.StorageService.UploadAvatar(ctx.Request.Context(), claims.UserID, header)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if _, err := c.UserService.UpdateProfile(claims.UserID, service.UpdateProfileRequest{Avatar: url}); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"avatar": url})
}
