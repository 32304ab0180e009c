package controller

import (
	"errors"
	"strconv"

	"learnify_backend/internal/service"
	"learnify_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
	StorageService   *service.StorageService
}

func NewChallengeController(challengeService *service.ChallengeService, storageService *service.StorageService) *ChallengeController {
	return &ChallengeController{
		ChallengeService: challengeService,
		StorageService:   storageService,
	}
}

// GetChallenges godoc
// @Summary 挑战列表
// @Description 按分类和等级筛选环保挑战
// @Tags 挑战
// @Produce  json
// @Param   category query string false "挑战分类" Enums(waste-management, biodiversity, energy, water, transportation)
// @Param   level query int false "挑战等级 1-5"
// @Success 200 {object} util.Response{data=[]model.Challenge} "成功"
// @Router /api/challenges [get]
func (c *ChallengeController) GetChallenges(ctx *gin.Context) {
	level, _ := strconv.Atoi(ctx.Query("level"))
	challenges, err := c.ChallengeService.GetChallenges(ctx.Query("category"), level)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, challenges)
}

// GetChallenge godoc
// @Summary 挑战详情
// @Tags 挑战
// @Produce  json
// @Param   id path int true "挑战ID"
// @Success 200 {object} util.Response{data=model.Challenge} "成功"
// @Failure 404 {object} util.Response "挑战不存在"
// @Router /api/challenges/{id} [get]
func (c *ChallengeController) GetChallenge(ctx *gin.Context) {
	challenge, err := c.ChallengeService.GetChallenge(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrChallengeNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, challenge)
}

// CreateChallenge godoc
// @Summary 创建挑战
// @Tags 挑战
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ChallengeCreateRequest true "挑战信息"
// @Success 201 {object} util.Response{data=model.Challenge} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/challenges [post]
func (c *ChallengeController) CreateChallenge(ctx *gin.Context) {
	var req service.ChallengeCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge, err := c.ChallengeService.CreateChallenge(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, challenge)
}

// CompleteChallenge godoc
// @Summary 完成挑战
// @Description 记录挑战完成并结算环保积分、等级和徽章。一次性挑战重复完成返回400
// @Tags 挑战
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "挑战ID"
// @Param   body body service.CompleteChallengeRequest false "完成凭证"
// @Success 200 {object} util.Response{data=service.ChallengeAward} "成功"
// @Failure 400 {object} util.Response "挑战已完成过"
// @Failure 401 {object} util.Response "未授权"
// @Failure 404 {object} util.Response "挑战不存在"
// @Router /api/challenges/{id}/complete [post]
func (c *ChallengeController) CompleteChallenge(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CompleteChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.BadRequest(ctx, err.Error())
		return
	}

	award, err := c.ChallengeService.Complete(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrChallengeNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrDuplicateCompletion):
			util.BadRequest(ctx, "Challenge already completed")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, award)
}

// GetMyChallenges godoc
// @Summary 我的挑战
// @Description 当前用户完成过的挑战及其完成记录
// @Tags 挑战
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.UserChallengeHistory} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/challenges/user/completed [get]
func (c *ChallengeController) GetMyChallenges(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	history, err := c.ChallengeService.GetUserChallenges(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, history)
}

// UploadProof godoc
// @Summary 上传挑战凭证
// @Description 上传完成凭证图片，返回可填入完成请求的URL
// @Tags 挑战
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "凭证图片"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "文件缺失或类型不支持"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/challenges/proof [post]
func (c *ChallengeController) UploadProof(ctx *gin.Context) {
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

	url, err := c.StorageService.UploadProof(ctx.Request.Context(), claims.UserID, header)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
