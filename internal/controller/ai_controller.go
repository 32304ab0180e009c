package controller

import (
	"learnify_backend/internal/model"
	"learnify_backend/internal/repository"
	"learnify_backend/internal/service"
	"learnify_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	AIService *service.AIService
	UserRepo  *repository.UserRepository
}

func NewAIController(aiService *service.AIService, userRepo *repository.UserRepository) *AIController {
	return &AIController{
		AIService: aiService,
		UserRepo:  userRepo,
	}
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type StudyPlanRequest struct {
	TargetSkills []string `json:"targetSkills" binding:"required,min=1"`
}

// GetRecommendations godoc
// @Summary AI学习推荐
// @Description 根据学生画像生成个性化学习路径推荐，AI不可用时返回内置推荐
// @Tags AI
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/ai/recommendations [get]
func (c *AIController) GetRecommendations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserRepo.FindByID(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	completed, err := c.UserRepo.CompletedIDs(claims.UserID, model.CompletedProject)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	content := c.AIService.GetRecommendations(ctx.Request.Context(), user, len(completed))
	util.Success(ctx, gin.H{"recommendations": content})
}

// Chat godoc
// @Summary AI导师对话
// @Description 与AI导师对话，注入用户上下文。AI不可用时返回兜底回复
// @Tags AI
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ChatRequest true "用户消息"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/ai/chat [post]
func (c *AIController) Chat(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, _ := c.UserRepo.FindByID(claims.UserID)
	reply := c.AIService.Chat(ctx.Request.Context(), user, req.Message)
	util.Success(ctx, gin.H{"reply": reply})
}

// GenerateStudyPlan godoc
// @Summary 生成学习计划
// @Description 根据目标技能生成4周个性化学习计划，AI不可用时返回空计划
// @Tags AI
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body StudyPlanRequest true "目标技能"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/ai/study-plan [post]
func (c *AIController) GenerateStudyPlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StudyPlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserRepo.FindByID(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	plan := c.AIService.GenerateStudyPlan(ctx.Request.Context(), user, req.TargetSkills)
	if plan == "" {
		// 上游不可用时计划置空，仍返回 200，由前端提示稍后重试
		util.Success(ctx, gin.H{"studyPlan": nil})
		return
	}
	util.Success(ctx, gin.H{"studyPlan": plan})
}
