package controller

import (
	"errors"

	"learnify_backend/internal/service"
	"learnify_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	ProjectService *service.ProjectService
}

func NewProjectController(projectService *service.ProjectService) *ProjectController {
	return &ProjectController{ProjectService: projectService}
}

// GetProjects godoc
// @Summary 项目列表
// @Description 按分类和难度筛选实战项目
// @Tags 项目
// @Produce  json
// @Param   category query string false "项目分类" Enums(career, sustainability, hybrid)
// @Param   difficulty query string false "难度" Enums(beginner, intermediate, advanced)
// @Success 200 {object} util.Response{data=[]model.Project} "成功"
// @Router /api/projects [get]
func (c *ProjectController) GetProjects(ctx *gin.Context) {
	projects, err := c.ProjectService.GetProjects(ctx.Query("category"), ctx.Query("difficulty"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, projects)
}

// GetProject godoc
// @Summary 项目详情
// @Tags 项目
// @Produce  json
// @Param   id path int true "项目ID"
// @Success 200 {object} util.Response{data=model.Project} "成功"
// @Failure 404 {object} util.Response "项目不存在"
// @Router /api/projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	project, err := c.ProjectService.GetProject(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrProjectNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, project)
}

// CreateProject godoc
// @Summary 创建项目
// @Tags 项目
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ProjectCreateRequest true "项目信息"
// @Success 201 {object} util.Response{data=model.Project} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	var req service.ProjectCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	project, err := c.ProjectService.CreateProject(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, project)
}

// SubmitProject godoc
// @Summary 提交项目
// @Description 提交项目成果并结算技能积分与徽章。重复提交返回400
// @Tags 项目
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "项目ID"
// @Param   body body service.SubmitProjectRequest false "提交内容"
// @Success 200 {object} util.Response{data=service.ProjectAward} "成功"
// @Failure 400 {object} util.Response "项目已提交过"
// @Failure 401 {object} util.Response "未授权"
// @Failure 404 {object} util.Response "项目不存在"
// @Router /api/projects/{id}/submit [post]
func (c *ProjectController) SubmitProject(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.BadRequest(ctx, err.Error())
		return
	}

	award, err := c.ProjectService.Submit(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrProjectNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrDuplicateCompletion):
			util.BadRequest(ctx, "Project already submitted")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, award)
}
