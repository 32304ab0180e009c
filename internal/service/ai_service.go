package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"learnify_backend/internal/config"
	"learnify_backend/internal/model"
	"learnify_backend/pkg/logger"

	"go.uber.org/zap"
)

// AIService 调用 Mistral 兼容的 chat/completions 接口。
// 接口不可用时返回内置的兜底内容，不把错误抛给调用方
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// 接口失败时的兜底推荐，保持前端可直接渲染的 JSON 数组格式
const fallbackRecommendations = `[{"title":"Web Development Basics","description":"Learn HTML, CSS, and JavaScript fundamentals","category":"technical","difficulty":"beginner","resources":["FreeCodeCamp","MDN Web Docs"]},{"title":"Build a Sustainable Energy Calculator","description":"Create a web app to calculate carbon footprint and energy savings","category":"hybrid","difficulty":"intermediate","resources":["Climate Action APIs","Chart.js"]},{"title":"Start a Campus Recycling Initiative","description":"Organize and lead a waste management program at your institution","category":"environmental","difficulty":"beginner","resources":["EPA Recycling Guide","Local Environmental NGOs"]}]`

const fallbackChatReply = "I'm here to help you with your learning journey! Could you please rephrase your question or ask about specific topics like career skills, environmental actions, or academic support?"

func (s *AIService) complete(ctx context.Context, req ChatCompletionRequest) (string, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}

// GetRecommendations 根据学生画像生成 3-5 条学习路径推荐
func (s *AIService) GetRecommendations(ctx context.Context, user *model.User, completedProjects int) string {
	branch := user.Branch
	if branch == "" {
		branch = "General"
	}
	year := user.Year
	if year == "" {
		year = "Unknown"
	}
	goals := user.Goals
	if goals == "" {
		goals = "General skill development"
	}

	prompt := fmt.Sprintf(`Based on the following student profile, recommend 3-5 relevant learning paths, courses, or projects:

Student Profile:
- Branch: %s
- Year: %s
- Goals: %s
- Current Skill Points: %d
- Current Eco Points: %d
- Completed Projects: %d

Provide recommendations for:
1. Technical skills to learn
2. Career-focused projects
3. Environmental sustainability actions

Format as JSON array with: { title, description, category, difficulty, resources }`,
		branch, year, goals, user.SkillPoints, user.EcoPoints, completedProjects)

	content, err := s.complete(ctx, ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: "You are an AI educational advisor for Learnify, an EdTech platform focused on career skills and environmental education. Provide practical, actionable recommendations."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		logger.Log.Warn("AI recommendations unavailable, using fallback", zap.Error(err))
		return fallbackRecommendations
	}
	return content
}

// Chat AI 导师对话，注入用户上下文
func (s *AIService) Chat(ctx context.Context, user *model.User, message string) string {
	name := "Student"
	branch := "General"
	goals := "Learning and growth"
	level := 1
	if user != nil {
		if user.Name != "" {
			name = user.Name
		}
		if user.Branch != "" {
			branch = user.Branch
		}
		if user.Goals != "" {
			goals = user.Goals
		}
		level = user.Level
	}

	systemPrompt := fmt.Sprintf(`You are an AI mentor for Learnify, helping students with:
- Academic questions and study tips
- Career guidance and skill development
- Environmental sustainability education and actions
- Project ideas and technical help

Be encouraging, practical, and concise. Provide actionable advice.

User Context:
- Name: %s
- Branch: %s
- Level: %d
- Goals: %s`, name, branch, level, goals)

	content, err := s.complete(ctx, ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		logger.Log.Warn("AI chat unavailable, using fallback", zap.Error(err))
		return fallbackChatReply
	}
	return content
}

// GenerateStudyPlan 生成 4 周个性化学习计划。
// 上游不可用时返回空串，由调用方以 null 计划响应，不向用户暴露失败
func (s *AIService) GenerateStudyPlan(ctx context.Context, user *model.User, targetSkills []string) string {
	prompt := fmt.Sprintf(`Create a 4-week personalized study plan for:

Student: %s
Branch: %s
Year: %s
Target Skills: %s
Goals: %s

Include:
- Weekly learning objectives
- Daily time commitment (realistic for students)
- Resources and tutorials
- Practice projects
- Environmental sustainability integration

Format as structured JSON with weeks, days, and tasks.`,
		user.Name, user.Branch, user.Year, strings.Join(targetSkills, ", "), user.Goals)

	content, err := s.complete(ctx, ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: "You are an expert educational planner creating personalized, achievable study plans."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.6,
		MaxTokens:   1500,
	})
	if err != nil {
		logger.Log.Warn("AI study plan unavailable, returning empty plan", zap.Error(err))
		return ""
	}
	return content
}
