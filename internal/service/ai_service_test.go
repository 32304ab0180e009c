package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"learnify_backend/internal/config"
	"learnify_backend/internal/model"
	"learnify_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	// 测试里没有完整的日志初始化流程
	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}
}

func newTestAIService(baseURL string) *AIService {
	return NewAIService(config.AIConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Model:          "mistral-tiny",
		TimeoutSeconds: 5,
	})
}

func completionResponse(content string) string {
	resp := ChatCompletionResponse{}
	resp.Choices = append(resp.Choices, struct {
		Message AIChatMessage `json:"message"`
	}{Message: AIChatMessage{Role: "assistant", Content: content}})
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestAIServiceChat(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req ChatCompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "mistral-tiny", req.Model)
			require.Len(t, req.Messages, 2)
			assert.Contains(t, req.Messages[0].Content, "AI mentor for Learnify")

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(completionResponse("Try spaced repetition.")))
		}))
		defer server.Close()

		svc := newTestAIService(server.URL)
		user := &model.User{Name: "Asha", Branch: "CSE", Level: 3, Goals: "full-stack"}

		reply := svc.Chat(context.Background(), user, "How should I study?")
		assert.Equal(t, "Try spaced repetition.", reply)
	})

	t.Run("FallbackOnServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		svc := newTestAIService(server.URL)
		reply := svc.Chat(context.Background(), nil, "hello")
		assert.Equal(t, fallbackChatReply, reply)
	})

	t.Run("FallbackOnUnreachable", func(t *testing.T) {
		svc := newTestAIService("http://127.0.0.1:1")
		reply := svc.Chat(context.Background(), nil, "hello")
		assert.Equal(t, fallbackChatReply, reply)
	})
}

func TestAIServiceGetRecommendations(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req ChatCompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Messages, 2)
			assert.Contains(t, req.Messages[1].Content, "Completed Projects: 2")
			assert.Contains(t, req.Messages[1].Content, "Branch: ECE")

			w.Write([]byte(completionResponse(`[{"title":"Learn Go"}]`)))
		}))
		defer server.Close()

		svc := newTestAIService(server.URL)
		user := &model.User{Branch: "ECE", Year: "2", SkillPoints: 300, EcoPoints: 150}

		content := svc.GetRecommendations(context.Background(), user, 2)
		assert.Equal(t, `[{"title":"Learn Go"}]`, content)
	})

	t.Run("FallbackIsValidJSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		svc := newTestAIService(server.URL)
		content := svc.GetRecommendations(context.Background(), &model.User{}, 0)

		var recs []map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(content), &recs))
		assert.Len(t, recs, 3)
		assert.Equal(t, "Web Development Basics", recs[0]["title"])
	})

	t.Run("EmptyProfileUsesDefaults", func(t *testing.T) {
		var prompt string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req ChatCompletionRequest
			json.NewDecoder(r.Body).Decode(&req)
			prompt = req.Messages[1].Content
			w.Write([]byte(completionResponse("ok")))
		}))
		defer server.Close()

		svc := newTestAIService(server.URL)
		svc.GetRecommendations(context.Background(), &model.User{}, 0)

		assert.Contains(t, prompt, "Branch: General")
		assert.Contains(t, prompt, "Goals: General skill development")
	})
}

func TestAIServiceGenerateStudyPlan(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req ChatCompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.True(t, strings.Contains(req.Messages[1].Content, "Go, SQL"))
			w.Write([]byte(completionResponse(`{"weeks":[]}`)))
		}))
		defer server.Close()

		svc := newTestAIService(server.URL)
		plan := svc.GenerateStudyPlan(context.Background(), &model.User{Name: "Asha"}, []string{"Go", "SQL"})
		assert.Equal(t, `{"weeks":[]}`, plan)
	})

	t.Run("EmptyPlanOnServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		svc := newTestAIService(server.URL)
		plan := svc.GenerateStudyPlan(context.Background(), &model.User{}, []string{"Go"})
		assert.Empty(t, plan)
	})

	t.Run("EmptyPlanOnUnreachable", func(t *testing.T) {
		svc := newTestAIService("http://127.0.0.1:1")
		plan := svc.GenerateStudyPlan(context.Background(), &model.User{}, []string{"Go"})
		assert.Empty(t, plan)
	})
}
