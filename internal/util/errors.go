package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid credentials")

	ErrChallengeNotFound = errors.New("challenge not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrPostNotFound      = errors.New("post not found")
	ErrSkillNotFound     = errors.New("skill not found")

	// 一次性挑战/项目的重复提交属于策略违规，按 400 处理而非服务端故障
	ErrDuplicateCompletion = errors.New("already completed")
	ErrNotAuthorized       = errors.New("not authorized")
)
