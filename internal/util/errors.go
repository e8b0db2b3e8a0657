package util

import "errors"

var (
	ErrQuestionNotFound      = errors.New("题目不存在")
	ErrDuplicateQuestion     = errors.New("题库中已存在相同题目")
	ErrWrongQuestionNotFound = errors.New("错题记录不存在")
	ErrPracticeTaskNotFound  = errors.New("练习任务不存在")
	ErrInviteCodeNotFound    = errors.New("邀请码不存在")
	ErrInviteCodeUsed        = errors.New("邀请码已被使用")
	ErrInviteCodeExpired     = errors.New("邀请码已过期")
	ErrPermissionDenied      = errors.New("permission denied")
)
