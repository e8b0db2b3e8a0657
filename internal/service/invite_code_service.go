package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"

	"gorm.io/gorm"
)

const (
	inviteCodeLength   = 8
	inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	inviteCodeTTL      = 30 * 24 * time.Hour
)

type InviteCodeService struct {
	repo *repository.InviteCodeRepository
}

func NewInviteCodeService(repo *repository.InviteCodeRepository) *InviteCodeService {
	return &InviteCodeService{repo: repo}
}

// Generate 批量生成邀请码，唯一索引冲突时换码重试
func (s *InviteCodeService) Generate(createdBy uint, count int) ([]*model.InviteCode, error) {
	if count <= 0 {
		count = 1
	}
	if count > 100 {
		count = 100
	}

	codes := make([]*model.InviteCode, 0, count)
	for i := 0; i < count; i++ {
		var created *model.InviteCode
		for attempt := 0; attempt < 5; attempt++ {
			code, err := randomCode(inviteCodeLength)
			if err != nil {
				return nil, err
			}
			c := &model.InviteCode{
				Code:      code,
				CreatedBy: createdBy,
				ExpiresAt: time.Now().Add(inviteCodeTTL),
			}
			if err := s.repo.Create(c); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					continue
				}
				return nil, err
			}
			created = c
			break
		}
		if created == nil {
			return nil, fmt.Errorf("生成邀请码失败，请重试")
		}
		codes = append(codes, created)
	}
	return codes, nil
}

func (s *InviteCodeService) List(page, limit int) ([]*model.InviteCode, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.List(page, limit)
}

// Validate 校验可用性，不核销
func (s *InviteCodeService) Validate(code string) (*model.InviteCode, error) {
	c, err := s.repo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInviteCodeNotFound
		}
		return nil, err
	}
	if c.UsedBy != nil {
		return nil, util.ErrInviteCodeUsed
	}
	if !time.Now().Before(c.ExpiresAt) {
		return nil, util.ErrInviteCodeExpired
	}
	return c, nil
}

func randomCode(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(buf), nil
}
