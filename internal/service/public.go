package service

import (
	"bitwise74/auth-api/internal/model"
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Public serves the unauthenticated FAQ and contact form
type Public struct {
	db *gorm.DB
}

func NewPublic(db *gorm.DB) *Public {
	return &Public{db: db}
}

func (p *Public) CreateFAQ(ctx context.Context, f *model.FAQ) error {
	if err := p.db.WithContext(ctx).Create(f).Error; err != nil {
		zap.L().Error("Failed to create FAQ", zap.Error(err))
		return ErrInternal
	}

	return nil
}

// ListFAQs returns every FAQ, newest first
func (p *Public) ListFAQs(ctx context.Context) ([]model.FAQ, error) {
	faqs := []model.FAQ{}

	err := p.db.WithContext(ctx).Order("created_at desc, id desc").Find(&faqs).Error
	if err != nil {
		zap.L().Error("Failed to list FAQs", zap.Error(err))
		return nil, ErrInternal
	}

	return faqs, nil
}

func (p *Public) CreateContactMessage(ctx context.Context, m *model.ContactMessage) error {
	if err := p.db.WithContext(ctx).Create(m).Error; err != nil {
		zap.L().Error("Failed to create contact message", zap.Error(err))
		return ErrInternal
	}

	return nil
}

func (p *Public) ListContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	msgs := []model.ContactMessage{}

	err := p.db.WithContext(ctx).Order("created_at desc, id desc").Find(&msgs).Error
	if err != nil {
		zap.L().Error("Failed to list contact messages", zap.Error(err))
		return nil, ErrInternal
	}

	return msgs, nil
}
