package app

import (
	"context"

	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port"
)

type OperatorService struct {
	repo port.OperatorRepository
}

func NewOperatorService(repo port.OperatorRepository) *OperatorService {
	return &OperatorService{repo: repo}
}

func (s *OperatorService) Get(ctx context.Context, userID, chatID int64) (*entity.Operator, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *OperatorService) SetState(ctx context.Context, userID, chatID int64, state entity.OperatorState) (*entity.Operator, error) {
	operator, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	operator.SetState(state)
	if err := s.repo.Save(ctx, operator); err != nil {
		return nil, err
	}

	return operator, nil
}

func (s *OperatorService) Cancel(ctx context.Context, userID, chatID int64) (*entity.Operator, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// SetSubscribed включает или выключает уведомления о циклах инспекции.
func (s *OperatorService) SetSubscribed(ctx context.Context, userID, chatID int64, on bool) (*entity.Operator, error) {
	operator, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	operator.SetSubscribed(on)
	if err := s.repo.Save(ctx, operator); err != nil {
		return nil, err
	}

	return operator, nil
}

// Subscribers возвращает чаты, подписанные на уведомления.
func (s *OperatorService) Subscribers(ctx context.Context) ([]int64, error) {
	operators, err := s.repo.Subscribed(ctx)
	if err != nil {
		return nil, err
	}

	chats := make([]int64, 0, len(operators))
	for _, o := range operators {
		chats = append(chats, o.ChatID)
	}
	return chats, nil
}
