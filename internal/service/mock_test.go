package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"seniorcare-lead-api/internal/client"
	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/repository"
)

// MockNotificationClient records every event it is asked to send
type MockNotificationClient struct {
	mu     sync.Mutex
	Events []client.NotificationEvent

	SendNotificationFunc func(ctx context.Context, event client.NotificationEvent) error
}

func (m *MockNotificationClient) SendNotification(ctx context.Context, event client.NotificationEvent) error {
	m.mu.Lock()
	m.Events = append(m.Events, event)
	m.mu.Unlock()
	if m.SendNotificationFunc != nil {
		return m.SendNotificationFunc(ctx, event)
	}
	return nil
}

func (m *MockNotificationClient) SendBulkNotifications(ctx context.Context, events []client.NotificationEvent) error {
	for _, event := range events {
		if err := m.SendNotification(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockNotificationClient) Sent() []client.NotificationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]client.NotificationEvent(nil), m.Events...)
}

// MockChangeLogRepository is a mock implementation of ChangeLogRepository
type MockChangeLogRepository struct {
	CreateFunc func(ctx context.Context, entry *domain.ChangeLog) error
	GridFunc   func(ctx context.Context, spaceID uuid.UUID, q repository.GridQuery, f repository.ChangeLogFilter) ([]domain.ChangeLog, int64, error)
}

func (m *MockChangeLogRepository) Create(ctx context.Context, entry *domain.ChangeLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil
}

func (m *MockChangeLogRepository) Grid(ctx context.Context, spaceID uuid.UUID, q repository.GridQuery, f repository.ChangeLogFilter) ([]domain.ChangeLog, int64, error) {
	if m.GridFunc != nil {
		return m.GridFunc(ctx, spaceID, q, f)
	}
	return []domain.ChangeLog{}, 0, nil
}

// MockTransactor runs fn without a transaction and counts calls
type MockTransactor struct {
	Calls  int
	DoFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *MockTransactor) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if m.DoFunc != nil {
		return m.DoFunc(ctx, fn)
	}
	return fn(ctx)
}
