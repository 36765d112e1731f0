// internal/services/notification_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

// CreateNotificationRequest addresses one user, or everyone when
// TargetUserID is nil.
type CreateNotificationRequest struct {
	Title        string                  `json:"title" binding:"required,max=255"`
	Message      string                  `json:"message" binding:"required"`
	Type         models.NotificationType `json:"type"`
	TargetUserID *uuid.UUID              `json:"target_user_id"`
	CreatedByID  uuid.UUID               `json:"created_by_id" binding:"required"`
}

type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
}

func NewNotificationService(notifications repository.NotificationRepository, users repository.UserRepository) *NotificationService {
	return &NotificationService{notifications: notifications, users: users}
}

func (s *NotificationService) Create(ctx context.Context, req CreateNotificationRequest) (*models.Notification, error) {
	if req.Title == "" || req.Message == "" {
		return nil, fmt.Errorf("%w: title and message required", repository.ErrInvalidInput)
	}

	notifType := req.Type
	if notifType == "" {
		notifType = models.NotificationTypeSystem
	}
	switch notifType {
	case models.NotificationTypeSystem, models.NotificationTypeOrder, models.NotificationTypePromotion:
	default:
		return nil, fmt.Errorf("%w: unknown notification type %q", repository.ErrInvalidInput, req.Type)
	}

	if req.TargetUserID != nil {
		if _, err := s.users.FindByID(ctx, *req.TargetUserID); err != nil {
			return nil, fmt.Errorf("target user: %w", err)
		}
	}

	notification := &models.Notification{
		Title:        req.Title,
		Message:      req.Message,
		Type:         notifType,
		TargetUserID: req.TargetUserID,
		CreatedByID:  req.CreatedByID,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// ListForUser returns the user's notifications plus broadcasts, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	return s.notifications.FindForUser(ctx, userID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	return s.notifications.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	return s.notifications.Delete(ctx, id)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifications.UnreadCount(ctx, userID)
}
