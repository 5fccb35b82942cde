package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"showcase/api/logger"
	"showcase/api/metrics"
	"showcase/api/models"
	"showcase/api/requestdata"
	"showcase/api/utils"
)

const defaultNotifyTimeout = 30 * time.Second

// ContactRepository persists contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, c *models.ContactSubmission) (*models.ContactSubmission, error)
	Get(ctx context.Context, id int) (*models.ContactSubmission, error)
	List(ctx context.Context, opts models.ContactListOptions) ([]models.ContactSubmission, int, error)
	Update(ctx context.Context, id int, isRead *bool, notes *string) (*models.ContactSubmission, error)
	Delete(ctx context.Context, id int) (bool, error)
	CountUnread(ctx context.Context) (int, error)
}

// Notifier tells staff about a new submission.
type Notifier interface {
	NotifyContact(ctx context.Context, submission models.ContactSubmission) error
}

type ContactService struct {
	repo          ContactRepository
	notifier      Notifier
	validate      *validator.Validate
	log           *logger.Logger
	notifyTimeout time.Duration
	wg            sync.WaitGroup
}

func NewContactService(repo ContactRepository, notifier Notifier, log *logger.Logger) *ContactService {
	return &ContactService{
		repo:          repo,
		notifier:      notifier,
		validate:      newValidator(),
		log:           log.With("component", "contact"),
		notifyTimeout: defaultNotifyTimeout,
	}
}

// Submit validates and stores a submission, then notifies staff in the
// background. Notification failures are logged and never returned.
func (s *ContactService) Submit(ctx context.Context, info requestdata.Info, in models.SubmitContactInput) (*models.ContactSubmission, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &models.ContactSubmission{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     utils.NonEmpty(in.Phone),
		Company:   utils.NonEmpty(in.Company),
		Message:   in.Message,
		Source:    utils.NonEmpty(in.Source),
		IPAddress: utils.StringPtr(info.IP),
		UserAgent: utils.StringPtr(info.UserAgent),
	})
	if err != nil {
		return nil, fmt.Errorf("saving contact submission: %w", err)
	}

	s.notify(*created)
	return created, nil
}

func (s *ContactService) notify(submission models.ContactSubmission) {
	if s.notifier == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				metrics.ContactNotificationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
				s.log.Error("contact notification panicked", "submission_id", submission.ID, "panic", r)
			}
		}()

		// the request context is gone once the response is written
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		if err := s.notifier.NotifyContact(ctx, submission); err != nil {
			metrics.ContactNotificationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
			s.log.Error("failed to send contact notification", "submission_id", submission.ID, "error", err)
			return
		}
		metrics.ContactNotificationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	}()
}

// Wait blocks until in-flight notifications finish.
func (s *ContactService) Wait() {
	s.wg.Wait()
}

func (s *ContactService) List(ctx context.Context, opts models.ContactListOptions) ([]models.ContactSubmission, int, error) {
	return s.repo.List(ctx, opts)
}

// Get returns nil when the submission does not exist.
func (s *ContactService) Get(ctx context.Context, id int) (*models.ContactSubmission, error) {
	return s.repo.Get(ctx, id)
}

func (s *ContactService) Update(ctx context.Context, in models.UpdateContactInput) (*models.ContactSubmission, error) {
	return s.repo.Update(ctx, in.ID, in.IsRead, in.Notes)
}

// MarkAsRead is idempotent.
func (s *ContactService) MarkAsRead(ctx context.Context, id int) (*models.ContactSubmission, error) {
	read := true
	return s.repo.Update(ctx, id, &read, nil)
}

func (s *ContactService) Delete(ctx context.Context, id int) (*models.DeletionResponse, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deleted {
		msg := fmt.Sprintf("Contact submission %d not found", id)
		return &models.DeletionResponse{Result: models.NotDeleted, Message: &msg}, nil
	}
	return &models.DeletionResponse{Result: models.Deleted}, nil
}

func (s *ContactService) UnreadCount(ctx context.Context) (int, error) {
	return s.repo.CountUnread(ctx)
}
