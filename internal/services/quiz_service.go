package services

import (
	"context"
	"log"
	"strings"

	"github.com/HariStrange/drive-Vault/domain"
)

// QuizServiceImpl implements domain.QuizService
type QuizServiceImpl struct {
	quizRepo domain.QuizRepository
	storage  domain.FileStorage
	audit    domain.AuditLogger
}

// NewQuizService creates a new quiz service
func NewQuizService(quizRepo domain.QuizRepository, storage domain.FileStorage, audit domain.AuditLogger) domain.QuizService {
	return &QuizServiceImpl{
		quizRepo: quizRepo,
		storage:  storage,
		audit:    audit,
	}
}

// CreateSet implements domain.QuizService
func (s *QuizServiceImpl) CreateSet(ctx context.Context, name, category string, authorID uint) (*domain.QuestionSet, error) {
	name, category = strings.TrimSpace(name), strings.TrimSpace(category)
	if name == "" || category == "" {
		return nil, domain.ErrSetNameRequired
	}

	set := &domain.QuestionSet{
		SetName:   name,
		Category:  category,
		CreatedBy: authorID,
	}
	if err := s.quizRepo.CreateSet(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

// ListSets implements domain.QuizService
func (s *QuizServiceImpl) ListSets(ctx context.Context) ([]*domain.QuestionSet, error) {
	return s.quizRepo.ListSets(ctx)
}

// DeleteSet removes the set with its dependents, then the question images
func (s *QuizServiceImpl) DeleteSet(ctx context.Context, id uint) error {
	images, err := s.quizRepo.DeleteSet(ctx, id)
	if err != nil {
		return err
	}
	for _, name := range images {
		s.removeImage(name)
	}

	if s.audit != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.QuestionSetDeletedEvent, 0).
			WithMetadata("set_id", id).
			WithMetadata("images_removed", len(images)))
	}
	return nil
}

// CreateQuestion implements domain.QuizService. The type defaults to image
// when an image is attached and to text otherwise.
func (s *QuizServiceImpl) CreateQuestion(ctx context.Context, in domain.CreateQuestionInput) (*domain.Question, error) {
	qtype := strings.ToLower(strings.TrimSpace(in.Type))
	if qtype == "" {
		qtype = domain.QuestionTypeText
		if in.Image != "" {
			qtype = domain.QuestionTypeImage
		}
	}

	var err error
	switch {
	case qtype != domain.QuestionTypeText && qtype != domain.QuestionTypeImage:
		err = domain.ErrInvalidQuestionType
	case qtype == domain.QuestionTypeImage && in.Image == "":
		err = domain.ErrImageRequired
	}
	if err != nil {
		s.removeImage(in.Image)
		return nil, err
	}

	question := &domain.Question{
		QuestionSetID:    in.SetID,
		QuestionText:     optional(strings.TrimSpace(in.Text)),
		QuestionImageURL: optional(in.Image),
		QuestionType:     qtype,
	}
	if err := s.quizRepo.CreateQuestion(ctx, question); err != nil {
		s.removeImage(in.Image)
		return nil, err
	}
	return question, nil
}

// ListQuestions implements domain.QuizService
func (s *QuizServiceImpl) ListQuestions(ctx context.Context, setID uint) ([]*domain.Question, error) {
	return s.quizRepo.ListQuestions(ctx, setID)
}

// AddOptions inserts a batch of options; either all are stored or none
func (s *QuizServiceImpl) AddOptions(ctx context.Context, questionID uint, options []domain.NewOption) ([]domain.QuestionOption, error) {
	if len(options) == 0 {
		return nil, domain.ErrOptionsRequired
	}

	cleaned := make([]domain.NewOption, 0, len(options))
	hasCorrect := false
	for _, opt := range options {
		text := strings.TrimSpace(opt.Text)
		if text == "" {
			return nil, domain.ErrOptionTextRequired
		}
		hasCorrect = hasCorrect || opt.IsCorrect
		cleaned = append(cleaned, domain.NewOption{Text: text, IsCorrect: opt.IsCorrect})
	}

	inserted, err := s.quizRepo.AddOptions(ctx, questionID, cleaned)
	if err != nil {
		return nil, err
	}
	// Not enforced: a question may legitimately be awaiting its correct option
	if !hasCorrect {
		log.Printf("EVENT: options_without_correct question_id=%d count=%d", questionID, len(inserted))
	}
	return inserted, nil
}

func (s *QuizServiceImpl) removeImage(name string) {
	if name == "" {
		return
	}
	if err := s.storage.Remove(domain.QuestionUploadDir, name); err != nil {
		log.Printf("EVENT: file_cleanup_failed dir=%s file=%s error=%q", domain.QuestionUploadDir, name, err)
	}
}
