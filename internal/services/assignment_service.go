package services

import (
	"context"
	"math/rand/v2"

	"github.com/HariStrange/drive-Vault/domain"
)

// AssignmentServiceImpl implements domain.AssignmentService
type AssignmentServiceImpl struct {
	quizRepo domain.QuizRepository
	userRepo domain.UserRepository
	audit    domain.AuditLogger
	pick     func(n int) int
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(quizRepo domain.QuizRepository, userRepo domain.UserRepository, audit domain.AuditLogger) domain.AssignmentService {
	return &AssignmentServiceImpl{
		quizRepo: quizRepo,
		userRepo: userRepo,
		audit:    audit,
		pick:     rand.IntN,
	}
}

// AssignRandomSet binds a uniformly chosen set of category to the user.
// Repeated calls may hand out the same set again.
func (s *AssignmentServiceImpl) AssignRandomSet(ctx context.Context, userID uint, category string) (*domain.Assignment, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	ids, err := s.quizRepo.SetIDsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, domain.ErrNoSetsForCategory
	}

	assignment := &domain.Assignment{
		UserID:        userID,
		QuestionSetID: ids[s.pick(len(ids))],
	}
	if err := s.quizRepo.CreateAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.SetAssignedEvent, userID).
			WithMetadata("category", category).
			WithMetadata("set_id", assignment.QuestionSetID))
	}
	return assignment, nil
}

// GetSetQuestions implements domain.AssignmentService
func (s *AssignmentServiceImpl) GetSetQuestions(ctx context.Context, setID uint) ([]domain.QuestionWithOptions, error) {
	return s.quizRepo.SetQuestions(ctx, setID)
}

// ScoreSet grades answers against the set. Only the first answer per question
// counts and answers to questions outside the set are ignored.
func (s *AssignmentServiceImpl) ScoreSet(ctx context.Context, setID uint, answers []domain.Answer) (*domain.ScoreResult, error) {
	tree, err := s.quizRepo.SetQuestions(ctx, setID)
	if err != nil {
		return nil, err
	}

	correctByQuestion := make(map[uint]map[uint]bool, len(tree))
	for _, q := range tree {
		opts := make(map[uint]bool, len(q.Options))
		for _, o := range q.Options {
			opts[o.ID] = o.IsCorrect
		}
		correctByQuestion[q.ID] = opts
	}

	result := &domain.ScoreResult{SetID: setID, TotalQuestions: len(tree)}
	seen := make(map[uint]bool, len(answers))
	for _, a := range answers {
		opts, ok := correctByQuestion[a.QuestionID]
		if !ok || seen[a.QuestionID] {
			continue
		}
		seen[a.QuestionID] = true
		result.Answered++
		if opts[a.OptionID] {
			result.Correct++
		}
	}
	return result, nil
}
