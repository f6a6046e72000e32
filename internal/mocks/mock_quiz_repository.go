package mocks

import (
	"context"

	"github.com/HariStrange/drive-Vault/domain"
)

// MockQuizRepository implements domain.QuizRepository interface for testing
type MockQuizRepository struct {
	CreateSetFunc        func(ctx context.Context, set *domain.QuestionSet) error
	ListSetsFunc         func(ctx context.Context) ([]*domain.QuestionSet, error)
	FindSetFunc          func(ctx context.Context, id uint) (*domain.QuestionSet, error)
	DeleteSetFunc        func(ctx context.Context, id uint) ([]string, error)
	CreateQuestionFunc   func(ctx context.Context, question *domain.Question) error
	FindQuestionFunc     func(ctx context.Context, id uint) (*domain.Question, error)
	ListQuestionsFunc    func(ctx context.Context, setID uint) ([]*domain.Question, error)
	AddOptionsFunc       func(ctx context.Context, questionID uint, options []domain.NewOption) ([]domain.QuestionOption, error)
	SetIDsByCategoryFunc func(ctx context.Context, category string) ([]uint, error)
	CreateAssignmentFunc func(ctx context.Context, assignment *domain.Assignment) error
	SetQuestionsFunc     func(ctx context.Context, setID uint) ([]domain.QuestionWithOptions, error)
}

// NewMockQuizRepository creates a new MockQuizRepository with default behaviors
func NewMockQuizRepository() *MockQuizRepository {
	return &MockQuizRepository{}
}

// CreateSet inserts a question set
func (m *MockQuizRepository) CreateSet(ctx context.Context, set *domain.QuestionSet) error {
	if m.CreateSetFunc != nil {
		return m.CreateSetFunc(ctx, set)
	}
	set.ID = 1
	return nil
}

// ListSets returns all sets
func (m *MockQuizRepository) ListSets(ctx context.Context) ([]*domain.QuestionSet, error) {
	if m.ListSetsFunc != nil {
		return m.ListSetsFunc(ctx)
	}
	return []*domain.QuestionSet{}, nil
}

// FindSet returns one set
func (m *MockQuizRepository) FindSet(ctx context.Context, id uint) (*domain.QuestionSet, error) {
	if m.FindSetFunc != nil {
		return m.FindSetFunc(ctx, id)
	}
	return nil, domain.ErrSetNotFound
}

// DeleteSet removes a set and its dependents
func (m *MockQuizRepository) DeleteSet(ctx context.Context, id uint) ([]string, error) {
	if m.DeleteSetFunc != nil {
		return m.DeleteSetFunc(ctx, id)
	}
	return nil, domain.ErrSetNotFound
}

// CreateQuestion inserts a question
func (m *MockQuizRepository) CreateQuestion(ctx context.Context, question *domain.Question) error {
	if m.CreateQuestionFunc != nil {
		return m.CreateQuestionFunc(ctx, question)
	}
	question.ID = 1
	return nil
}

// FindQuestion returns one question
func (m *MockQuizRepository) FindQuestion(ctx context.Context, id uint) (*domain.Question, error) {
	if m.FindQuestionFunc != nil {
		return m.FindQuestionFunc(ctx, id)
	}
	return nil, domain.ErrQuestionNotFound
}

// ListQuestions returns a set's questions
func (m *MockQuizRepository) ListQuestions(ctx context.Context, setID uint) ([]*domain.Question, error) {
	if m.ListQuestionsFunc != nil {
		return m.ListQuestionsFunc(ctx, setID)
	}
	return []*domain.Question{}, nil
}

// AddOptions inserts a batch of options
func (m *MockQuizRepository) AddOptions(ctx context.Context, questionID uint, options []domain.NewOption) ([]domain.QuestionOption, error) {
	if m.AddOptionsFunc != nil {
		return m.AddOptionsFunc(ctx, questionID, options)
	}
	out := make([]domain.QuestionOption, len(options))
	for i, o := range options {
		out[i] = domain.QuestionOption{ID: uint(i + 1), QuestionID: questionID, OptionText: o.Text, IsCorrect: o.IsCorrect}
	}
	return out, nil
}

// SetIDsByCategory returns the ids of sets in a category
func (m *MockQuizRepository) SetIDsByCategory(ctx context.Context, category string) ([]uint, error) {
	if m.SetIDsByCategoryFunc != nil {
		return m.SetIDsByCategoryFunc(ctx, category)
	}
	return nil, nil
}

// CreateAssignment inserts an assignment
func (m *MockQuizRepository) CreateAssignment(ctx context.Context, assignment *domain.Assignment) error {
	if m.CreateAssignmentFunc != nil {
		return m.CreateAssignmentFunc(ctx, assignment)
	}
	assignment.ID = 1
	return nil
}

// SetQuestions returns the set's questions with options
func (m *MockQuizRepository) SetQuestions(ctx context.Context, setID uint) ([]domain.QuestionWithOptions, error) {
	if m.SetQuestionsFunc != nil {
		return m.SetQuestionsFunc(ctx, setID)
	}
	return []domain.QuestionWithOptions{}, nil
}

// Compile-time interface compliance verification
var _ domain.QuizRepository = (*MockQuizRepository)(nil)
