package mocks

import (
	"context"

	"github.com/HariStrange/drive-Vault/domain"
)

// MockUserService implements domain.UserService interface for testing
type MockUserService struct {
	GetProfileFunc func(ctx context.Context, userID uint) (*domain.User, error)
	ListUsersFunc  func(ctx context.Context, role string) ([]*domain.User, error)
	StatsFunc      func(ctx context.Context) (*domain.UserStats, error)
}

// NewMockUserService creates a new MockUserService with default behaviors
func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

// GetProfile returns a user
func (m *MockUserService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return &domain.User{ID: userID, Email: "user@example.com", Role: domain.RoleDriver}, nil
}

// ListUsers returns users
func (m *MockUserService) ListUsers(ctx context.Context, role string) ([]*domain.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, role)
	}
	return []*domain.User{}, nil
}

// Stats returns account counts
func (m *MockUserService) Stats(ctx context.Context) (*domain.UserStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &domain.UserStats{}, nil
}

// MockPassportService implements domain.PassportService interface for testing
type MockPassportService struct {
	CreateFunc  func(ctx context.Context, userID uint, fields domain.PassportFields, files domain.PassportFiles) (*domain.Passport, error)
	GetMineFunc func(ctx context.Context, userID uint) (*domain.Passport, error)
	GetAllFunc  func(ctx context.Context) ([]*domain.PassportWithOwner, error)
	UpdateFunc  func(ctx context.Context, userID uint, patch *domain.PassportPatch) (*domain.Passport, error)
	DeleteFunc  func(ctx context.Context, id uint) error
}

// NewMockPassportService creates a new MockPassportService with default behaviors
func NewMockPassportService() *MockPassportService {
	return &MockPassportService{}
}

// Create stores a record
func (m *MockPassportService) Create(ctx context.Context, userID uint, fields domain.PassportFields, files domain.PassportFiles) (*domain.Passport, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, fields, files)
	}
	return &domain.Passport{ID: 1, UserID: userID, PassportFields: fields}, nil
}

// GetMine returns the caller's record
func (m *MockPassportService) GetMine(ctx context.Context, userID uint) (*domain.Passport, error) {
	if m.GetMineFunc != nil {
		return m.GetMineFunc(ctx, userID)
	}
	return nil, domain.ErrPassportNotFound
}

// GetAll returns every record
func (m *MockPassportService) GetAll(ctx context.Context) ([]*domain.PassportWithOwner, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	return []*domain.PassportWithOwner{}, nil
}

// Update patches the caller's record
func (m *MockPassportService) Update(ctx context.Context, userID uint, patch *domain.PassportPatch) (*domain.Passport, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, patch)
	}
	return &domain.Passport{ID: 1, UserID: userID}, nil
}

// Delete removes a record
func (m *MockPassportService) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockQuizService implements domain.QuizService interface for testing
type MockQuizService struct {
	CreateSetFunc      func(ctx context.Context, name, category string, authorID uint) (*domain.QuestionSet, error)
	ListSetsFunc       func(ctx context.Context) ([]*domain.QuestionSet, error)
	DeleteSetFunc      func(ctx context.Context, id uint) error
	CreateQuestionFunc func(ctx context.Context, in domain.CreateQuestionInput) (*domain.Question, error)
	ListQuestionsFunc  func(ctx context.Context, setID uint) ([]*domain.Question, error)
	AddOptionsFunc     func(ctx context.Context, questionID uint, options []domain.NewOption) ([]domain.QuestionOption, error)
}

// NewMockQuizService creates a new MockQuizService with default behaviors
func NewMockQuizService() *MockQuizService {
	return &MockQuizService{}
}

// CreateSet creates a set
func (m *MockQuizService) CreateSet(ctx context.Context, name, category string, authorID uint) (*domain.QuestionSet, error) {
	if m.CreateSetFunc != nil {
		return m.CreateSetFunc(ctx, name, category, authorID)
	}
	return &domain.QuestionSet{ID: 1, SetName: name, Category: category, CreatedBy: authorID}, nil
}

// ListSets lists sets
func (m *MockQuizService) ListSets(ctx context.Context) ([]*domain.QuestionSet, error) {
	if m.ListSetsFunc != nil {
		return m.ListSetsFunc(ctx)
	}
	return []*domain.QuestionSet{}, nil
}

// DeleteSet deletes a set
func (m *MockQuizService) DeleteSet(ctx context.Context, id uint) error {
	if m.DeleteSetFunc != nil {
		return m.DeleteSetFunc(ctx, id)
	}
	return nil
}

// CreateQuestion creates a question
func (m *MockQuizService) CreateQuestion(ctx context.Context, in domain.CreateQuestionInput) (*domain.Question, error) {
	if m.CreateQuestionFunc != nil {
		return m.CreateQuestionFunc(ctx, in)
	}
	return &domain.Question{ID: 1, QuestionSetID: in.SetID, QuestionType: domain.QuestionTypeText}, nil
}

// ListQuestions lists a set's questions
func (m *MockQuizService) ListQuestions(ctx context.Context, setID uint) ([]*domain.Question, error) {
	if m.ListQuestionsFunc != nil {
		return m.ListQuestionsFunc(ctx, setID)
	}
	return []*domain.Question{}, nil
}

// AddOptions adds options to a question
func (m *MockQuizService) AddOptions(ctx context.Context, questionID uint, options []domain.NewOption) ([]domain.QuestionOption, error) {
	if m.AddOptionsFunc != nil {
		return m.AddOptionsFunc(ctx, questionID, options)
	}
	return []domain.QuestionOption{}, nil
}

// MockAssignmentService implements domain.AssignmentService interface for testing
type MockAssignmentService struct {
	AssignRandomSetFunc func(ctx context.Context, userID uint, category string) (*domain.Assignment, error)
	GetSetQuestionsFunc func(ctx context.Context, setID uint) ([]domain.QuestionWithOptions, error)
	ScoreSetFunc        func(ctx context.Context, setID uint, answers []domain.Answer) (*domain.ScoreResult, error)
}

// NewMockAssignmentService creates a new MockAssignmentService with default behaviors
func NewMockAssignmentService() *MockAssignmentService {
	return &MockAssignmentService{}
}

// AssignRandomSet assigns a set
func (m *MockAssignmentService) AssignRandomSet(ctx context.Context, userID uint, category string) (*domain.Assignment, error) {
	if m.AssignRandomSetFunc != nil {
		return m.AssignRandomSetFunc(ctx, userID, category)
	}
	return &domain.Assignment{ID: 1, UserID: userID, QuestionSetID: 1}, nil
}

// GetSetQuestions returns the question tree
func (m *MockAssignmentService) GetSetQuestions(ctx context.Context, setID uint) ([]domain.QuestionWithOptions, error) {
	if m.GetSetQuestionsFunc != nil {
		return m.GetSetQuestionsFunc(ctx, setID)
	}
	return []domain.QuestionWithOptions{}, nil
}

// ScoreSet grades answers
func (m *MockAssignmentService) ScoreSet(ctx context.Context, setID uint, answers []domain.Answer) (*domain.ScoreResult, error) {
	if m.ScoreSetFunc != nil {
		return m.ScoreSetFunc(ctx, setID, answers)
	}
	return &domain.ScoreResult{SetID: setID}, nil
}

// Compile-time interface compliance verification
var (
	_ domain.UserService       = (*MockUserService)(nil)
	_ domain.PassportService   = (*MockPassportService)(nil)
	_ domain.QuizService       = (*MockQuizService)(nil)
	_ domain.AssignmentService = (*MockAssignmentService)(nil)
)
