package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/HariStrange/drive-Vault/domain"
)

// QuizRepositoryImpl implements domain.QuizRepository using GORM
type QuizRepositoryImpl struct {
	db *gorm.DB
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(db *gorm.DB) domain.QuizRepository {
	return &QuizRepositoryImpl{db: db}
}

// CreateSet implements domain.QuizRepository
func (r *QuizRepositoryImpl) CreateSet(ctx context.Context, set *domain.QuestionSet) error {
	row := &DBQuestionSet{
		SetName:   set.SetName,
		Category:  set.Category,
		CreatedBy: set.CreatedBy,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*set = *dbToSet(row)
	return nil
}

// ListSets returns all sets, newest id first
func (r *QuizRepositoryImpl) ListSets(ctx context.Context) ([]*domain.QuestionSet, error) {
	var rows []DBQuestionSet
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	sets := make([]*domain.QuestionSet, 0, len(rows))
	for i := range rows {
		sets = append(sets, dbToSet(&rows[i]))
	}
	return sets, nil
}

// FindSet implements domain.QuizRepository
func (r *QuizRepositoryImpl) FindSet(ctx context.Context, id uint) (*domain.QuestionSet, error) {
	row, err := findSet(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return dbToSet(row), nil
}

func findSet(db *gorm.DB, id uint) (*DBQuestionSet, error) {
	var row DBQuestionSet
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSetNotFound
		}
		return nil, err
	}
	return &row, nil
}

// DeleteSet implements domain.QuizRepository. Dependents go first:
// assignments, options, questions, then the set.
func (r *QuizRepositoryImpl) DeleteSet(ctx context.Context, id uint) ([]string, error) {
	var images []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findSet(tx, id); err != nil {
			return err
		}

		if err := tx.Model(&DBQuestion{}).
			Where("question_set_id = ? AND question_image_url IS NOT NULL", id).
			Pluck("question_image_url", &images).Error; err != nil {
			return err
		}

		if err := tx.Where("question_set_id = ?", id).Delete(&DBAssignment{}).Error; err != nil {
			return err
		}
		questionIDs := tx.Model(&DBQuestion{}).Select("id").Where("question_set_id = ?", id)
		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&DBQuestionOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_set_id = ?", id).Delete(&DBQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&DBQuestionSet{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// CreateQuestion implements domain.QuizRepository
func (r *QuizRepositoryImpl) CreateQuestion(ctx context.Context, question *domain.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findSet(tx, question.QuestionSetID); err != nil {
			return err
		}

		row := &DBQuestion{
			QuestionSetID:    question.QuestionSetID,
			QuestionText:     question.QuestionText,
			QuestionImageURL: question.QuestionImageURL,
			QuestionType:     question.QuestionType,
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}

		err := tx.Model(&DBQuestionSet{}).
			Where("id = ?", question.QuestionSetID).
			UpdateColumn("total_questions", gorm.Expr("total_questions + ?", 1)).Error
		if err != nil {
			return err
		}

		*question = *dbToQuestion(row)
		return nil
	})
}

// FindQuestion implements domain.QuizRepository
func (r *QuizRepositoryImpl) FindQuestion(ctx context.Context, id uint) (*domain.Question, error) {
	var row DBQuestion
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	return dbToQuestion(&row), nil
}

// ListQuestions returns the questions of a set ordered by id
func (r *QuizRepositoryImpl) ListQuestions(ctx context.Context, setID uint) ([]*domain.Question, error) {
	var rows []DBQuestion
	if err := r.db.WithContext(ctx).Where("question_set_id = ?", setID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, dbToQuestion(&rows[i]))
	}
	return questions, nil
}

// AddOptions inserts the whole batch or nothing
func (r *QuizRepositoryImpl) AddOptions(ctx context.Context, questionID uint, options []domain.NewOption) ([]domain.QuestionOption, error) {
	rows := make([]DBQuestionOption, 0, len(options))
	for _, opt := range options {
		rows = append(rows, DBQuestionOption{
			QuestionID: questionID,
			OptionText: opt.Text,
			IsCorrect:  opt.IsCorrect,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&DBQuestion{}).Where("id = ?", questionID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrQuestionNotFound
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return dbToOptions(rows), nil
}

// SetIDsByCategory implements domain.QuizRepository
func (r *QuizRepositoryImpl) SetIDsByCategory(ctx context.Context, category string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&DBQuestionSet{}).Where("category = ?", category).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}

// CreateAssignment implements domain.QuizRepository
func (r *QuizRepositoryImpl) CreateAssignment(ctx context.Context, assignment *domain.Assignment) error {
	row := &DBAssignment{
		UserID:        assignment.UserID,
		QuestionSetID: assignment.QuestionSetID,
		AssignedAt:    assignment.AssignedAt,
	}
	if row.AssignedAt.IsZero() {
		row.AssignedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	assignment.ID = row.ID
	assignment.AssignedAt = row.AssignedAt
	return nil
}

// SetQuestions returns the question tree of a set, questions and options ordered by id
func (r *QuizRepositoryImpl) SetQuestions(ctx context.Context, setID uint) ([]domain.QuestionWithOptions, error) {
	db := r.db.WithContext(ctx)
	if _, err := findSet(db, setID); err != nil {
		return nil, err
	}

	var rows []DBQuestion
	err := db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("question_set_id = ?", setID).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.QuestionWithOptions, 0, len(rows))
	for i := range rows {
		out = append(out, domain.QuestionWithOptions{
			Question: *dbToQuestion(&rows[i]),
			Options:  dbToOptions(rows[i].Options),
		})
	}
	return out, nil
}

func dbToSet(row *DBQuestionSet) *domain.QuestionSet {
	return &domain.QuestionSet{
		ID:             row.ID,
		SetName:        row.SetName,
		Category:       row.Category,
		CreatedBy:      row.CreatedBy,
		TotalQuestions: row.TotalQuestions,
		CreatedAt:      row.CreatedAt,
	}
}

func dbToQuestion(row *DBQuestion) *domain.Question {
	return &domain.Question{
		ID:               row.ID,
		QuestionSetID:    row.QuestionSetID,
		QuestionText:     row.QuestionText,
		QuestionImageURL: row.QuestionImageURL,
		QuestionType:     row.QuestionType,
		CreatedAt:        row.CreatedAt,
	}
}

// dbToOptions never returns nil so option-less questions encode as []
func dbToOptions(rows []DBQuestionOption) []domain.QuestionOption {
	out := make([]domain.QuestionOption, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.QuestionOption{
			ID:         row.ID,
			QuestionID: row.QuestionID,
			OptionText: row.OptionText,
			IsCorrect:  row.IsCorrect,
		})
	}
	return out
}
