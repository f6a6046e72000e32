package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HariStrange/drive-Vault/domain"
	"github.com/HariStrange/drive-Vault/internal/mocks"
)

type quizDeps struct {
	quiz       *mocks.MockQuizService
	assignment *mocks.MockAssignmentService
	storage    *mocks.MockFileStorage
}

func newQuizDeps() *quizDeps {
	return &quizDeps{
		quiz:       mocks.NewMockQuizService(),
		assignment: mocks.NewMockAssignmentService(),
		storage:    mocks.NewMockFileStorage(),
	}
}

func (d *quizDeps) router() http.Handler {
	h := NewQuizHandlers(d.quiz, d.assignment, d.storage)
	r := newTestRouter(5, domain.RoleStudent)
	r.POST("/question-sets", h.CreateSet)
	r.GET("/question-sets", h.ListSets)
	r.DELETE("/question-sets/:id", h.DeleteSet)
	r.POST("/questions", h.AddQuestion)
	r.GET("/questions/:setId", h.ListQuestions)
	r.POST("/options", h.AddLegacyOptions)
	r.POST("/quizz/set", h.QuizzCreateSet)
	r.POST("/quizz/question", h.QuizzCreateQuestion)
	r.POST("/quizz/question/:id/options", h.QuizzAddOptions)
	r.POST("/quizz/assign-set", h.AssignSet)
	r.GET("/quizz/set/:id/questions", h.SetQuestions)
	r.POST("/quizz/set/:id/score", h.ScoreSet)
	return r
}

func TestQuizHandlers_CreateSetShapes(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		message string
		key     string
	}{
		{name: "legacy", path: "/question-sets", message: "Created", key: "data"},
		{name: "quizz", path: "/quizz/set", message: "Question set created successfully", key: "set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newQuizDeps()
			w := doJSON(t, d.router(), http.MethodPost, tt.path,
				map[string]string{"set_name": "Forklift A", "category": "driver"})

			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			body := decode(t, w)
			assert.Equal(t, tt.message, body["message"])
			set := body[tt.key].(map[string]interface{})
			assert.Equal(t, "Forklift A", set["set_name"])
			assert.Equal(t, float64(5), set["created_by"], "author comes from the token")
		})
	}
}

func TestQuizHandlers_CreateSetValidation(t *testing.T) {
	d := newQuizDeps()
	d.quiz.CreateSetFunc = func(ctx context.Context, name, category string, authorID uint) (*domain.QuestionSet, error) {
		return nil, domain.ErrSetNameRequired
	}

	w := doJSON(t, d.router(), http.MethodPost, "/quizz/set", map[string]string{"set_name": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.ErrSetNameRequired.Error(), decode(t, w)["error"])
}

func TestQuizHandlers_DeleteSet(t *testing.T) {
	d := newQuizDeps()
	d.quiz.DeleteSetFunc = func(ctx context.Context, id uint) error {
		if id == 2 {
			return nil
		}
		return domain.ErrSetNotFound
	}
	r := d.router()

	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodDelete, "/question-sets/2", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodDelete, "/question-sets/3", nil).Code)
}

func TestQuizHandlers_CreateQuestion(t *testing.T) {
	d := newQuizDeps()
	var got domain.CreateQuestionInput
	d.quiz.CreateQuestionFunc = func(ctx context.Context, in domain.CreateQuestionInput) (*domain.Question, error) {
		got = in
		return &domain.Question{ID: 11, QuestionSetID: in.SetID, QuestionType: domain.QuestionTypeImage}, nil
	}

	w := doMultipart(t, d.router(), http.MethodPost, "/quizz/question",
		map[string]string{"question_set_id": "3", "question_text": "Which sign?"},
		formFile{field: "question_image", name: "sign.png", content: []byte("img")})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Question created successfully", decode(t, w)["message"])
	assert.Equal(t, uint(3), got.SetID)
	assert.Equal(t, "Which sign?", got.Text)
	assert.Equal(t, "question_image-sign.png", got.Image)
	assert.Empty(t, got.Type)
}

func TestQuizHandlers_CreateQuestionErrors(t *testing.T) {
	d := newQuizDeps()
	d.quiz.CreateQuestionFunc = func(ctx context.Context, in domain.CreateQuestionInput) (*domain.Question, error) {
		return nil, domain.ErrSetNotFound
	}
	r := d.router()

	w := doMultipart(t, r, http.MethodPost, "/questions", map[string]string{"question_text": "no set"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "question_set_id is required", decode(t, w)["error"])

	w = doMultipart(t, r, http.MethodPost, "/questions", map[string]string{"question_set_id": "99", "question_text": "q"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuizHandlers_LegacyOptions(t *testing.T) {
	d := newQuizDeps()
	var got []domain.NewOption
	d.quiz.AddOptionsFunc = func(ctx context.Context, questionID uint, options []domain.NewOption) ([]domain.QuestionOption, error) {
		assert.Equal(t, uint(4), questionID)
		got = options
		return nil, nil
	}
	r := d.router()

	w := doJSON(t, r, http.MethodPost, "/options", `{"question_id":4,"options":[{"text":"Stop","isCorrect":true},{"text":"Go","isCorrect":false}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Options added", decode(t, w)["message"])
	assert.Equal(t, []domain.NewOption{{Text: "Stop", IsCorrect: true}, {Text: "Go"}}, got)

	w = doJSON(t, r, http.MethodPost, "/options", `{"question_id":4,"options":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuizHandlers_QuizzOptions(t *testing.T) {
	d := newQuizDeps()
	d.quiz.AddOptionsFunc = func(ctx context.Context, questionID uint, options []domain.NewOption) ([]domain.QuestionOption, error) {
		if len(options) == 0 {
			return nil, domain.ErrOptionsRequired
		}
		out := make([]domain.QuestionOption, len(options))
		for i, o := range options {
			out[i] = domain.QuestionOption{ID: uint(i + 1), QuestionID: questionID, OptionText: o.Text, IsCorrect: o.IsCorrect}
		}
		return out, nil
	}
	r := d.router()

	w := doJSON(t, r, http.MethodPost, "/quizz/question/6/options",
		`{"options":[{"option_text":"Red","is_correct":true},{"option_text":"Blue","is_correct":false}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Options added successfully", body["message"])
	assert.Len(t, body["options"], 2)

	w = doJSON(t, r, http.MethodPost, "/quizz/question/6/options", `{"options":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Options array required", decode(t, w)["error"])
}

func TestQuizHandlers_AssignSet(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{name: "assigned", body: `{"user_id":7,"category":"driver"}`, expectedStatus: http.StatusCreated},
		{name: "missing category", body: `{"user_id":7}`, expectedStatus: http.StatusBadRequest, expectedError: "user_id and category are required"},
		{name: "no sets", body: `{"user_id":7,"category":"pilot"}`, err: domain.ErrNoSetsForCategory, expectedStatus: http.StatusNotFound, expectedError: "No sets found for this category"},
		{name: "unknown user", body: `{"user_id":70,"category":"driver"}`, err: domain.ErrUserNotFound, expectedStatus: http.StatusNotFound, expectedError: "User not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newQuizDeps()
			if tt.err != nil {
				d.assignment.AssignRandomSetFunc = func(ctx context.Context, userID uint, category string) (*domain.Assignment, error) {
					return nil, tt.err
				}
			}

			w := doJSON(t, d.router(), http.MethodPost, "/quizz/assign-set", tt.body)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			body := decode(t, w)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
				return
			}
			assert.Equal(t, "Set assigned successfully", body["message"])
			assigned := body["assigned"].(map[string]interface{})
			assert.Equal(t, float64(7), assigned["user_id"])
		})
	}
}

func TestQuizHandlers_SetQuestions(t *testing.T) {
	d := newQuizDeps()
	d.assignment.GetSetQuestionsFunc = func(ctx context.Context, setID uint) ([]domain.QuestionWithOptions, error) {
		if setID != 1 {
			return nil, domain.ErrSetNotFound
		}
		return []domain.QuestionWithOptions{
			{Question: domain.Question{ID: 1, QuestionSetID: 1}, Options: []domain.QuestionOption{}},
		}, nil
	}
	r := d.router()

	w := doJSON(t, r, http.MethodGet, "/quizz/set/1/questions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["set_id"])
	questions := body["questions"].([]interface{})
	require.Len(t, questions, 1)
	assert.Equal(t, []interface{}{}, questions[0].(map[string]interface{})["options"], "option-less questions carry an empty list")

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/quizz/set/2/questions", nil).Code)
}

func TestQuizHandlers_ScoreSet(t *testing.T) {
	d := newQuizDeps()
	var got []domain.Answer
	d.assignment.ScoreSetFunc = func(ctx context.Context, setID uint, answers []domain.Answer) (*domain.ScoreResult, error) {
		got = answers
		return &domain.ScoreResult{SetID: setID, TotalQuestions: 2, Answered: 2, Correct: 1}, nil
	}
	r := d.router()

	w := doJSON(t, r, http.MethodPost, "/quizz/set/3/score",
		`{"answers":[{"question_id":1,"option_id":2},{"question_id":2,"option_id":5}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode(t, w)["result"].(map[string]interface{})
	assert.Equal(t, float64(1), result["correct"])
	assert.Equal(t, []domain.Answer{{QuestionID: 1, OptionID: 2}, {QuestionID: 2, OptionID: 5}}, got)

	w = doJSON(t, r, http.MethodPost, "/quizz/set/3/score", `{"answers":[{"question_id":1}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuizHandlers_ListEndpoints(t *testing.T) {
	d := newQuizDeps()
	text := "What is PPE?"
	d.quiz.ListSetsFunc = func(ctx context.Context) ([]*domain.QuestionSet, error) {
		return []*domain.QuestionSet{{ID: 1}, {ID: 2}}, nil
	}
	d.quiz.ListQuestionsFunc = func(ctx context.Context, setID uint) ([]*domain.Question, error) {
		return []*domain.Question{{ID: 1, QuestionSetID: setID, QuestionText: &text}}, nil
	}
	r := d.router()

	w := doJSON(t, r, http.MethodGet, "/question-sets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 2)

	w = doJSON(t, r, http.MethodGet, "/questions/4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)
}
