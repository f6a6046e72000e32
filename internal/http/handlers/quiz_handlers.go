package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HariStrange/drive-Vault/domain"
	"github.com/HariStrange/drive-Vault/internal/http/middleware"
)

const questionImageField = "question_image"

// QuizHandlers serves question sets, questions, options and assignments
type QuizHandlers struct {
	quizSvc       domain.QuizService
	assignmentSvc domain.AssignmentService
	storage       domain.FileStorage
}

// NewQuizHandlers creates new quiz handlers
func NewQuizHandlers(quizSvc domain.QuizService, assignmentSvc domain.AssignmentService, storage domain.FileStorage) *QuizHandlers {
	return &QuizHandlers{quizSvc: quizSvc, assignmentSvc: assignmentSvc, storage: storage}
}

type CreateSetRequest struct {
	SetName  string `json:"set_name"`
	Category string `json:"category"`
}

// Options on the legacy /options route use camelCase
type LegacyOptionRequest struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type LegacyOptionsRequest struct {
	QuestionID uint                  `json:"question_id"`
	Options    []LegacyOptionRequest `json:"options"`
}

type OptionRequest struct {
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct"`
}

type OptionsRequest struct {
	Options []OptionRequest `json:"options"`
}

type AssignSetRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	Category string `json:"category" binding:"required"`
}

type AnswerRequest struct {
	QuestionID uint `json:"question_id" binding:"required"`
	OptionID   uint `json:"option_id" binding:"required"`
}

type ScoreRequest struct {
	Answers []AnswerRequest `json:"answers" binding:"dive"`
}

func (h *QuizHandlers) createSet(c *gin.Context) (*domain.QuestionSet, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return nil, false
	}

	var req CreateSetRequest
	if !bindJSON(c, &req, domain.ErrSetNameRequired.Error()) {
		return nil, false
	}

	set, err := h.quizSvc.CreateSet(c.Request.Context(), req.SetName, req.Category, userID)
	if err != nil {
		respondError(c, err, "Failed to create question set")
		return nil, false
	}
	return set, true
}

func (h *QuizHandlers) createQuestion(c *gin.Context) (*domain.Question, bool) {
	setID, err := strconv.ParseUint(c.PostForm("question_set_id"), 10, 64)
	if err != nil || setID == 0 {
		badRequest(c, "question_set_id is required")
		return nil, false
	}

	image, err := saveUpload(c, h.storage, domain.QuestionUploadDir, questionImageField)
	if err != nil {
		respondError(c, err, "Failed to add question")
		return nil, false
	}

	question, err := h.quizSvc.CreateQuestion(c.Request.Context(), domain.CreateQuestionInput{
		SetID: uint(setID),
		Text:  c.PostForm("question_text"),
		Image: image,
		Type:  c.PostForm("question_type"),
	})
	if err != nil {
		respondError(c, err, "Failed to add question")
		return nil, false
	}
	return question, true
}

// CreateSet handles POST /question-sets
func (h *QuizHandlers) CreateSet(c *gin.Context) {
	if set, ok := h.createSet(c); ok {
		c.JSON(http.StatusCreated, gin.H{"message": "Created", "data": set})
	}
}

// ListSets handles GET /question-sets
func (h *QuizHandlers) ListSets(c *gin.Context) {
	sets, err := h.quizSvc.ListSets(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch question sets")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sets})
}

// DeleteSet handles DELETE /question-sets/:id
func (h *QuizHandlers) DeleteSet(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.quizSvc.DeleteSet(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete question set")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// AddQuestion handles POST /questions
func (h *QuizHandlers) AddQuestion(c *gin.Context) {
	if question, ok := h.createQuestion(c); ok {
		c.JSON(http.StatusCreated, gin.H{"message": "Question Added", "data": question})
	}
}

// ListQuestions handles GET /questions/:setId
func (h *QuizHandlers) ListQuestions(c *gin.Context) {
	setID, ok := parseID(c, "setId")
	if !ok {
		return
	}
	questions, err := h.quizSvc.ListQuestions(c.Request.Context(), setID)
	if err != nil {
		respondError(c, err, "Failed to fetch questions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": questions})
}

// AddLegacyOptions handles POST /options
func (h *QuizHandlers) AddLegacyOptions(c *gin.Context) {
	var req LegacyOptionsRequest
	if !bindJSON(c, &req, "question_id and options are required") {
		return
	}
	if req.QuestionID == 0 || len(req.Options) == 0 {
		badRequest(c, "question_id and options are required")
		return
	}

	opts := make([]domain.NewOption, len(req.Options))
	for i, o := range req.Options {
		opts[i] = domain.NewOption{Text: o.Text, IsCorrect: o.IsCorrect}
	}
	if _, err := h.quizSvc.AddOptions(c.Request.Context(), req.QuestionID, opts); err != nil {
		respondError(c, err, "Failed to add options")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Options added"})
}

// QuizzCreateSet handles POST /quizz/set
func (h *QuizHandlers) QuizzCreateSet(c *gin.Context) {
	if set, ok := h.createSet(c); ok {
		c.JSON(http.StatusCreated, gin.H{"message": "Question set created successfully", "set": set})
	}
}

// QuizzCreateQuestion handles POST /quizz/question
func (h *QuizHandlers) QuizzCreateQuestion(c *gin.Context) {
	if question, ok := h.createQuestion(c); ok {
		c.JSON(http.StatusCreated, gin.H{"message": "Question created successfully", "question": question})
	}
}

// QuizzAddOptions handles POST /quizz/question/:id/options
func (h *QuizHandlers) QuizzAddOptions(c *gin.Context) {
	questionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req OptionsRequest
	if !bindJSON(c, &req, publicMessage(domain.ErrOptionsRequired)) {
		return
	}

	opts := make([]domain.NewOption, len(req.Options))
	for i, o := range req.Options {
		opts[i] = domain.NewOption{Text: o.OptionText, IsCorrect: o.IsCorrect}
	}
	created, err := h.quizSvc.AddOptions(c.Request.Context(), questionID, opts)
	if err != nil {
		respondError(c, err, "Failed to add options")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Options added successfully", "options": created})
}

// AssignSet handles POST /quizz/assign-set
func (h *QuizHandlers) AssignSet(c *gin.Context) {
	var req AssignSetRequest
	if !bindJSON(c, &req, "user_id and category are required") {
		return
	}

	assigned, err := h.assignmentSvc.AssignRandomSet(c.Request.Context(), req.UserID, req.Category)
	if err != nil {
		respondError(c, err, "Failed to assign set")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Set assigned successfully", "assigned": assigned})
}

// SetQuestions handles GET /quizz/set/:id/questions
func (h *QuizHandlers) SetQuestions(c *gin.Context) {
	setID, ok := parseID(c, "id")
	if !ok {
		return
	}
	questions, err := h.assignmentSvc.GetSetQuestions(c.Request.Context(), setID)
	if err != nil {
		respondError(c, err, "Failed to fetch set questions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"set_id": setID, "questions": questions})
}

// ScoreSet handles POST /quizz/set/:id/score
func (h *QuizHandlers) ScoreSet(c *gin.Context) {
	setID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ScoreRequest
	if !bindJSON(c, &req, "answers must carry question_id and option_id") {
		return
	}

	answers := make([]domain.Answer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = domain.Answer{QuestionID: a.QuestionID, OptionID: a.OptionID}
	}
	result, err := h.assignmentSvc.ScoreSet(c.Request.Context(), setID, answers)
	if err != nil {
		respondError(c, err, "Failed to score set")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}
