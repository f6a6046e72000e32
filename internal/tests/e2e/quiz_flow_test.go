package e2e

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HariStrange/drive-Vault/domain"
)

func TestQuizFlow_AuthorAssignAndScore(t *testing.T) {
	s := NewTestServer(t)
	candidateID, email := s.RegisterVerified(t, domain.RoleDriver)
	token := s.Login(t, email, testPassword)

	set := s.JSON(t, http.MethodPost, "/quizz/set", token, map[string]string{"set_name": "Road signs", "category": "driver"})
	require.Equal(t, http.StatusCreated, set.Status, set.Body)
	setID := uint(set.Object("set")["id"].(float64))

	q := s.Multipart(t, http.MethodPost, "/quizz/question", token, map[string]string{
		"question_set_id": fmt.Sprint(setID),
		"question_text":   "What does a red octagon mean?",
	})
	require.Equal(t, http.StatusCreated, q.Status, q.Body)
	question := q.Object("question")
	assert.Equal(t, domain.QuestionTypeText, question["question_type"])
	questionID := uint(question["id"].(float64))

	opts := s.JSON(t, http.MethodPost, fmt.Sprintf("/quizz/question/%d/options", questionID), token, map[string]interface{}{
		"options": []map[string]interface{}{
			{"option_text": "Stop", "is_correct": true},
			{"option_text": "Yield", "is_correct": false},
		},
	})
	require.Equal(t, http.StatusCreated, opts.Status, opts.Body)
	created := opts.Body["options"].([]interface{})
	require.Len(t, created, 2)
	stopID := created[0].(map[string]interface{})["id"]
	yieldID := created[1].(map[string]interface{})["id"]

	// An image question with no options still shows up with an empty list
	img := s.Multipart(t, http.MethodPost, "/quizz/question", token,
		map[string]string{"question_set_id": fmt.Sprint(setID)},
		Upload{Field: "question_image", Name: "sign.png", Content: pngBytes(t)})
	require.Equal(t, http.StatusCreated, img.Status, img.Body)
	assert.Equal(t, domain.QuestionTypeImage, img.Object("question")["question_type"])

	sets := s.JSON(t, http.MethodGet, "/question-sets", token, nil)
	require.Equal(t, http.StatusOK, sets.Status)
	first := sets.Body["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(2), first["total_questions"])

	assigned := s.JSON(t, http.MethodPost, "/quizz/assign-set", token, map[string]interface{}{"user_id": candidateID, "category": "driver"})
	require.Equal(t, http.StatusCreated, assigned.Status, assigned.Body)
	assert.Equal(t, float64(setID), assigned.Object("assigned")["question_set_id"])

	none := s.JSON(t, http.MethodPost, "/quizz/assign-set", token, map[string]interface{}{"user_id": candidateID, "category": "pilot"})
	assert.Equal(t, http.StatusNotFound, none.Status)
	assert.Equal(t, "No sets found for this category", none.String("error"))

	tree := s.JSON(t, http.MethodGet, fmt.Sprintf("/quizz/set/%d/questions", setID), token, nil)
	require.Equal(t, http.StatusOK, tree.Status)
	questions := tree.Body["questions"].([]interface{})
	require.Len(t, questions, 2)
	assert.Len(t, questions[0].(map[string]interface{})["options"], 2)
	assert.Equal(t, []interface{}{}, questions[1].(map[string]interface{})["options"])

	score := s.JSON(t, http.MethodPost, fmt.Sprintf("/quizz/set/%d/score", setID), token, map[string]interface{}{
		"answers": []map[string]interface{}{
			{"question_id": questionID, "option_id": stopID},
			{"question_id": questionID, "option_id": yieldID},
		},
	})
	require.Equal(t, http.StatusOK, score.Status, score.Body)
	result := score.Object("result")
	assert.Equal(t, float64(2), result["total_questions"])
	assert.Equal(t, float64(1), result["answered"])
	assert.Equal(t, float64(1), result["correct"])

	missing := s.JSON(t, http.MethodGet, "/quizz/set/9999/questions", token, nil)
	assert.Equal(t, http.StatusNotFound, missing.Status)
}

func TestQuizFlow_LegacyRoutesAndDelete(t *testing.T) {
	s := NewTestServer(t)
	_, email := s.RegisterVerified(t, domain.RoleWelder)
	token := s.Login(t, email, testPassword)

	set := s.JSON(t, http.MethodPost, "/question-sets", token, map[string]string{"set_name": "Welding safety", "category": "welder"})
	require.Equal(t, http.StatusCreated, set.Status, set.Body)
	setID := uint(set.Object("data")["id"].(float64))

	q := s.Multipart(t, http.MethodPost, "/questions", token,
		map[string]string{"question_set_id": fmt.Sprint(setID), "question_text": "Which gas shields MIG welds?"},
		Upload{Field: "question_image", Name: "torch.png", Content: pngBytes(t)})
	require.Equal(t, http.StatusCreated, q.Status, q.Body)
	data := q.Object("data")
	questionID := data["id"]
	image := data["question_image_url"].(string)

	status, _ := s.Get(t, "/uploads/questions/"+image)
	assert.Equal(t, http.StatusOK, status, "question images are served statically")

	opts := s.JSON(t, http.MethodPost, "/options", token, map[string]interface{}{
		"question_id": questionID,
		"options":     []map[string]interface{}{{"text": "Argon", "isCorrect": true}},
	})
	require.Equal(t, http.StatusCreated, opts.Status, opts.Body)

	list := s.JSON(t, http.MethodGet, fmt.Sprintf("/questions/%d", setID), token, nil)
	require.Equal(t, http.StatusOK, list.Status)
	assert.Len(t, list.Body["data"], 1)

	del := s.JSON(t, http.MethodDelete, fmt.Sprintf("/question-sets/%d", setID), token, nil)
	require.Equal(t, http.StatusOK, del.Status, del.Body)

	status, _ = s.Get(t, "/uploads/questions/"+image)
	assert.Equal(t, http.StatusNotFound, status, "deleting a set removes its images")

	again := s.JSON(t, http.MethodDelete, fmt.Sprintf("/question-sets/%d", setID), token, nil)
	assert.Equal(t, http.StatusNotFound, again.Status)
}
