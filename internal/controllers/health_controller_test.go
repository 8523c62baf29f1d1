package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthController_Health(t *testing.T) {
	_, answers, _ := newAnswerController(t)
	_, questions := newQuestionController(t)
	seedAnswer(t, answers, "1", "counted")
	seedAnswer(t, answers, "2", "waiting on partner")
	_, err := answers.MergePartner("1", "both sides in", nil)
	require.NoError(t, err)
	questions.GetToday(time.Now())

	hc := NewHealthController(answers, questions)
	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Answers)
	assert.Equal(t, 1, resp.PartnerAnswered)
	assert.Equal(t, 1, resp.UsedQuestions)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
	assert.NotEmpty(t, resp.Uptime)
}

func TestHealthController_MethodNotAllowed(t *testing.T) {
	_, answers, _ := newAnswerController(t)
	_, questions := newQuestionController(t)

	hc := NewHealthController(answers, questions)
	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m5s", formatDuration(5*time.Second))
	assert.Equal(t, "1h1m1s", formatDuration(time.Hour+time.Minute+time.Second))
	assert.Equal(t, "25h0m0s", formatDuration(25*time.Hour))
}
