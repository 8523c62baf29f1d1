package controllers

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"onlyone/internal/models"
	"onlyone/internal/providers"
	"onlyone/internal/services"
)

type QuestionController struct {
	logger    providers.Logger
	questions services.QuestionServiceInterface
}

func NewQuestionController(logger providers.Logger, questions services.QuestionServiceInterface) *QuestionController {
	return &QuestionController{
		logger:    logger,
		questions: questions,
	}
}

type questionResponse struct {
	Question models.Question      `json:"question"`
	Style    models.CategoryStyle `json:"style"`
}

func writeQuestion(w http.ResponseWriter, q models.Question) {
	gson, err := json.Marshal(questionResponse{Question: q, Style: q.Category.Style()})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (qc *QuestionController) GetToday(w http.ResponseWriter, r *http.Request) {
	writeQuestion(w, qc.questions.GetToday(time.Now()))
}

func (qc *QuestionController) Next(w http.ResponseWriter, r *http.Request) {
	writeQuestion(w, qc.questions.ForceNext(time.Now()))
}

func (qc *QuestionController) Reset(w http.ResponseWriter, r *http.Request) {
	qc.questions.Reset()
	w.WriteHeader(http.StatusNoContent)
}
