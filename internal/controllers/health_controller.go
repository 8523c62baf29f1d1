package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"onlyone/internal/services"
)

type HealthController struct {
	answers   services.AnswerServiceInterface
	questions services.QuestionServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status          string  `json:"status"`
	Uptime          string  `json:"uptime"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
	Answers         int     `json:"answers"`
	PartnerAnswered int     `json:"partner_answered"`
	UsedQuestions   int     `json:"used_questions"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	partnerAnswered := 0
	for _, a := range hc.answers.All() {
		if a.HasPartnerAnswer() {
			partnerAnswered++
		}
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:          "ok",
		Uptime:          formatDuration(uptime),
		UptimeSeconds:   uptime.Seconds(),
		Answers:         hc.answers.Count(),
		PartnerAnswered: partnerAnswered,
		UsedQuestions:   hc.questions.UsedCount(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(answers services.AnswerServiceInterface, questions services.QuestionServiceInterface) *HealthController {
	return &HealthController{
		answers:   answers,
		questions: questions,
		startTime: time.Now(),
	}
}
