package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"onlyone/internal/models"
	"onlyone/internal/providers"
	"onlyone/internal/services"
)

// Photos travel inline as base64 JSON, so the body cap is generous.
const maxRequestBodySize = 10 << 20 // 10 MB

const (
	cacheKeyList       = "answers:list"
	cacheKeyByMonth    = "answers:by-month"
	cacheKeyByCategory = "answers:by-category"
)

type AnswerController struct {
	logger  providers.Logger
	answers services.AnswerServiceInterface
	cache   providers.CacheProviderInterface
}

func NewAnswerController(logger providers.Logger, answers services.AnswerServiceInterface, cache providers.CacheProviderInterface) *AnswerController {
	return &AnswerController{
		logger:  logger,
		answers: answers,
		cache:   cache,
	}
}

// invalidateViews drops the cached list views so reads on this process see a
// mutation immediately instead of after the cache TTL.
func (ac *AnswerController) invalidateViews() {
	ac.cache.Del(cacheKeyList)
	ac.cache.Del(cacheKeyByMonth)
	ac.cache.Del(cacheKeyByCategory)
}

func (ac *AnswerController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

type saveAnswerRequest struct {
	QuestionID string `json:"question_id"`
	AnswerText string `json:"answer_text"`
	ImageData  []byte `json:"image_data,omitempty"`
}

func (ac *AnswerController) Save(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload saveAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	question, ok := models.QuestionByID(payload.QuestionID)
	if !ok {
		http.Error(w, "Unknown question", http.StatusBadRequest)
		return
	}

	answer := models.NewAnswer(question, payload.AnswerText, payload.ImageData)
	if err := ac.answers.Upsert(answer); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.invalidateViews()

	gson, err := json.Marshal(answer)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(gson)
}

type partnerAnswerRequest struct {
	QuestionID  string `json:"question_id"`
	PartnerText string `json:"partner_text"`
	PartnerImag []byte `json:"partner_image,omitempty"`
}

func (ac *AnswerController) MergePartner(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload partnerAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	merged, err := ac.answers.MergePartner(payload.QuestionID, payload.PartnerText, payload.PartnerImag)
	if err != nil {
		if errors.Is(err, services.ErrAnswerNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.invalidateViews()

	gson, err := json.Marshal(merged)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *AnswerController) GetByQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.URL.Query().Get("q")
	answer, ok := ac.answers.Get(questionID)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	gson, err := json.Marshal(answer)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *AnswerController) List(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, cacheKeyList, func() (any, error) {
		return ac.answers.All(), nil
	})
}

func (ac *AnswerController) ByMonth(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, cacheKeyByMonth, func() (any, error) {
		return ac.answers.GroupByMonth(), nil
	})
}

func (ac *AnswerController) ByCategory(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, cacheKeyByCategory, func() (any, error) {
		return ac.answers.GroupByCategory(), nil
	})
}

func (ac *AnswerController) Delete(w http.ResponseWriter, r *http.Request) {
	ac.answers.Delete(r.URL.Query().Get("id"))
	ac.invalidateViews()
	w.WriteHeader(http.StatusNoContent)
}
