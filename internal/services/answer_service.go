package services

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"

	"onlyone/internal/models"
	"onlyone/internal/providers"
	"onlyone/internal/store"
)

var (
	ErrAnswerNotFound  = errors.New("no answer for question")
	ErrUnknownQuestion = errors.New("question not in catalog")
)

// ChangeNotifier signals other processes (and same-process observers) that
// the shared store changed. Satisfied by the synchronizer.
type ChangeNotifier interface {
	NotifyChanged()
}

type AnswerServiceInterface interface {
	Upsert(a *models.Answer) error
	MergePartner(questionID, partnerText string, partnerImage []byte) (*models.Answer, error)
	Get(questionID string) (*models.Answer, bool)
	Has(questionID string) bool
	Delete(id string)
	All() []*models.Answer
	Count() int
	GroupByMonth() map[string][]*models.Answer
	GroupByCategory() map[models.Category][]*models.Answer
	Reload()
}

// AnswerService keeps the answer collection in memory, ordered most recent
// first, and mirrors it to the shared store blob on every mutation.
type AnswerService struct {
	store    *store.SharedStore
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	notifier ChangeNotifier
	mu       sync.RWMutex
	answers  []*models.Answer
}

func NewAnswerService(st *store.SharedStore, logger providers.Logger, metrics providers.MetricsProviderInterface, notifier ChangeNotifier) AnswerServiceInterface {
	as := &AnswerService{
		store:    st,
		logger:   logger,
		metrics:  metrics,
		notifier: notifier,
	}
	as.mu.Lock()
	as.load()
	as.mu.Unlock()
	return as
}

// Upsert saves an answer, replacing any existing record for the same
// question. The replaced record keeps its original id so delete handles stay
// valid across edits; every other field takes the new save's value.
func (as *AnswerService) Upsert(a *models.Answer) error {
	a.AnswerText = strings.TrimSpace(a.AnswerText)
	if v := validate.Struct(a); !v.Validate() {
		return v.Errors
	}
	if _, ok := models.QuestionByID(a.QuestionID); !ok {
		return ErrUnknownQuestion
	}

	as.mu.Lock()
	if idx := as.indexByQuestion(a.QuestionID); idx >= 0 {
		a.ID = as.answers[idx].ID
		as.answers[idx] = a
	} else {
		as.answers = append([]*models.Answer{a}, as.answers...)
	}
	as.sortLocked()
	as.persistLocked()
	as.mu.Unlock()

	as.notifier.NotifyChanged()
	return nil
}

func (as *AnswerService) MergePartner(questionID, partnerText string, partnerImage []byte) (*models.Answer, error) {
	as.mu.Lock()
	idx := as.indexByQuestion(questionID)
	if idx < 0 {
		as.mu.Unlock()
		as.logger.Warnf(providers.TypeApp, "Partner answer for unknown question %s ignored", questionID)
		return nil, ErrAnswerNotFound
	}

	merged := as.answers[idx].WithPartnerAnswer(partnerText, partnerImage, time.Now())
	as.answers[idx] = merged
	as.persistLocked()
	as.mu.Unlock()

	as.notifier.NotifyChanged()
	return merged, nil
}

func (as *AnswerService) Get(questionID string) (*models.Answer, bool) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	if idx := as.indexByQuestion(questionID); idx >= 0 {
		return as.answers[idx], true
	}
	return nil, false
}

func (as *AnswerService) Has(questionID string) bool {
	_, ok := as.Get(questionID)
	return ok
}

// Delete removes an answer by its id. Deleting an unknown id is a no-op, not
// an error; the collection is persisted either way.
func (as *AnswerService) Delete(id string) {
	as.mu.Lock()
	kept := as.answers[:0]
	for _, a := range as.answers {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	as.answers = kept
	as.persistLocked()
	as.mu.Unlock()

	as.notifier.NotifyChanged()
}

func (as *AnswerService) All() []*models.Answer {
	as.mu.RLock()
	defer as.mu.RUnlock()
	out := make([]*models.Answer, len(as.answers))
	copy(out, as.answers)
	return out
}

func (as *AnswerService) Count() int {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return len(as.answers)
}

func (as *AnswerService) GroupByMonth() map[string][]*models.Answer {
	as.mu.RLock()
	defer as.mu.RUnlock()
	groups := make(map[string][]*models.Answer)
	for _, a := range as.answers {
		key := a.MonthKey()
		groups[key] = append(groups[key], a)
	}
	return groups
}

func (as *AnswerService) GroupByCategory() map[models.Category][]*models.Answer {
	as.mu.RLock()
	defer as.mu.RUnlock()
	groups := make(map[models.Category][]*models.Answer)
	for _, a := range as.answers {
		groups[a.QuestionCategory] = append(groups[a.QuestionCategory], a)
	}
	return groups
}

// Reload discards the in-memory collection and re-reads the shared store.
// This is the subscriber side of cross-process sync.
func (as *AnswerService) Reload() {
	if err := as.store.Reload(); err != nil {
		as.logger.Warnf(providers.TypeApp, "Store reload failed: %s", err)
	}

	as.mu.Lock()
	as.load()
	as.mu.Unlock()
}

func (as *AnswerService) indexByQuestion(questionID string) int {
	for i, a := range as.answers {
		if a.QuestionID == questionID {
			return i
		}
	}
	return -1
}

func (as *AnswerService) sortLocked() {
	sort.SliceStable(as.answers, func(i, j int) bool {
		return as.answers[i].CreatedDate.After(as.answers[j].CreatedDate)
	})
}

func (as *AnswerService) persistLocked() {
	data, err := json.Marshal(as.answers)
	if err != nil {
		as.logger.Errorf(providers.TypeApp, "Error encoding answers: %s", err)
		return
	}
	as.store.SetBytes(store.KeySavedAnswers, data)
	as.metrics.SetAnswersTotal(len(as.answers))
}

func (as *AnswerService) load() {
	as.answers = nil
	data := as.store.Bytes(store.KeySavedAnswers)
	if len(data) == 0 {
		as.metrics.SetAnswersTotal(0)
		return
	}

	var answers []*models.Answer
	if err := json.Unmarshal(data, &answers); err != nil {
		// A malformed blob reads as an empty collection, never an error.
		as.logger.Warnf(providers.TypeApp, "Malformed answer collection, treating as empty: %s", err)
		answers = nil
	}
	as.answers = answers
	as.sortLocked()
	as.metrics.SetAnswersTotal(len(as.answers))
}
