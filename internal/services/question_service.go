package services

import (
	"math/rand"
	"sync"
	"time"

	"onlyone/internal/models"
	"onlyone/internal/providers"
	"onlyone/internal/store"
)

const dayFormat = "2006-01-02"

type QuestionServiceInterface interface {
	GetToday(now time.Time) models.Question
	ForceNext(now time.Time) models.Question
	Reset()
	UsedCount() int
}

// QuestionService owns the daily rotation state in the shared store. Another
// process may rotate the question too, so every read goes back to disk first.
type QuestionService struct {
	store   *store.SharedStore
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	rng     *rand.Rand
	mu      sync.Mutex
}

func NewQuestionService(st *store.SharedStore, logger providers.Logger, metrics providers.MetricsProviderInterface, rng *rand.Rand) QuestionServiceInterface {
	return &QuestionService{
		store:   st,
		logger:  logger,
		metrics: metrics,
		rng:     rng,
	}
}

func (qs *QuestionService) GetToday(now time.Time) models.Question {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	qs.reload()
	today := now.Format(dayFormat)

	if qs.store.String(store.KeyQuestionDate) == today {
		id := qs.store.String(store.KeyTodayQuestionID)
		if q, ok := models.QuestionByID(id); ok {
			return q
		}
		qs.logger.Warnf(providers.TypeApp, "Selected question %q missing from catalog, picking a new one", id)
	}

	return qs.selectNew(today)
}

func (qs *QuestionService) ForceNext(now time.Time) models.Question {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	qs.reload()
	return qs.selectNew(now.Format(dayFormat))
}

func (qs *QuestionService) Reset() {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	qs.store.Remove(store.KeyTodayQuestionID, store.KeyQuestionDate, store.KeyUsedQuestionIDs)
	qs.metrics.SetUsedQuestions(0)
	qs.logger.Infof(providers.TypeApp, "Rotation state reset")
}

func (qs *QuestionService) UsedCount() int {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	return len(qs.usedIDs())
}

// usedIDs reads the persisted used-set, dropping ids that fell out of the
// catalog so the set stays a subset of it.
func (qs *QuestionService) usedIDs() []string {
	raw := qs.store.StringSlice(store.KeyUsedQuestionIDs)
	used := raw[:0:0]
	for _, id := range raw {
		if _, ok := models.QuestionByID(id); ok {
			used = append(used, id)
		}
	}
	return used
}

func (qs *QuestionService) selectNew(day string) models.Question {
	used := qs.usedIDs()
	usedSet := make(map[string]struct{}, len(used))
	for _, id := range used {
		usedSet[id] = struct{}{}
	}

	available := make([]models.Question, 0, len(models.Catalog))
	for _, q := range models.Catalog {
		if _, ok := usedSet[q.ID]; !ok {
			available = append(available, q)
		}
	}

	if len(available) == 0 {
		// Catalog exhausted: the used-set restarts from the new pick alone.
		available = models.Catalog
		used = nil
	}

	chosen := available[qs.rng.Intn(len(available))]
	used = append(used, chosen.ID)

	qs.store.SetMany(map[string]any{
		store.KeyTodayQuestionID: chosen.ID,
		store.KeyQuestionDate:    day,
		store.KeyUsedQuestionIDs: used,
	})
	qs.metrics.SetUsedQuestions(len(used))
	qs.logger.Infof(providers.TypeApp, "Selected question %s for %s (%d/%d used)", chosen.ID, day, len(used), len(models.Catalog))

	return chosen
}

func (qs *QuestionService) reload() {
	if err := qs.store.Reload(); err != nil {
		qs.logger.Warnf(providers.TypeApp, "Store reload failed: %s", err)
	}
}
