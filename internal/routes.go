package internal

import (
	"net/http"

	"onlyone/internal/controllers"
	"onlyone/internal/providers"
	"onlyone/internal/structures"
)

func InitRoutes(questionController *controllers.QuestionController, answerController *controllers.AnswerController, syncController *controllers.SyncController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/question/today", http.HandlerFunc(questionController.GetToday))
	routers.Post("/question/next", http.HandlerFunc(questionController.Next))
	routers.Post("/question/reset", http.HandlerFunc(questionController.Reset))

	routers.Get("/answers", http.HandlerFunc(answerController.List))
	routers.Get("/answers/get", http.HandlerFunc(answerController.GetByQuestion))
	routers.Get("/answers/by-month", http.HandlerFunc(answerController.ByMonth))
	routers.Get("/answers/by-category", http.HandlerFunc(answerController.ByCategory))
	routers.Post("/answers", http.HandlerFunc(answerController.Save))
	routers.Post("/answers/partner", http.HandlerFunc(answerController.MergePartner))
	routers.Delete("/answers", http.HandlerFunc(answerController.Delete))

	routers.Post("/sync", http.HandlerFunc(syncController.ForceSync))
	return routers
}
