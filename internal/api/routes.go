package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the handlers served under /api.
type Handlers struct {
	Review   *ReviewHandler
	Wordlist *WordlistHandler
	Quiz     *QuizHandler
	Sentence *SentenceHandler
}

// Mount registers every /api route on r. submitLimit wraps the submission
// routes and may be nil.
func (h Handlers) Mount(r chi.Router, submitLimit func(http.Handler) http.Handler) {
	if submitLimit == nil {
		submitLimit = func(next http.Handler) http.Handler { return next }
	}

	r.Route("/reviews", func(r chi.Router) {
		r.Get("/due", h.Review.GetDueWords)
		r.With(submitLimit).Post("/words/{id}", h.Review.SubmitWordReview)
	})

	r.Route("/quizzes", func(r chi.Router) {
		r.With(submitLimit).Post("/submit", h.Review.SubmitQuiz)
		r.Post("/{category}", h.Quiz.SaveQuizzes)
	})

	r.Post("/sentences", h.Sentence.CreateSentences)

	r.Route("/wordlists", func(r chi.Router) {
		r.Post("/", h.Wordlist.CreateWordlist)
		r.Get("/", h.Wordlist.ListWordlists)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Wordlist.GetWordlist)
			r.Put("/", h.Wordlist.UpdateWordlist)
			r.Delete("/", h.Wordlist.DeleteWordlist)
			r.Delete("/words/{wordID}", h.Wordlist.DeleteWord)
			r.Get("/quizzes/{category}", h.Quiz.GetQuizzes)
			r.Get("/sentences", h.Sentence.ListSentences)
			r.Put("/sentences/{sentenceID}", h.Sentence.SaveAnswer)
		})
	})
}
