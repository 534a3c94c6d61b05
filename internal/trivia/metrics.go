package trivia

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quizQuestionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "quiz_questions_served_total",
		Help:      "Quiz questions handed out by POST /quizzes.",
	})
	quizExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "quiz_exhausted_total",
		Help:      "Quiz requests whose pool had no unseen question left.",
	})
	categoryCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "category_cache_lookups_total",
		Help:      "Category cache lookups by result (hit, miss, error).",
	}, []string{"result"})
)
