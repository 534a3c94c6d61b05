package trivia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// DefaultPageSize is the number of questions per page when Options leave it unset.
const DefaultPageSize = 10

// AllCategories selects the whole question bank as the quiz pool.
const AllCategories = 0

// Category is a read-only question grouping.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Question is the client-facing question payload.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// NewQuestion holds validated fields for an insert.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// FlexibleInt decodes from a JSON number or a numeric string. Browser clients
// commonly send select values and object keys as strings.
type FlexibleInt int

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		*f = FlexibleInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleInt(n)
	return nil
}

// CreateQuestionRequest is the body of POST /questions. Every field is required.
type CreateQuestionRequest struct {
	Question   *string      `json:"question"`
	Answer     *string      `json:"answer"`
	Category   *FlexibleInt `json:"category"`
	Difficulty *FlexibleInt `json:"difficulty"`
}

// Validate reports the first missing field.
func (r CreateQuestionRequest) Validate() (NewQuestion, error) {
	switch {
	case r.Question == nil:
		return NewQuestion{}, fmt.Errorf("question is required")
	case r.Answer == nil:
		return NewQuestion{}, fmt.Errorf("answer is required")
	case r.Category == nil:
		return NewQuestion{}, fmt.Errorf("category is required")
	case r.Difficulty == nil:
		return NewQuestion{}, fmt.Errorf("difficulty is required")
	}
	return NewQuestion{
		Question:   *r.Question,
		Answer:     *r.Answer,
		Category:   int(*r.Category),
		Difficulty: int(*r.Difficulty),
	}, nil
}

// SearchRequest is the body of POST /questions/search. A missing term matches everything.
type SearchRequest struct {
	SearchTerm string `json:"search_term"`
}

// QuizCategory identifies the pool for a quiz round; ID 0 means all categories.
type QuizCategory struct {
	ID   *FlexibleInt `json:"id"`
	Type string       `json:"type"`
}

// QuizRequest is the body of POST /quizzes. Both fields and the category id are
// required.
type QuizRequest struct {
	PreviousQuestions *[]FlexibleInt `json:"previous_questions"`
	QuizCategory      *QuizCategory  `json:"quiz_category"`
}

// Validate checks presence of both fields and of quiz_category.id.
func (r QuizRequest) Validate() error {
	if r.PreviousQuestions == nil {
		return fmt.Errorf("previous_questions is required")
	}
	if r.QuizCategory == nil {
		return fmt.Errorf("quiz_category is required")
	}
	if r.QuizCategory.ID == nil {
		return fmt.Errorf("quiz_category.id is required")
	}
	return nil
}

// Previous returns the served question ids. Call after Validate.
func (r QuizRequest) Previous() []int {
	ids := make([]int, 0, len(*r.PreviousQuestions))
	for _, id := range *r.PreviousQuestions {
		ids = append(ids, int(id))
	}
	return ids
}

// CategoryID returns the requested pool. Call after Validate.
func (r QuizRequest) CategoryID() int {
	return int(*r.QuizCategory.ID)
}

// Listing is a page of questions plus the totals each endpoint reports.
type Listing struct {
	Questions       []Question
	Total           int
	Categories      map[int]string
	CurrentCategory string
}
