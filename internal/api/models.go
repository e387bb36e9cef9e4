package api

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/service"
	"github.com/phrazzld/lexis-api/internal/service/review"
)

// WordRequest is one word in a CreateWordlistRequest.
type WordRequest struct {
	Word              string `json:"word"               validate:"required,max=100"`
	Phonetic          string `json:"phonetic"           validate:"max=100"`
	PartOfSpeech      string `json:"part_of_speech"     validate:"max=50"`
	EnglishMeaning    string `json:"english_meaning"    validate:"max=500"`
	VietnameseMeaning string `json:"vietnamese_meaning" validate:"max=500"`
	ExampleSentence   string `json:"example_sentence"   validate:"max=1000"`
}

// CreateWordlistRequest defines the payload for creating a wordlist.
type CreateWordlistRequest struct {
	Name        string        `json:"name"        validate:"max=100"`
	Description string        `json:"description" validate:"max=500"`
	Words       []WordRequest `json:"words"       validate:"required,min=1,dive"`
}

func (r CreateWordlistRequest) toInput() service.CreateWordlistInput {
	in := service.CreateWordlistInput{
		Name:        r.Name,
		Description: r.Description,
		Words:       make([]service.WordInput, len(r.Words)),
	}
	for i, w := range r.Words {
		in.Words[i] = service.WordInput(w)
	}
	return in
}

// UpdateWordlistRequest defines the payload for renaming a wordlist.
type UpdateWordlistRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// SubmitReviewRequest defines the payload for reviewing a single word.
type SubmitReviewRequest struct {
	IsCorrect bool `json:"is_correct"`
	Skip      bool `json:"skip"`
}

// AnswerRequest is one answered word in a SubmitQuizRequest.
type AnswerRequest struct {
	WordID    uuid.UUID `json:"word_id"    validate:"required"`
	IsCorrect bool      `json:"is_correct"`
}

// SubmitQuizRequest defines the payload for submitting a completed quiz.
type SubmitQuizRequest struct {
	WordlistID uuid.UUID       `json:"wordlist_id" validate:"required"`
	Category   string          `json:"category"    validate:"required"`
	Score      *int            `json:"score"       validate:"required,min=0,max=100"`
	Answers    []AnswerRequest `json:"answers"     validate:"dive"`
}

// QuizRequest is one quiz in a SaveQuizzesRequest.
type QuizRequest struct {
	WordID        uuid.UUID `json:"word_id"        validate:"required"`
	Question      string    `json:"question"       validate:"required,max=1000"`
	Options       []string  `json:"options"        validate:"required,min=2,max=10,dive,required"`
	CorrectAnswer string    `json:"correct_answer" validate:"required"`
}

// SaveQuizzesRequest defines the payload for storing quizzes of one category.
type SaveQuizzesRequest struct {
	Quizzes []QuizRequest `json:"quizzes" validate:"required,min=1,dive"`
}

// CreateSentencesRequest lists the words to open sentences for.
type CreateSentencesRequest struct {
	WordIDs []uuid.UUID `json:"word_ids" validate:"required,min=1,max=500"`
}

// SaveSentenceRequest is the learner's sentence and the feedback it got.
type SaveSentenceRequest struct {
	SentenceText string `json:"sentence_text" validate:"required,max=2000"`
	Feedback     string `json:"feedback"      validate:"required,max=4000"`
}

// WordStateResponse is the review state of a word as returned to clients.
type WordStateResponse struct {
	WordID         uuid.UUID `json:"word_id"`
	WordlistID     uuid.UUID `json:"wordlist_id"`
	CorrectStreak  int       `json:"correct_streak"`
	FluencyLevel   string    `json:"fluency_level"`
	LastReviewDate *string   `json:"last_review_date"`
	NextReviewDate string    `json:"next_review_date"`
}

// WordResponse is a word with its review state.
type WordResponse struct {
	ID                uuid.UUID         `json:"id"`
	Word              string            `json:"word"`
	Phonetic          string            `json:"phonetic,omitempty"`
	PartOfSpeech      string            `json:"part_of_speech,omitempty"`
	EnglishMeaning    string            `json:"english_meaning,omitempty"`
	VietnameseMeaning string            `json:"vietnamese_meaning,omitempty"`
	ExampleSentence   string            `json:"example_sentence,omitempty"`
	State             WordStateResponse `json:"state"`
}

// WordlistResponse is a wordlist with its words and progress.
type WordlistResponse struct {
	ID          uuid.UUID                       `json:"id"`
	Name        string                          `json:"name"`
	Description string                          `json:"description"`
	Stage       int                             `json:"stage"`
	Scores      map[string]domain.CategoryScore `json:"scores"`
	Words       []WordResponse                  `json:"words"`
	CreatedAt   time.Time                       `json:"created_at"`
}

// DueWordsResponse lists due words.
type DueWordsResponse struct {
	Words []WordStateResponse `json:"words"`
	Count int                 `json:"count"`
}

// QuizResultResponse summarizes a quiz submission.
type QuizResultResponse struct {
	ProgressAdvanced bool                            `json:"progress_advanced"`
	Stage            int                             `json:"stage"`
	Scores           map[string]domain.CategoryScore `json:"scores"`
	ReviewedWords    []WordStateResponse             `json:"reviewed_words"`
	SkippedWords     []uuid.UUID                     `json:"skipped_words"`
}

// QuizResponse is a stored quiz as served to clients.
type QuizResponse struct {
	ID            uuid.UUID `json:"id"`
	WordID        uuid.UUID `json:"word_id"`
	Category      string    `json:"category"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
}

// SentenceResponse is a word sentence as served to clients.
type SentenceResponse struct {
	ID           uuid.UUID `json:"id"`
	WordID       uuid.UUID `json:"word_id"`
	Word         string    `json:"word,omitempty"`
	Meaning      string    `json:"meaning,omitempty"`
	SentenceText string    `json:"sentence_text"`
	Feedback     string    `json:"feedback"`
}

func formatDate(d civil.Date) string {
	return d.String()
}

func wordStateToResponse(s domain.WordState) WordStateResponse {
	resp := WordStateResponse{
		WordID:         s.WordID,
		WordlistID:     s.WordlistID,
		CorrectStreak:  s.CorrectStreak,
		FluencyLevel:   s.Fluency().String(),
		NextReviewDate: formatDate(s.NextReviewDate),
	}
	if s.HasBeenReviewed() {
		last := formatDate(s.LastReviewDate)
		resp.LastReviewDate = &last
	}
	return resp
}

func wordStatesToResponse(states []domain.WordState) []WordStateResponse {
	out := make([]WordStateResponse, 0, len(states))
	for _, s := range states {
		out = append(out, wordStateToResponse(s))
	}
	return out
}

func scoresToResponse(scores map[domain.QuizCategory]domain.CategoryScore) map[string]domain.CategoryScore {
	out := make(map[string]domain.CategoryScore, len(scores))
	for c, s := range scores {
		out[string(c)] = s
	}
	return out
}

func wordlistToResponse(wl *domain.Wordlist) WordlistResponse {
	resp := WordlistResponse{
		ID:          wl.ID,
		Name:        wl.Name,
		Description: wl.Description,
		Stage:       wl.Progress.Stage,
		Scores:      scoresToResponse(wl.Progress.Scores),
		Words:       make([]WordResponse, 0, len(wl.Words)),
		CreatedAt:   wl.CreatedAt,
	}
	for _, w := range wl.Words {
		resp.Words = append(resp.Words, WordResponse{
			ID:                w.ID,
			Word:              w.Text,
			Phonetic:          w.Phonetic,
			PartOfSpeech:      w.PartOfSpeech,
			EnglishMeaning:    w.EnglishMeaning,
			VietnameseMeaning: w.VietnameseMeaning,
			ExampleSentence:   w.ExampleSentence,
			State:             wordStateToResponse(w.State),
		})
	}
	return resp
}

func quizResultToResponse(res *review.QuizResult) QuizResultResponse {
	skipped := res.SkippedWords
	if skipped == nil {
		skipped = []uuid.UUID{}
	}
	return QuizResultResponse{
		ProgressAdvanced: res.ProgressAdvanced,
		Stage:            res.NewStage,
		Scores:           scoresToResponse(res.Progress.Scores),
		ReviewedWords:    wordStatesToResponse(res.ReviewedWords),
		SkippedWords:     skipped,
	}
}

func quizzesToResponse(quizzes []domain.Quiz) []QuizResponse {
	out := make([]QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, QuizResponse{
			ID:            q.ID,
			WordID:        q.WordID,
			Category:      string(q.Category),
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return out
}

func sentenceToResponse(ws *domain.WordSentence) SentenceResponse {
	return SentenceResponse{
		ID:           ws.ID,
		WordID:       ws.WordID,
		Word:         ws.Word,
		Meaning:      ws.Meaning,
		SentenceText: ws.SentenceText,
		Feedback:     ws.Feedback,
	}
}

func sentencesToResponse(sentences []*domain.WordSentence) []SentenceResponse {
	out := make([]SentenceResponse, 0, len(sentences))
	for _, ws := range sentences {
		out = append(out, sentenceToResponse(ws))
	}
	return out
}
