package model

import "time"

// QuestionType represents the kind of answer a question expects.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionShortAnswer    QuestionType = "short-answer"
	QuestionEssay          QuestionType = "essay"
	QuestionFillBlank      QuestionType = "fill-blank"
	QuestionMatching       QuestionType = "matching"
)

// QuestionDifficulty represents per-question difficulty.
type QuestionDifficulty string

const (
	QuestionEasy     QuestionDifficulty = "Easy"
	QuestionMedium   QuestionDifficulty = "Medium"
	QuestionHard     QuestionDifficulty = "Hard"
	QuestionVeryHard QuestionDifficulty = "Very Hard"
	QuestionExpert   QuestionDifficulty = "Expert"
)

// PathDifficulty represents the overall difficulty of a learning path.
type PathDifficulty string

const (
	PathBeginner     PathDifficulty = "Beginner"
	PathIntermediate PathDifficulty = "Intermediate"
	PathAdvanced     PathDifficulty = "Advanced"
	PathMixed        PathDifficulty = "Mixed"
)

// Question is a single generated exam question. Questions are immutable
// once generated. CorrectAnswer holds an option index for multiple-choice
// questions and a literal value for every other type.
type Question struct {
	ID            string             `json:"id"`
	Question      string             `json:"question"`
	Type          QuestionType       `json:"type"`
	Options       []string           `json:"options,omitempty"`
	CorrectAnswer any                `json:"correctAnswer"`
	Points        int                `json:"points"`
	Explanation   string             `json:"explanation"`
	Difficulty    QuestionDifficulty `json:"difficulty"`
}

// Exam is one exam in a progressive series. Score, CompletedAt and
// TimeTaken are absent until the exam is submitted; a retake overwrites
// them, so at most one outcome is stored per exam.
type Exam struct {
	ID              string     `json:"id"`
	SeriesID        string     `json:"seriesId"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Instructions    string     `json:"instructions"`
	Questions       []Question `json:"questions"`
	TotalPoints     int        `json:"totalPoints"`
	EstimatedTime   int        `json:"estimatedTime"`
	DifficultyLevel int        `json:"difficultyLevel"`
	DifficultyLabel string     `json:"difficultyLabel"`
	Score           *float64   `json:"score,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	TimeTaken       *int       `json:"timeTaken,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// ExamSeries is an ordered set of exams over one topic at ascending
// difficulty levels 1..TotalExams, no gaps, no duplicates. Topic and
// description are immutable after creation; deleting a series cascades to
// its exams.
type ExamSeries struct {
	ID          string    `json:"id"`
	Topic       string    `json:"topic"`
	Description string    `json:"description"`
	Exams       []Exam    `json:"exams"`
	TotalExams  int       `json:"totalExams"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PracticeExamSettings records the generation parameters a practice exam
// was created with.
type PracticeExamSettings struct {
	NumQuestions  int      `json:"numQuestions"`
	QuestionTypes []string `json:"questionTypes,omitempty"`
	TimeLimit     int      `json:"timeLimit"`
}

// PracticeExam is a standalone exam outside any series. The same
// single-outcome rule as Exam applies to its score fields.
type PracticeExam struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Instructions  string               `json:"instructions"`
	Questions     []Question           `json:"questions"`
	TotalPoints   int                  `json:"totalPoints"`
	EstimatedTime int                  `json:"estimatedTime"`
	Difficulty    string               `json:"difficulty"`
	Settings      PracticeExamSettings `json:"settings"`
	HasAnswerKey  bool                 `json:"hasAnswerKey"`
	Score         *float64             `json:"score,omitempty"`
	CompletedAt   *time.Time           `json:"completedAt,omitempty"`
	TimeTaken     *int                 `json:"timeTaken,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// LearningStep is one step of a learning path. Index is 1-based and always
// equals the step's position in the stored sequence; the store renumbers on
// save. Completed is per-session state and does not survive a reload.
type LearningStep struct {
	Index             int      `json:"step"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	EstimatedTime     string   `json:"estimatedTime"`
	Difficulty        string   `json:"difficulty"`
	Prerequisites     []string `json:"prerequisites,omitempty"`
	KeyTopics         []string `json:"keyTopics"`
	PracticeExercises []string `json:"practiceExercises"`
	Completed         bool     `json:"completed"`
}

// LearningPath is a persisted, ordered study plan for a topic.
type LearningPath struct {
	ID                 string         `json:"id"`
	Topic              string         `json:"topic"`
	TotalEstimatedTime string         `json:"totalEstimatedTime"`
	Difficulty         PathDifficulty `json:"difficulty"`
	Description        string         `json:"description"`
	Steps              []LearningStep `json:"steps"`
	CreatedAt          time.Time      `json:"createdAt"`
}

// StepExample is a worked example inside generated learning material.
type StepExample struct {
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

// LearningMaterial is generated on demand for a single step and never
// persisted; reopening a step regenerates it.
type LearningMaterial struct {
	StepTitle string        `json:"stepTitle"`
	Content   string        `json:"content"`
	Examples  []StepExample `json:"examples"`
	KeyPoints []string      `json:"keyPoints"`
}

// QuizQuestion is an ephemeral per-step check question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// SolutionStep is one step of a worked problem solution.
type SolutionStep struct {
	Index       int    `json:"step"`
	Explanation string `json:"explanation"`
	Work        string `json:"work,omitempty"`
}

// Problem is a solved problem extracted from user input. An input with no
// recognizable problems yields zero Problem records, which is a success.
type Problem struct {
	ID          string         `json:"id"`
	Statement   string         `json:"statement"`
	Subject     string         `json:"subject,omitempty"`
	Steps       []SolutionStep `json:"steps"`
	FinalAnswer string         `json:"finalAnswer"`
}

// ExamResult is the outcome of one exam attempt.
type ExamResult struct {
	Score       float64   `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
	TimeTaken   int       `json:"timeTaken"`
}
