package model

import "time"

// Archive is the top-level JSON structure for a full data export.
type Archive struct {
	ExportedAt    time.Time      `json:"exported_at"`
	ExamSeries    []ExamSeries   `json:"exam_series"`
	PracticeExams []PracticeExam `json:"practice_exams"`
	LearningPaths []LearningPath `json:"learning_paths"`
}
