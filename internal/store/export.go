package store

import (
	"fmt"
	"time"

	"github.com/studyforge/studyforge/internal/model"
)

// ExportAll builds a full archive of everything in the store.
func (s *Store) ExportAll() (*model.Archive, error) {
	series, err := s.ListExamSeries()
	if err != nil {
		return nil, fmt.Errorf("list exam series: %w", err)
	}
	practice, err := s.ListPracticeExams()
	if err != nil {
		return nil, fmt.Errorf("list practice exams: %w", err)
	}
	paths, err := s.ListLearningPaths()
	if err != nil {
		return nil, fmt.Errorf("list learning paths: %w", err)
	}
	return &model.Archive{
		ExportedAt:    time.Now(),
		ExamSeries:    series,
		PracticeExams: practice,
		LearningPaths: paths,
	}, nil
}
