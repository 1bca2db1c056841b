// Package store persists generated study records in a local SQLite
// database. A Store is explicitly constructed and closed; tests open
// isolated in-memory instances.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/studyforge/studyforge/internal/model"

	_ "modernc.org/sqlite"
)

// ErrNotFound reports an update targeting an id with no stored record.
// Lookups signal the same condition with a (nil, nil) return instead.
var ErrNotFound = sql.ErrNoRows

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exam_series (
		id TEXT PRIMARY KEY,
		topic TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		total_exams INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exams (
		id TEXT PRIMARY KEY,
		series_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		instructions TEXT NOT NULL DEFAULT '',
		questions TEXT NOT NULL,
		total_points INTEGER NOT NULL DEFAULT 0,
		estimated_time INTEGER NOT NULL DEFAULT 0,
		difficulty_level INTEGER NOT NULL,
		difficulty_label TEXT NOT NULL,
		score REAL,
		completed_at DATETIME,
		time_taken INTEGER,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (series_id) REFERENCES exam_series(id)
	);
	CREATE INDEX IF NOT EXISTS idx_exams_series ON exams(series_id);

	CREATE TABLE IF NOT EXISTS practice_exams (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		instructions TEXT NOT NULL DEFAULT '',
		questions TEXT NOT NULL,
		total_points INTEGER NOT NULL DEFAULT 0,
		estimated_time INTEGER NOT NULL DEFAULT 0,
		difficulty TEXT NOT NULL DEFAULT '',
		settings TEXT NOT NULL DEFAULT '{}',
		has_answer_key INTEGER NOT NULL DEFAULT 0,
		score REAL,
		completed_at DATETIME,
		time_taken INTEGER,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS learning_paths (
		id TEXT PRIMARY KEY,
		topic TEXT NOT NULL,
		total_estimated_time TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		steps TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveExamSeries writes the series row and one row per owned exam in a
// single transaction: readers never observe a series without its exams.
// Saving an existing id replaces the series and its exams wholesale.
func (s *Store) SaveExamSeries(series *model.ExamSeries) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO exam_series (id, topic, description, total_exams, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET topic = excluded.topic,
			description = excluded.description,
			total_exams = excluded.total_exams,
			created_at = excluded.created_at`,
		series.ID, series.Topic, series.Description, series.TotalExams, series.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save series %s: %w", series.ID, err)
	}

	if _, err := tx.Exec(`DELETE FROM exams WHERE series_id = ?`, series.ID); err != nil {
		return fmt.Errorf("clear exams for series %s: %w", series.ID, err)
	}

	for _, exam := range series.Exams {
		questions, err := json.Marshal(exam.Questions)
		if err != nil {
			return fmt.Errorf("encode questions for exam %s: %w", exam.ID, err)
		}
		_, err = tx.Exec(
			`INSERT INTO exams (id, series_id, title, description, instructions, questions,
				total_points, estimated_time, difficulty_level, difficulty_label,
				score, completed_at, time_taken, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			exam.ID, series.ID, exam.Title, exam.Description, exam.Instructions, string(questions),
			exam.TotalPoints, exam.EstimatedTime, exam.DifficultyLevel, exam.DifficultyLabel,
			exam.Score, exam.CompletedAt, exam.TimeTaken, exam.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("save exam %s: %w", exam.ID, err)
		}
	}

	return tx.Commit()
}

// GetExamSeries returns a series with its exams re-embedded, sorted by
// ascending difficulty level. Returns (nil, nil) when the id is unknown.
func (s *Store) GetExamSeries(id string) (*model.ExamSeries, error) {
	var series model.ExamSeries
	err := s.db.QueryRow(
		`SELECT id, topic, description, total_exams, created_at FROM exam_series WHERE id = ?`, id,
	).Scan(&series.ID, &series.Topic, &series.Description, &series.TotalExams, &series.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	series.Exams, err = s.examsForSeries(id)
	if err != nil {
		return nil, err
	}
	return &series, nil
}

// ListExamSeries returns all series ordered by creation time descending,
// each with its exams re-embedded.
func (s *Store) ListExamSeries() ([]model.ExamSeries, error) {
	rows, err := s.db.Query(
		`SELECT id, topic, description, total_exams, created_at FROM exam_series ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.ExamSeries
	for rows.Next() {
		var series model.ExamSeries
		if err := rows.Scan(&series.ID, &series.Topic, &series.Description, &series.TotalExams, &series.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, series)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range list {
		list[i].Exams, err = s.examsForSeries(list[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}

// DeleteExamSeries removes a series and cascades to its exams in one
// transaction, leaving no orphaned exam rows.
func (s *Store) DeleteExamSeries(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM exams WHERE series_id = ?`, id); err != nil {
		return fmt.Errorf("delete exams for series %s: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM exam_series WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete series %s: %w", id, err)
	}
	return tx.Commit()
}

func (s *Store) examsForSeries(seriesID string) ([]model.Exam, error) {
	rows, err := s.db.Query(
		`SELECT id, series_id, title, description, instructions, questions,
			total_points, estimated_time, difficulty_level, difficulty_label,
			score, completed_at, time_taken, created_at
		 FROM exams WHERE series_id = ? ORDER BY difficulty_level ASC`, seriesID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		exam, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, *exam)
	}
	return exams, rows.Err()
}

// GetExam returns a single exam by id. Returns (nil, nil) when unknown.
func (s *Store) GetExam(id string) (*model.Exam, error) {
	row := s.db.QueryRow(
		`SELECT id, series_id, title, description, instructions, questions,
			total_points, estimated_time, difficulty_level, difficulty_label,
			score, completed_at, time_taken, created_at
		 FROM exams WHERE id = ?`, id,
	)
	exam, err := scanExam(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return exam, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExam(r rowScanner) (*model.Exam, error) {
	var exam model.Exam
	var questions string
	err := r.Scan(
		&exam.ID, &exam.SeriesID, &exam.Title, &exam.Description, &exam.Instructions, &questions,
		&exam.TotalPoints, &exam.EstimatedTime, &exam.DifficultyLevel, &exam.DifficultyLabel,
		&exam.Score, &exam.CompletedAt, &exam.TimeTaken, &exam.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(questions), &exam.Questions); err != nil {
		return nil, fmt.Errorf("decode questions for exam %s: %w", exam.ID, err)
	}
	return &exam, nil
}

// UpdateExamResult records the outcome of one exam attempt without
// touching the question payload. A retake simply overwrites the previous
// triple; no attempt history is kept.
func (s *Store) UpdateExamResult(id string, res model.ExamResult) error {
	out, err := s.db.Exec(
		`UPDATE exams SET score = ?, completed_at = ?, time_taken = ? WHERE id = ?`,
		res.Score, res.CompletedAt, res.TimeTaken, id,
	)
	if err != nil {
		return err
	}
	n, err := out.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SavePracticeExam inserts or replaces a practice exam.
func (s *Store) SavePracticeExam(exam *model.PracticeExam) error {
	questions, err := json.Marshal(exam.Questions)
	if err != nil {
		return fmt.Errorf("encode questions for practice exam %s: %w", exam.ID, err)
	}
	settings, err := json.Marshal(exam.Settings)
	if err != nil {
		return fmt.Errorf("encode settings for practice exam %s: %w", exam.ID, err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO practice_exams (id, title, description, instructions, questions,
			total_points, estimated_time, difficulty, settings, has_answer_key,
			score, completed_at, time_taken, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		exam.ID, exam.Title, exam.Description, exam.Instructions, string(questions),
		exam.TotalPoints, exam.EstimatedTime, exam.Difficulty, string(settings), exam.HasAnswerKey,
		exam.Score, exam.CompletedAt, exam.TimeTaken, exam.CreatedAt,
	)
	return err
}

// GetPracticeExam returns a practice exam by id, or (nil, nil).
func (s *Store) GetPracticeExam(id string) (*model.PracticeExam, error) {
	row := s.db.QueryRow(
		`SELECT id, title, description, instructions, questions, total_points, estimated_time,
			difficulty, settings, has_answer_key, score, completed_at, time_taken, created_at
		 FROM practice_exams WHERE id = ?`, id,
	)
	exam, err := scanPracticeExam(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return exam, err
}

// ListPracticeExams returns all practice exams, newest first.
func (s *Store) ListPracticeExams() ([]model.PracticeExam, error) {
	rows, err := s.db.Query(
		`SELECT id, title, description, instructions, questions, total_points, estimated_time,
			difficulty, settings, has_answer_key, score, completed_at, time_taken, created_at
		 FROM practice_exams ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.PracticeExam
	for rows.Next() {
		exam, err := scanPracticeExam(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *exam)
	}
	return list, rows.Err()
}

func scanPracticeExam(r rowScanner) (*model.PracticeExam, error) {
	var exam model.PracticeExam
	var questions, settings string
	err := r.Scan(
		&exam.ID, &exam.Title, &exam.Description, &exam.Instructions, &questions,
		&exam.TotalPoints, &exam.EstimatedTime, &exam.Difficulty, &settings, &exam.HasAnswerKey,
		&exam.Score, &exam.CompletedAt, &exam.TimeTaken, &exam.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(questions), &exam.Questions); err != nil {
		return nil, fmt.Errorf("decode questions for practice exam %s: %w", exam.ID, err)
	}
	if err := json.Unmarshal([]byte(settings), &exam.Settings); err != nil {
		return nil, fmt.Errorf("decode settings for practice exam %s: %w", exam.ID, err)
	}
	return &exam, nil
}

// DeletePracticeExam removes a practice exam.
func (s *Store) DeletePracticeExam(id string) error {
	_, err := s.db.Exec(`DELETE FROM practice_exams WHERE id = ?`, id)
	return err
}

// UpdatePracticeExamResult records the outcome of a practice exam attempt;
// same overwrite-on-retake rule as UpdateExamResult.
func (s *Store) UpdatePracticeExamResult(id string, res model.ExamResult) error {
	out, err := s.db.Exec(
		`UPDATE practice_exams SET score = ?, completed_at = ?, time_taken = ? WHERE id = ?`,
		res.Score, res.CompletedAt, res.TimeTaken, id,
	)
	if err != nil {
		return err
	}
	n, err := out.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveLearningPath inserts or replaces a learning path. Step indices are
// renumbered to 1-based positional order regardless of the numbering the
// generation step produced, and the per-session completed flag is reset:
// the stored schema does not track completion.
func (s *Store) SaveLearningPath(path *model.LearningPath) error {
	steps := make([]model.LearningStep, len(path.Steps))
	for i, step := range path.Steps {
		step.Index = i + 1
		step.Completed = false
		steps[i] = step
	}
	path.Steps = steps

	encoded, err := json.Marshal(steps)
	if err != nil {
		return fmt.Errorf("encode steps for path %s: %w", path.ID, err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO learning_paths (id, topic, total_estimated_time, difficulty, description, steps, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		path.ID, path.Topic, path.TotalEstimatedTime, path.Difficulty, path.Description, string(encoded), path.CreatedAt,
	)
	return err
}

// GetLearningPath returns a learning path by id, or (nil, nil).
func (s *Store) GetLearningPath(id string) (*model.LearningPath, error) {
	var path model.LearningPath
	var steps string
	err := s.db.QueryRow(
		`SELECT id, topic, total_estimated_time, difficulty, description, steps, created_at
		 FROM learning_paths WHERE id = ?`, id,
	).Scan(&path.ID, &path.Topic, &path.TotalEstimatedTime, &path.Difficulty, &path.Description, &steps, &path.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(steps), &path.Steps); err != nil {
		return nil, fmt.Errorf("decode steps for path %s: %w", path.ID, err)
	}
	return &path, nil
}

// ListLearningPaths returns all learning paths, newest first.
func (s *Store) ListLearningPaths() ([]model.LearningPath, error) {
	rows, err := s.db.Query(
		`SELECT id, topic, total_estimated_time, difficulty, description, steps, created_at
		 FROM learning_paths ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.LearningPath
	for rows.Next() {
		var path model.LearningPath
		var steps string
		if err := rows.Scan(&path.ID, &path.Topic, &path.TotalEstimatedTime, &path.Difficulty, &path.Description, &steps, &path.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(steps), &path.Steps); err != nil {
			return nil, fmt.Errorf("decode steps for path %s: %w", path.ID, err)
		}
		list = append(list, path)
	}
	return list, rows.Err()
}

// DeleteLearningPath removes a learning path.
func (s *Store) DeleteLearningPath(id string) error {
	_, err := s.db.Exec(`DELETE FROM learning_paths WHERE id = ?`, id)
	return err
}
