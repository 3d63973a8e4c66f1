// Package repository implements the persisted question/course store on SQLite.
package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"study-toolkit/internal/domain"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteQuestionStore implements domain.QuestionStore. The store is the only
// writer of the courses and questions tables; dedup relies on the
// UNIQUE(question_text, course) constraint so concurrent runs inserting the
// same question cannot create two rows.
type SQLiteQuestionStore struct {
	conn   *sql.DB
	logger domain.Logger
}

// NewQuestionStore opens (or creates) the database at dbPath and initializes
// the tables if absent.
func NewQuestionStore(dbPath string, logger domain.Logger) (*SQLiteQuestionStore, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = createTables(conn); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLiteQuestionStore{conn: conn, logger: logger}, nil
}

// Close closes the database connection
func (s *SQLiteQuestionStore) Close() error {
	return s.conn.Close()
}

// createTables creates the necessary tables if they don't exist
func createTables(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS courses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			course TEXT NOT NULL UNIQUE,
			topics TEXT,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	_, err = conn.Exec(`
		CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question_text TEXT NOT NULL,
			course TEXT,
			topics TEXT,
			difficulty TEXT,
			source_pdf TEXT,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(question_text, course)
		)
	`)
	return err
}

// UpsertCourse creates the course row if absent; if present, overwrites the
// topic list and refreshes the timestamp (latest syllabus wins).
func (s *SQLiteQuestionStore) UpsertCourse(name string, topics []string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrCourseRequired
	}

	_, err := s.conn.Exec(`
		INSERT INTO courses (course, topics, timestamp) VALUES (?, ?, ?)
		ON CONFLICT(course) DO UPDATE SET topics = excluded.topics, timestamp = excluded.timestamp
	`, name, strings.Join(topics, ", "), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert course %q: %w", name, err)
	}
	return nil
}

// InsertQuestions inserts each question whose (question_text, course) pair is
// new and silently skips duplicates. Returns the number of rows actually added.
func (s *SQLiteQuestionStore) InsertQuestions(qs []domain.Question) (int, error) {
	if len(qs) == 0 {
		return 0, nil
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO questions
		(question_text, course, topics, difficulty, source_pdf, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, q := range qs {
		ts := q.Timestamp
		if ts.IsZero() {
			ts = time.Now().UTC()
		}
		res, err := stmt.Exec(q.QuestionText, q.Course, q.Topics, q.Difficulty, q.SourcePDF, ts)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert question: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit questions: %w", err)
	}

	s.logger.Debug("Inserted questions", "attempted", len(qs), "added", inserted)
	return inserted, nil
}

// FindQuestions returns questions whose stored course contains the requested
// course as a case-insensitive substring. With topics, the per-topic matches
// are unioned and deduplicated by (question_text, course) so a question
// matching several requested topics appears once.
func (s *SQLiteQuestionStore) FindQuestions(course string, topics []string) ([]domain.Question, error) {
	if len(topics) == 0 {
		return s.queryQuestions(course, "")
	}

	var merged []domain.Question
	seen := make(map[string]bool)
	for _, topic := range topics {
		qs, err := s.queryQuestions(course, topic)
		if err != nil {
			return nil, err
		}
		for _, q := range qs {
			key := q.QuestionText + "\x00" + q.Course
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, q)
		}
	}
	return merged, nil
}

// queryQuestions runs one substring-filtered select. SQLite LIKE is
// case-insensitive for ASCII, which gives us the required matching policy.
func (s *SQLiteQuestionStore) queryQuestions(course, topic string) ([]domain.Question, error) {
	query := `SELECT id, question_text, course, topics, difficulty, source_pdf, timestamp
		FROM questions WHERE course LIKE ?`
	args := []interface{}{"%" + course + "%"}
	if topic != "" {
		query += " AND topics LIKE ?"
		args = append(args, "%"+topic+"%")
	}
	query += " ORDER BY id"

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var result []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.Course, &q.Topics, &q.Difficulty, &q.SourcePDF, &q.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		result = append(result, q)
	}
	return result, rows.Err()
}

// ListDistinctCourses returns the known course names across both tables,
// sorted. Used to build the "did you mean" diagnostic for empty exam queries.
func (s *SQLiteQuestionStore) ListDistinctCourses() ([]string, error) {
	rows, err := s.conn.Query(`
		SELECT course FROM courses WHERE course IS NOT NULL AND course != ''
		UNION
		SELECT course FROM questions WHERE course IS NOT NULL AND course != ''
		ORDER BY course
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// ListCourseTopics returns the distinct topics attached to a course's stored
// questions, falling back to the course row's own topic list when the
// questions carry none. Topic fields are comma-separated free text.
func (s *SQLiteQuestionStore) ListCourseTopics(course string) ([]string, error) {
	rows, err := s.conn.Query(`
		SELECT DISTINCT topics FROM questions
		WHERE course = ? AND topics IS NOT NULL AND topics != ''
	`, course)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var topics []string
	addAll := func(raw string) {
		for _, t := range strings.Split(raw, ",") {
			t = strings.TrimSpace(t)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			topics = append(topics, t)
		}
	}

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		addAll(raw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(topics) > 0 {
		return topics, nil
	}

	var raw string
	err = s.conn.QueryRow(`SELECT topics FROM courses WHERE course = ?`, course).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query course topics: %w", err)
	}
	addAll(raw)
	return topics, nil
}
