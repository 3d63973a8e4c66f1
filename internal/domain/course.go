package domain

import "time"

// UnknownCourse is the fallback course name used when syllabus analysis fails.
const UnknownCourse = "Unknown Course"

// CourseInfo is the result of analyzing a syllabus: a descriptive course name
// (not a course code) and a short topic list.
type CourseInfo struct {
	CourseName string   `json:"course_name"`
	Topics     []string `json:"topics"`
}

// Course is a persisted course row. Name is the unique key; a later syllabus
// analysis for the same name overwrites Topics (latest syllabus wins).
type Course struct {
	Name        string    `json:"course"`
	Topics      []string  `json:"topics"`
	LastUpdated time.Time `json:"last_updated"`
}

// Question is a persisted exam-question record. The (QuestionText, Course)
// pair is unique; inserting a duplicate pair is a silent no-op.
type Question struct {
	ID           int64     `json:"id,omitempty"`
	QuestionText string    `json:"question_text"`
	Course       string    `json:"course"`
	Topics       string    `json:"topics"`
	Difficulty   string    `json:"difficulty"`
	SourcePDF    string    `json:"source_pdf"`
	Timestamp    time.Time `json:"timestamp"`
}
