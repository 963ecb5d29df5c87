package course

import "gorm.io/gorm"

// Block types
const (
	BlockReading  = "READING"
	BlockVideo    = "VIDEO"
	BlockDocument = "DOCUMENT"
	BlockQuiz     = "QUIZ"
)

// Default durations (minutes) applied when a block is created without one
const (
	DefaultReadingDuration  = 15
	DefaultVideoDuration    = 10
	DefaultDocumentDuration = 10
	DefaultQuizDuration     = 20
)

// ContentBlock represents one unit of course content. OrderIndex is the only
// source of truth for display order and is renumbered on every structural
// mutation, so gaps never appear.
type ContentBlock struct {
	gorm.Model
	CourseID        uint   `json:"course_id" gorm:"index;not null"`
	Type            string `json:"type" gorm:"not null"` // READING, VIDEO, DOCUMENT, QUIZ
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"`
	BodyText        string `json:"body_text" gorm:"type:text"` // markdown body / supplement / description
	VideoURL        string `json:"video_url"`                  // VIDEO type, YouTube watch URL
	FileURL         string `json:"file_url"`                   // DOCUMENT type, PDF or image
	PassPercent     int    `json:"pass_percent" gorm:"default:100"` // QUIZ type, minimum score to pass
	IsDeleted       bool   `gorm:"default:false"`
}

// DefaultDuration returns the default duration in minutes for a block type.
func DefaultDuration(blockType string) int {
	switch blockType {
	case BlockReading:
		return DefaultReadingDuration
	case BlockVideo:
		return DefaultVideoDuration
	case BlockQuiz:
		return DefaultQuizDuration
	default:
		return DefaultDocumentDuration
	}
}
