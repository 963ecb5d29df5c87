package course

import (
	"time"

	"gorm.io/gorm"
)

// Attempt statuses
const (
	AttemptInProgress = "IN_PROGRESS"
	AttemptGraded     = "GRADED"
)

// QuizAttempt represents one pass through a quiz block's questions. The
// shuffle seed fixes the question/option permutation for the whole attempt,
// so re-fetching never reshuffles mid-attempt; a retry gets a new seed.
type QuizAttempt struct {
	gorm.Model
	CourseID      uint       `json:"course_id" gorm:"index;not null"`
	BlockID       uint       `json:"block_id" gorm:"index;not null"`
	Document      string     `json:"document" gorm:"index;not null"`
	ShuffleSeed   int64      `json:"-"`
	Status        string     `json:"status" gorm:"default:'IN_PROGRESS'"` // IN_PROGRESS, GRADED
	Answers       string     `json:"answers" gorm:"type:text"` // JSON map question id -> answer
	Score         int        `json:"score" gorm:"default:0"`   // 0-100
	Passed        bool       `json:"passed" gorm:"default:false"`
	AttemptNumber int        `json:"attempt_number" gorm:"default:1"`
	StartedAt     time.Time  `json:"started_at"`
	Deadline      *time.Time `json:"deadline"` // set when the block has a duration
	GradedAt      *time.Time `json:"graded_at"`
	IsDeleted     bool       `gorm:"default:false"`
}
