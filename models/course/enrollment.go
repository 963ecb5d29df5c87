package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a learner's enrollment in a course with progress.
// Learners are identified by document number, not user accounts; the pair
// (document, course_id) is unique.
type Enrollment struct {
	gorm.Model
	CourseID    uint       `json:"course_id" gorm:"index:idx_enrollment_doc_course,unique;not null"`
	Document    string     `json:"document" gorm:"index:idx_enrollment_doc_course,unique;not null"`
	FullName    string     `json:"full_name" gorm:"not null"`
	Email       string     `json:"email"` // optional, certificate delivery
	JobTitle    string     `json:"job_title"`
	Company     string     `json:"company"`
	Progress    int        `json:"progress" gorm:"default:0"` // 0-100
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`
}

// BlockCompletion records that a learner marked one block as completed
type BlockCompletion struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	BlockID   uint   `json:"block_id" gorm:"index;not null"`
	Document  string `json:"document" gorm:"index;not null"`
	IsDeleted bool   `gorm:"default:false"`
}

// CourseRating stores a learner's rating of a course, one per
// (document, course_id), overwritten on resubmission.
type CourseRating struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index:idx_rating_doc_course,unique;not null"`
	Document  string `json:"document" gorm:"index:idx_rating_doc_course,unique;not null"`
	Stars     int    `json:"stars"` // 1-5
	Comment   string `json:"comment" gorm:"type:text"`
	IsDeleted bool   `gorm:"default:false"`
}
