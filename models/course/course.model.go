package course

import "gorm.io/gorm"

// Course levels
const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelAdvanced     = "ADVANCED"
)

// Course represents a learning course
type Course struct {
	gorm.Model
	Title                  string `json:"title"`
	Description            string `json:"description" gorm:"type:text"`
	Category               string `json:"category"`
	DurationLabel          string `json:"duration_label"` // e.g. "8 horas"
	Level                  string `json:"level" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Instructor             string `json:"instructor"`
	CoverImageURL          string `json:"cover_image_url"`
	EnrollmentKey          string `json:"-"` // shared secret, never serialized to learners
	CertificateTemplateURL string `json:"certificate_template_url"`
	ReportEmail            string `json:"report_email"` // daily report destination
	IsActive               bool   `json:"is_active" gorm:"default:true"`
	IsDeleted              bool   `gorm:"default:false"`
}
