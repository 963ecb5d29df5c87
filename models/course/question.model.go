package course

import "gorm.io/gorm"

// Question kinds
const (
	KindMultipleChoice = "MULTIPLE_CHOICE"
	KindOpenEnded      = "OPEN_ENDED"
)

// Question belongs to a quiz block. Correctness is represented only by the
// set of options with is_correct=true; MultipleAnswers widens the allowed
// cardinality of that set from exactly one to one-or-more.
type Question struct {
	gorm.Model
	BlockID          uint   `json:"block_id" gorm:"index;not null"`
	UID              string `json:"uid" gorm:"uniqueIndex"` // stable external id
	Prompt           string `json:"prompt" gorm:"type:text"`
	Kind             string `json:"kind" gorm:"default:'MULTIPLE_CHOICE'"` // MULTIPLE_CHOICE, OPEN_ENDED
	MultipleAnswers  bool   `json:"multiple_answers" gorm:"default:false"`
	PositiveFeedback string `json:"positive_feedback" gorm:"type:text"`
	NegativeFeedback string `json:"negative_feedback" gorm:"type:text"`
	OrderIndex       int    `json:"order_index" gorm:"default:0"`
	IsDeleted        bool   `gorm:"default:false"`
}

// QuestionOption represents an option for a multiple choice question
type QuestionOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}
