package team

// Team represents a sports team. Name is globally unique; the application
// check inside the create/update transactions produces the clean conflict
// message, the unique index is the backstop.
type Team struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"uniqueIndex;not null"`
	City        *string `json:"city"`
	FoundedYear *int    `json:"founded_year" gorm:"column:founded_year"`
}

// Summary is the reduced team shape joined onto games for display.
type Summary struct {
	ID   uint    `json:"id"`
	Name string  `json:"name"`
	City *string `json:"city"`
}

// TableName maps the summary onto the teams table so it can be preloaded
// as a games association.
func (Summary) TableName() string {
	return "teams"
}
