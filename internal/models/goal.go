package models

// Goal is a vision-board entry: a target the trader is working towards.
type Goal struct {
	ID            int64   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title         string  `gorm:"not null" json:"title"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Deadline      string  `json:"deadline"`
	Done          bool    `json:"done"`
	Notes         string  `gorm:"type:text" json:"notes"`
}
