package models

// Strategy is a playbook entry describing a named trading setup. Trades
// reference strategies loosely by name through their Setup field; there is
// no foreign key between the two collections.
type Strategy struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Rules       string `gorm:"type:text" json:"rules"`
	Market      string `json:"market"`
	Timeframe   string `json:"timeframe"`
	ImageRef    string `gorm:"type:text" json:"imageRef"`
}
