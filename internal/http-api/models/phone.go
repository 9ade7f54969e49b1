package models

// Phone belongs to exactly one user and is rewritten with it on every save.
type Phone struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID      string `gorm:"type:uuid;not null;index" json:"-"`
	Number      string `gorm:"not null" json:"number"`
	CityCode    string `gorm:"column:citycode" json:"citycode"`
	CountryCode string `gorm:"column:countrycode" json:"countrycode"`
}

func (Phone) TableName() string {
	return "phones"
}
