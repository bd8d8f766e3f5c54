package models

// Rating holds the agency ratings of an instrument.
type Rating struct {
	Base
	MoodysRating string `gorm:"size:125" json:"moodysRating" form:"moodysRating" binding:"required,notblank,max=125"`
	SandPRating  string `gorm:"column:sand_p_rating;size:125" json:"sandPRating" form:"sandPRating" binding:"required,notblank,max=125"`
	FitchRating  string `gorm:"size:125" json:"fitchRating" form:"fitchRating" binding:"required,notblank,max=125"`
	OrderNumber  *int   `json:"orderNumber" form:"orderNumber" binding:"required,gte=0"`
}

// TableName pins the table name used by the migrations.
func (Rating) TableName() string { return "rating" }

// Kind implements Record.
func (*Rating) Kind() string { return "rating" }

// MergeMutable copies all rating columns.
func (r *Rating) MergeMutable(src *Rating) {
	r.MoodysRating = src.MoodysRating
	r.SandPRating = src.SandPRating
	r.FitchRating = src.FitchRating
	r.OrderNumber = src.OrderNumber
}
