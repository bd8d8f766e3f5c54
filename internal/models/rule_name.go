package models

// RuleName is a named rule definition.
type RuleName struct {
	Base
	Name        string `gorm:"size:125" json:"name" form:"name" binding:"max=125"`
	Description string `gorm:"size:125" json:"description" form:"description" binding:"max=125"`
	JSON        string `gorm:"column:json;size:125" json:"json" form:"json" binding:"max=125"`
	Template    string `gorm:"size:512" json:"template" form:"template" binding:"max=512"`
	SQLStr      string `gorm:"column:sql_str;size:125" json:"sqlStr" form:"sqlStr" binding:"max=125"`
	SQLPart     string `gorm:"column:sql_part;size:125" json:"sqlPart" form:"sqlPart" binding:"max=125"`
}

// TableName pins the table name used by the migrations.
func (RuleName) TableName() string { return "rulename" }

// Kind implements Record.
func (*RuleName) Kind() string { return "ruleName" }

// MergeMutable copies every rule column.
func (r *RuleName) MergeMutable(src *RuleName) {
	r.Name = src.Name
	r.Description = src.Description
	r.JSON = src.JSON
	r.Template = src.Template
	r.SQLStr = src.SQLStr
	r.SQLPart = src.SQLPart
}
