package models

import "time"

// Trade is an executed trade on an account.
type Trade struct {
	Base
	Account      string     `gorm:"size:30;not null" json:"account" form:"account" binding:"required,notblank,max=30"`
	Type         string     `gorm:"size:30;not null" json:"type" form:"type" binding:"required,notblank,max=30"`
	BuyQuantity  *float64   `json:"buyQuantity" form:"buyQuantity" binding:"omitempty,gte=0"`
	SellQuantity *float64   `json:"sellQuantity" form:"sellQuantity" binding:"omitempty,gte=0"`
	BuyPrice     *float64   `json:"buyPrice" form:"buyPrice"`
	SellPrice    *float64   `json:"sellPrice" form:"sellPrice"`
	Benchmark    string     `gorm:"size:125" json:"benchmark" form:"benchmark" binding:"max=125"`
	TradeDate    *time.Time `json:"tradeDate,omitempty" form:"tradeDate" time_format:"2006-01-02"`
	Security     string     `gorm:"size:125" json:"security" form:"security" binding:"max=125"`
	Status       string     `gorm:"size:10" json:"status" form:"status" binding:"max=10"`
	Trader       string     `gorm:"size:125" json:"trader" form:"trader" binding:"max=125"`
	Book         string     `gorm:"size:125" json:"book" form:"book" binding:"max=125"`
	DealName     string     `gorm:"size:125" json:"dealName" form:"dealName" binding:"max=125"`
	DealType     string     `gorm:"size:125" json:"dealType" form:"dealType" binding:"max=125"`
	SourceListID string     `gorm:"column:source_list_id;size:125" json:"sourceListId" form:"sourceListId" binding:"max=125"`
	Side         string     `gorm:"size:125" json:"side" form:"side" binding:"max=125"`
	Audit
}

// TableName pins the table name used by the migrations.
func (Trade) TableName() string { return "trade" }

// Kind implements Record.
func (*Trade) Kind() string { return "trade" }

// MergeMutable copies account, type and buy quantity.
func (t *Trade) MergeMutable(src *Trade) {
	t.Account = src.Account
	t.Type = src.Type
	t.BuyQuantity = src.BuyQuantity
}
