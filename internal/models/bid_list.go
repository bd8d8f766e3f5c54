package models

import "time"

// BidList is a bid placed on an account.
type BidList struct {
	Base
	Account      string     `gorm:"size:30;not null" json:"account" form:"account" binding:"required,notblank,max=30"`
	Type         string     `gorm:"size:30;not null" json:"type" form:"type" binding:"required,notblank,max=30"`
	BidQuantity  *float64   `json:"bidQuantity" form:"bidQuantity" binding:"omitempty,gte=0"`
	AskQuantity  *float64   `json:"askQuantity" form:"askQuantity" binding:"omitempty,gte=0"`
	Bid          *float64   `json:"bid" form:"bid"`
	Ask          *float64   `json:"ask" form:"ask"`
	Benchmark    string     `gorm:"size:125" json:"benchmark" form:"benchmark" binding:"max=125"`
	BidListDate  *time.Time `json:"bidListDate,omitempty" form:"bidListDate" time_format:"2006-01-02"`
	Commentary   string     `gorm:"size:125" json:"commentary" form:"commentary" binding:"max=125"`
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
func (BidList) TableName() string { return "bidlist" }

// Kind implements Record.
func (*BidList) Kind() string { return "bidList" }

// MergeMutable copies account, type and bid quantity.
func (b *BidList) MergeMutable(src *BidList) {
	b.Account = src.Account
	b.Type = src.Type
	b.BidQuantity = src.BidQuantity
}
