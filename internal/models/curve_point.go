package models

import "time"

// CurvePoint is a single (term, value) point on a curve.
type CurvePoint struct {
	Base
	CurveID      *int       `json:"curveId" form:"curveId" binding:"omitempty,gte=0"`
	AsOfDate     *time.Time `json:"asOfDate,omitempty" form:"asOfDate" time_format:"2006-01-02"`
	Term         *float64   `json:"term" form:"term" binding:"required,gte=0"`
	Value        *float64   `json:"value" form:"value" binding:"required,gte=0"`
	CreationDate *time.Time `json:"creationDate,omitempty" form:"-"`
}

// TableName pins the table name used by the migrations.
func (CurvePoint) TableName() string { return "curvepoint" }

// Kind implements Record.
func (*CurvePoint) Kind() string { return "curvePoint" }

// MergeMutable copies term and value.
func (p *CurvePoint) MergeMutable(src *CurvePoint) {
	p.Term = src.Term
	p.Value = src.Value
}

// StampCreation sets the creation date.
func (p *CurvePoint) StampCreation(_ string, at time.Time) {
	p.CreationDate = &at
}
