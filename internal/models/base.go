package models

import "time"

// Base contains the surrogate identity shared by all record tables.
// The identity is assigned by the store on creation and never reused.
type Base struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id" form:"-"`
}

// GetID returns the record identity, zero when not yet persisted.
func (b *Base) GetID() uint { return b.ID }

// SetID assigns the record identity.
func (b *Base) SetID(id uint) { b.ID = id }

// Record is the constraint used by the generic store and service layers:
// a pointer to a record kind exposing its identity and its mutable field set.
type Record[T any] interface {
	*T
	GetID() uint
	SetID(id uint)
	// MergeMutable copies the client-editable fields of src onto the receiver,
	// leaving identity and server-owned fields untouched.
	MergeMutable(src *T)
	// Kind names the record kind as it appears in routes and messages.
	Kind() string
}

// CreationStamped is implemented by records carrying creation audit columns.
type CreationStamped interface {
	StampCreation(actor string, at time.Time)
}

// RevisionStamped is implemented by records carrying revision audit columns.
type RevisionStamped interface {
	StampRevision(actor string, at time.Time)
}

// All returns one zero value of every persisted model, for auto-migration.
func All() []interface{} {
	return []interface{}{
		&BidList{},
		&CurvePoint{},
		&Rating{},
		&RuleName{},
		&Trade{},
		&User{},
	}
}

// Audit holds the server-owned creation and revision columns shared by bid
// lists and trades.
type Audit struct {
	CreationName string     `gorm:"size:125" json:"creationName" form:"-"`
	CreationDate *time.Time `json:"creationDate,omitempty" form:"-"`
	RevisionName string     `gorm:"size:125" json:"revisionName" form:"-"`
	RevisionDate *time.Time `json:"revisionDate,omitempty" form:"-"`
}

// StampCreation records who created the record and when. A new record has
// no revision yet.
func (a *Audit) StampCreation(actor string, at time.Time) {
	a.CreationName = actor
	a.CreationDate = &at
	a.RevisionName = ""
	a.RevisionDate = nil
}

// StampRevision records who last changed the record and when.
func (a *Audit) StampRevision(actor string, at time.Time) {
	a.RevisionName = actor
	a.RevisionDate = &at
}
