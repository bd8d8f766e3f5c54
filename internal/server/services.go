package server

import (
	"gorm.io/gorm"

	"tradedesk/internal/auth"
	"tradedesk/internal/models"
	"tradedesk/internal/services"
	"tradedesk/internal/store"
)

// Services is the set of record services the router exposes.
type Services struct {
	BidLists       services.RecordServicer[models.BidList]
	CurvePoints    services.RecordServicer[models.CurvePoint]
	Ratings        services.RecordServicer[models.Rating]
	RuleNames      services.RecordServicer[models.RuleName]
	Trades         services.RecordServicer[models.Trade]
	Users          services.UserServicer
	Authentication services.AuthenticationServicer
}

// NewSQLServices wires every service to GORM stores over db.
func NewSQLServices(db *gorm.DB, hasher auth.PasswordHasher) *Services {
	credentials := store.NewGormCredentialStore(db)
	return &Services{
		BidLists:       services.NewRecordService[models.BidList](store.NewGormStore[models.BidList](db)),
		CurvePoints:    services.NewRecordService[models.CurvePoint](store.NewGormStore[models.CurvePoint](db)),
		Ratings:        services.NewRecordService[models.Rating](store.NewGormStore[models.Rating](db)),
		RuleNames:      services.NewRecordService[models.RuleName](store.NewGormStore[models.RuleName](db)),
		Trades:         services.NewRecordService[models.Trade](store.NewGormStore[models.Trade](db)),
		Users:          services.NewUserService(credentials, hasher),
		Authentication: services.NewAuthenticationService(credentials),
	}
}

// NewMemoryServices wires every service to in-process stores.
func NewMemoryServices(hasher auth.PasswordHasher) *Services {
	credentials := store.NewMemoryCredentialStore()
	return &Services{
		BidLists:       services.NewRecordService[models.BidList](store.NewMemoryStore[models.BidList]()),
		CurvePoints:    services.NewRecordService[models.CurvePoint](store.NewMemoryStore[models.CurvePoint]()),
		Ratings:        services.NewRecordService[models.Rating](store.NewMemoryStore[models.Rating]()),
		RuleNames:      services.NewRecordService[models.RuleName](store.NewMemoryStore[models.RuleName]()),
		Trades:         services.NewRecordService[models.Trade](store.NewMemoryStore[models.Trade]()),
		Users:          services.NewUserService(credentials, hasher),
		Authentication: services.NewAuthenticationService(credentials),
	}
}
