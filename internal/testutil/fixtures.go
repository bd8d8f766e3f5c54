package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"tradedesk/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// CreateTestUser creates a USER account with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, fmt.Sprintf("user%d", nextID()), models.RoleUser)
}

// CreateTestUserWithRole creates a user with the given username and role.
func CreateTestUserWithRole(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
		FullName: "Test " + username,
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBidList creates a bid list with the given quantity.
func CreateTestBidList(t *testing.T, db *gorm.DB, account string, quantity float64) *models.BidList {
	t.Helper()

	bid := &models.BidList{
		Account:     account,
		Type:        "Type",
		BidQuantity: Float(quantity),
	}
	if err := db.Create(bid).Error; err != nil {
		t.Fatalf("failed to create test bid list: %v", err)
	}
	return bid
}

// CreateTestCurvePoint creates a curve point at the given term and value.
func CreateTestCurvePoint(t *testing.T, db *gorm.DB, term, value float64) *models.CurvePoint {
	t.Helper()

	point := &models.CurvePoint{
		CurveID: Int(1),
		Term:    Float(term),
		Value:   Float(value),
	}
	if err := db.Create(point).Error; err != nil {
		t.Fatalf("failed to create test curve point: %v", err)
	}
	return point
}

// CreateTestRating creates a rating with the given order number.
func CreateTestRating(t *testing.T, db *gorm.DB, order int) *models.Rating {
	t.Helper()

	rating := &models.Rating{
		MoodysRating: "Aaa",
		SandPRating:  "AAA",
		FitchRating:  "AAA",
		OrderNumber:  Int(order),
	}
	if err := db.Create(rating).Error; err != nil {
		t.Fatalf("failed to create test rating: %v", err)
	}
	return rating
}

// CreateTestRuleName creates a rule with the given name.
func CreateTestRuleName(t *testing.T, db *gorm.DB, name string) *models.RuleName {
	t.Helper()

	rule := &models.RuleName{
		Name:        name,
		Description: "Description",
		JSON:        "{}",
		Template:    "Template",
		SQLStr:      "SELECT 1",
		SQLPart:     "WHERE 1 = 1",
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test rule name: %v", err)
	}
	return rule
}

// CreateTestTrade creates a trade with the given buy quantity.
func CreateTestTrade(t *testing.T, db *gorm.DB, account string, quantity float64) *models.Trade {
	t.Helper()

	trade := &models.Trade{
		Account:     account,
		Type:        "Type",
		BuyQuantity: Float(quantity),
	}
	if err := db.Create(trade).Error; err != nil {
		t.Fatalf("failed to create test trade: %v", err)
	}
	return trade
}
