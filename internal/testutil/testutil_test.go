package testutil_test

import (
	"testing"

	"tradedesk/internal/errors"
	"tradedesk/internal/models"
	"tradedesk/internal/testutil"

	"golang.org/x/crypto/bcrypt"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"bidlist", "curvepoint", "rating", "rulename", "trade", "users"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestRating(t, first, 1)

	var count int64
	if err := second.Model(&models.Rating{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected a fresh database, found %d ratings", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}
	if user.Role != models.RoleUser {
		t.Errorf("expected USER role, got %s", user.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(testutil.TestPassword)); err != nil {
		t.Errorf("fixture password should be bcrypt-hashed: %v", err)
	}

	bid := testutil.CreateTestBidList(t, db, "Account", 10)
	if *bid.BidQuantity != 10 {
		t.Errorf("expected bid quantity 10, got %f", *bid.BidQuantity)
	}

	point := testutil.CreateTestCurvePoint(t, db, 100, 200)
	if *point.Term != 100 || *point.Value != 200 {
		t.Errorf("expected (100, 200), got (%f, %f)", *point.Term, *point.Value)
	}

	rating := testutil.CreateTestRating(t, db, 3)
	if *rating.OrderNumber != 3 {
		t.Errorf("expected order number 3, got %d", *rating.OrderNumber)
	}

	rule := testutil.CreateTestRuleName(t, db, "Rule")
	if rule.Name != "Rule" {
		t.Errorf("expected rule name Rule, got %s", rule.Name)
	}

	trade := testutil.CreateTestTrade(t, db, "Account", 5)
	if trade.ID == 0 {
		t.Error("trade should have a non-zero ID")
	}
}

func TestAssertAppError(t *testing.T) {
	testutil.AssertAppError(t, errors.ErrNotFound, "NOT_FOUND")
	testutil.AssertAppError(t, errors.Wrap(errors.ErrInternalServer, nil), "INTERNAL_ERROR")
	testutil.AssertNotFound(t, errors.NotFound("trade", 7), "Invalid trade id: 7")
}
