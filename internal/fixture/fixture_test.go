package fixture

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kbukum/alexops/internal/database"
	"github.com/kbukum/alexops/internal/database/testutil"
	"github.com/kbukum/alexops/internal/logger"
	"github.com/kbukum/alexops/internal/models"
)

func testLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: "error", Format: "console"}, "fixture-test")
}

func fixtureDB(t *testing.T) *database.DB {
	t.Helper()
	return testutil.OpenWithModels(t, &models.User{}, &models.Account{}, &models.Position{})
}

func TestProvisionFreshEnvironment(t *testing.T) {
	db := fixtureDB(t)
	var out bytes.Buffer
	p := NewProvisioner(db, testLogger(), &out)

	if err := p.Provision(context.Background()); err != nil {
		t.Fatalf("Provision failed: %v", err)
	}

	var users []models.User
	if err := db.GormDB.Find(&users).Error; err != nil {
		t.Fatalf("reading users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected exactly 1 user, got %d", len(users))
	}
	if users[0].ClerkUserID != ClerkUserID {
		t.Errorf("expected clerk_user_id %q, got %q", ClerkUserID, users[0].ClerkUserID)
	}

	var accounts []models.Account
	if err := db.GormDB.Where("clerk_user_id = ?", ClerkUserID).Order("created_at, id").Find(&accounts).Error; err != nil {
		t.Fatalf("reading accounts: %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("expected exactly 3 accounts, got %d", len(accounts))
	}
	if accounts[0].AccountName != "401(k)" {
		t.Errorf("expected first account 401(k), got %q", accounts[0].AccountName)
	}

	var positions []models.Position
	if err := db.GormDB.Where("account_id = ?", accounts[0].ID).Find(&positions).Error; err != nil {
		t.Fatalf("reading positions: %v", err)
	}
	if len(positions) != 5 {
		t.Fatalf("expected exactly 5 positions in the first account, got %d", len(positions))
	}

	want := map[string]int64{"SPY": 100, "QQQ": 50, "BND": 200, "VEA": 150, "GLD": 25}
	for _, pos := range positions {
		qty, ok := want[pos.Symbol]
		if !ok {
			t.Errorf("unexpected position symbol %s", pos.Symbol)
			continue
		}
		if !pos.Quantity.Equal(decimal.NewFromInt(qty)) {
			t.Errorf("position %s: expected quantity %d, got %s", pos.Symbol, qty, pos.Quantity)
		}
		delete(want, pos.Symbol)
	}
	if len(want) != 0 {
		t.Errorf("missing positions: %v", want)
	}

	for _, line := range []string{"created test user", "created account: 401(k)", "added position: 100 shares of SPY"} {
		if !strings.Contains(out.String(), line) {
			t.Errorf("progress output missing %q:\n%s", line, out.String())
		}
	}
}

func TestProvisionIsIdempotent(t *testing.T) {
	db := fixtureDB(t)
	p := NewProvisioner(db, testLogger(), nil)
	ctx := context.Background()

	if err := p.Provision(ctx); err != nil {
		t.Fatalf("first Provision failed: %v", err)
	}
	var out bytes.Buffer
	p2 := NewProvisioner(db, testLogger(), &out)
	if err := p2.Provision(ctx); err != nil {
		t.Fatalf("second Provision failed: %v", err)
	}

	testutil.AssertRowCount(t, db.GormDB, "users", 1)
	testutil.AssertRowCount(t, db.GormDB, "accounts", 3)
	testutil.AssertRowCount(t, db.GormDB, "positions", 5)

	for _, line := range []string{"test user already exists", "user already has 3 accounts", "account already has 5 positions"} {
		if !strings.Contains(out.String(), line) {
			t.Errorf("second run output missing %q:\n%s", line, out.String())
		}
	}
}

func TestProvisionSkipsRemainingAccountsWhenAnyExist(t *testing.T) {
	// The account gate only checks that some account exists for the
	// identity. A pre-existing partial set therefore stays partial.
	db := fixtureDB(t)
	ctx := context.Background()

	user := testUser()
	if err := db.GormDB.Create(&user).Error; err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	leftover := models.Account{
		ClerkUserID:    ClerkUserID,
		AccountName:    "Roth IRA",
		AccountPurpose: "Tax-free retirement savings",
		CashBalance:    decimal.NewFromInt(1000),
		CashInterest:   decimal.RequireFromString("0.04"),
	}
	if err := db.GormDB.Create(&leftover).Error; err != nil {
		t.Fatalf("seeding leftover account: %v", err)
	}

	p := NewProvisioner(db, testLogger(), nil)
	if err := p.Provision(ctx); err != nil {
		t.Fatalf("Provision failed: %v", err)
	}

	testutil.AssertRowCount(t, db.GormDB, "accounts", 1)

	// Positions land in the only account there is.
	var positions []models.Position
	if err := db.GormDB.Where("account_id = ?", leftover.ID).Find(&positions).Error; err != nil {
		t.Fatalf("reading positions: %v", err)
	}
	if len(positions) != 5 {
		t.Errorf("expected 5 positions in the leftover account, got %d", len(positions))
	}
}

func TestProvisionSkipsPositionsWhenAnyExist(t *testing.T) {
	db := fixtureDB(t)
	ctx := context.Background()

	p := NewProvisioner(db, testLogger(), nil)
	if err := p.Provision(ctx); err != nil {
		t.Fatalf("Provision failed: %v", err)
	}

	var first models.Account
	if err := db.GormDB.Where("clerk_user_id = ?", ClerkUserID).Order("created_at, id").First(&first).Error; err != nil {
		t.Fatalf("reading first account: %v", err)
	}
	if err := db.GormDB.Where("account_id = ?", first.ID).Delete(&models.Position{}).Error; err != nil {
		t.Fatalf("clearing positions: %v", err)
	}
	manual := models.Position{AccountID: first.ID, Symbol: "SPY", Quantity: decimal.NewFromInt(1)}
	if err := db.GormDB.Create(&manual).Error; err != nil {
		t.Fatalf("seeding manual position: %v", err)
	}

	if err := p.Provision(ctx); err != nil {
		t.Fatalf("rerun Provision failed: %v", err)
	}

	testutil.AssertRowCount(t, db.GormDB, "positions", 1)
}

func TestProvisionReusesExistingUserID(t *testing.T) {
	db := fixtureDB(t)
	ctx := context.Background()

	p := NewProvisioner(db, testLogger(), nil)
	if err := p.Provision(ctx); err != nil {
		t.Fatalf("first Provision failed: %v", err)
	}
	var before models.User
	if err := db.GormDB.First(&before, "clerk_user_id = ?", ClerkUserID).Error; err != nil {
		t.Fatalf("reading user: %v", err)
	}

	if err := p.Provision(ctx); err != nil {
		t.Fatalf("second Provision failed: %v", err)
	}
	var after models.User
	if err := db.GormDB.First(&after, "clerk_user_id = ?", ClerkUserID).Error; err != nil {
		t.Fatalf("re-reading user: %v", err)
	}

	if before.ID != after.ID {
		t.Errorf("user id changed across runs: %s -> %s", before.ID, after.ID)
	}
}
