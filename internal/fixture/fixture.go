package fixture

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"

	"github.com/kbukum/alexops/internal/database"
	"github.com/kbukum/alexops/internal/logger"
	"github.com/kbukum/alexops/internal/models"
	"github.com/kbukum/alexops/internal/validation"
)

// ClerkUserID is the natural key of the fixture identity.
const ClerkUserID = "test_user_001"

func testUser() models.User {
	return models.User{
		ClerkUserID:            ClerkUserID,
		DisplayName:            "Test User",
		YearsUntilRetirement:   25,
		TargetRetirementIncome: decimal.NewFromInt(100000),
	}
}

func testAccounts(clerkUserID string) []models.Account {
	return []models.Account{
		{
			ClerkUserID:    clerkUserID,
			AccountName:    "401(k)",
			AccountPurpose: "Primary retirement savings",
			CashBalance:    decimal.NewFromInt(5000),
			CashInterest:   decimal.RequireFromString("0.045"),
		},
		{
			ClerkUserID:    clerkUserID,
			AccountName:    "Roth IRA",
			AccountPurpose: "Tax-free retirement savings",
			CashBalance:    decimal.NewFromInt(1000),
			CashInterest:   decimal.RequireFromString("0.04"),
		},
		{
			ClerkUserID:    clerkUserID,
			AccountName:    "Taxable Brokerage",
			AccountPurpose: "General investment account",
			CashBalance:    decimal.NewFromInt(2500),
			CashInterest:   decimal.RequireFromString("0.035"),
		},
	}
}

func testPositions(accountID uuid.UUID) []models.Position {
	return []models.Position{
		{AccountID: accountID, Symbol: "SPY", Quantity: decimal.NewFromInt(100)},
		{AccountID: accountID, Symbol: "QQQ", Quantity: decimal.NewFromInt(50)},
		{AccountID: accountID, Symbol: "BND", Quantity: decimal.NewFromInt(200)},
		{AccountID: accountID, Symbol: "VEA", Quantity: decimal.NewFromInt(150)},
		{AccountID: accountID, Symbol: "GLD", Quantity: decimal.NewFromInt(25)},
	}
}

// Provisioner creates the test identity and its portfolio.
type Provisioner struct {
	db  *database.DB
	log *logger.Logger
	out io.Writer
}

// NewProvisioner creates a fixture provisioner. Progress lines for the
// operator go to out; pass nil to discard them.
func NewProvisioner(db *database.DB, log *logger.Logger, out io.Writer) *Provisioner {
	if out == nil {
		out = io.Discard
	}
	return &Provisioner{db: db, log: log.WithComponent("fixture"), out: out}
}

// Provision creates the fixture user, accounts and positions. Each
// layer is skipped when it already exists, so repeated runs leave the
// row counts unchanged. A validation failure aborts the whole run.
func (p *Provisioner) Provision(ctx context.Context) error {
	user, err := p.ensureUser(ctx)
	if err != nil {
		return err
	}

	accounts, err := p.ensureAccounts(ctx, user.ClerkUserID)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Fprintln(p.out, "   no accounts available, skipping positions")
		return nil
	}

	return p.ensurePositions(ctx, accounts[0].ID)
}

// ensureUser inserts the fixture user with an on-conflict no-op keyed
// by clerk_user_id, then reads the stored row back. The unique index
// makes concurrent runs converge instead of racing the existence check.
func (p *Provisioner) ensureUser(ctx context.Context) (*models.User, error) {
	user := testUser()
	if err := validation.Validate(&user); err != nil {
		return nil, err
	}

	res := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clerk_user_id"}},
		DoNothing: true,
	}).Create(&user)
	if res.Error != nil {
		return nil, database.FromDatabase(res.Error, "user")
	}

	if res.RowsAffected == 0 {
		fmt.Fprintln(p.out, "   test user already exists")
	} else {
		fmt.Fprintln(p.out, "   created test user")
		p.log.Info("Fixture user created", map[string]interface{}{"clerk_user_id": user.ClerkUserID})
	}

	var stored models.User
	if err := p.db.WithContext(ctx).First(&stored, "clerk_user_id = ?", user.ClerkUserID).Error; err != nil {
		return nil, database.FromDatabase(err, "user")
	}
	return &stored, nil
}

// ensureAccounts returns the user's accounts in creation order,
// creating the three predefined ones when none exist. The gate is
// any-accounts, not per-account: a partial set is treated as fully
// seeded and reused as-is.
// TODO: gate on the account names so a partial set gets repaired.
func (p *Provisioner) ensureAccounts(ctx context.Context, clerkUserID string) ([]models.Account, error) {
	var existing []models.Account
	err := p.db.WithContext(ctx).
		Where("clerk_user_id = ?", clerkUserID).
		Order("created_at, id").
		Find(&existing).Error
	if err != nil {
		return nil, database.FromDatabase(err, "account")
	}

	if len(existing) > 0 {
		fmt.Fprintf(p.out, "   user already has %d accounts\n", len(existing))
		return existing, nil
	}

	accounts := testAccounts(clerkUserID)
	for i := range accounts {
		if err := validation.Validate(&accounts[i]); err != nil {
			return nil, err
		}
		if err := p.db.WithContext(ctx).Create(&accounts[i]).Error; err != nil {
			return nil, database.FromDatabase(err, "account")
		}
		fmt.Fprintf(p.out, "   created account: %s\n", accounts[i].AccountName)
	}
	p.log.Info("Fixture accounts created", map[string]interface{}{"count": len(accounts)})
	return accounts, nil
}

// ensurePositions creates the five predefined positions in the given
// account unless it already holds any.
func (p *Provisioner) ensurePositions(ctx context.Context, accountID uuid.UUID) error {
	var count int64
	err := p.db.WithContext(ctx).
		Model(&models.Position{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	if err != nil {
		return database.FromDatabase(err, "position")
	}

	if count > 0 {
		fmt.Fprintf(p.out, "   account already has %d positions\n", count)
		return nil
	}

	positions := testPositions(accountID)
	for i := range positions {
		if err := validation.Validate(&positions[i]); err != nil {
			return err
		}
		if err := p.db.WithContext(ctx).Create(&positions[i]).Error; err != nil {
			return database.FromDatabase(err, "position")
		}
		fmt.Fprintf(p.out, "   added position: %s shares of %s\n", positions[i].Quantity, positions[i].Symbol)
	}
	p.log.Info("Fixture positions created", map[string]interface{}{"count": len(positions)})
	return nil
}
