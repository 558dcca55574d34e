package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is an advisor-platform identity. ClerkUserID is the natural key;
// the schema enforces its uniqueness and the fixture provisioner relies
// on it for find-or-create.
type User struct {
	BaseModel
	ClerkUserID            string          `gorm:"column:clerk_user_id;uniqueIndex;not null" json:"clerk_user_id" validate:"required"`
	DisplayName            string          `gorm:"not null" json:"display_name" validate:"required"`
	YearsUntilRetirement   int             `json:"years_until_retirement" validate:"gte=0,lte=100"`
	TargetRetirementIncome decimal.Decimal `gorm:"type:numeric(14,2)" json:"target_retirement_income" validate:"gte=0"`
}

func (User) TableName() string { return "users" }

// Instrument is a row of the reference catalog the loader seeds. The
// ticker symbol is the primary key.
type Instrument struct {
	Symbol       string          `gorm:"primaryKey" json:"symbol" validate:"required"`
	Name         string          `gorm:"not null" json:"name" validate:"required"`
	AssetClass   string          `gorm:"not null" json:"asset_class" validate:"required,oneof=us_equity intl_equity fixed_income commodity real_estate"`
	Region       string          `json:"region"`
	ExpenseRatio decimal.Decimal `gorm:"type:numeric(6,4)" json:"expense_ratio" validate:"gte=0,lte=1"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Instrument) TableName() string { return "instruments" }

// Account is an investment account owned by a user via the clerk user id.
type Account struct {
	BaseModel
	ClerkUserID    string          `gorm:"column:clerk_user_id;not null;index" json:"clerk_user_id" validate:"required"`
	AccountName    string          `gorm:"not null" json:"account_name" validate:"required"`
	AccountPurpose string          `json:"account_purpose" validate:"required"`
	CashBalance    decimal.Decimal `gorm:"type:numeric(14,2)" json:"cash_balance" validate:"gte=0"`
	CashInterest   decimal.Decimal `gorm:"type:numeric(6,4)" json:"cash_interest" validate:"gte=0,lte=1"`
}

func (Account) TableName() string { return "accounts" }

// Position is a holding of an instrument inside an account. One row per
// (account, symbol); quantity must be strictly positive.
type Position struct {
	BaseModel
	AccountID uuid.UUID       `gorm:"type:uuid;not null;index:idx_positions_account_symbol,unique" json:"account_id" validate:"required"`
	Symbol    string          `gorm:"not null;index:idx_positions_account_symbol,unique" json:"symbol" validate:"required"`
	Quantity  decimal.Decimal `gorm:"type:numeric(18,6);not null" json:"quantity" validate:"gt=0"`
}

func (Position) TableName() string { return "positions" }

// Job is an asynchronous platform job. Nothing in this toolkit creates
// jobs; the model exists so the table can be counted and migrated.
type Job struct {
	BaseModel
	ClerkUserID  *string         `gorm:"column:clerk_user_id" json:"clerk_user_id,omitempty"`
	JobType      string          `gorm:"not null" json:"job_type" validate:"required"`
	Status       string          `gorm:"not null;default:pending" json:"status" validate:"required,oneof=pending running completed failed"`
	Payload      json.RawMessage `gorm:"type:jsonb" json:"payload,omitempty"`
	Result       json.RawMessage `gorm:"type:jsonb" json:"result,omitempty"`
	ErrorMessage string          `gorm:"column:error" json:"error,omitempty"`
}

func (Job) TableName() string { return "jobs" }

// TrackedTables is the fixed table order the verification reporter
// counts in.
var TrackedTables = []string{"users", "instruments", "accounts", "positions", "jobs"}

// DropOrder is the fixed table order schema teardown drops in:
// dependents before dependencies.
var DropOrder = []string{"positions", "accounts", "jobs", "instruments", "users"}
