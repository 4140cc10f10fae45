package accounting

import (
	"time"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountType classifies an account in the chart of accounts
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// IsValid checks if the account type is valid
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// Well-known account codes seeded for every tenant. Services resolve these
// by code; a tenant missing one of them is a configuration error.
const (
	CodeCashBank           = "1000"
	CodeAccountsReceivable = "1100"
	CodeAccountsPayable    = "2000"
	CodeCustomerCredit     = "2100"
	CodeSalesRevenue       = "4000"
	CodeCostOfGoods        = "5000"
)

// Account is a node in a tenant's chart of accounts. Codes are unique per
// tenant; a child account must belong to the same tenant as its parent.
type Account struct {
	shared.CompanyAggregateRoot
	Code     string      `gorm:"type:varchar(20);not null;uniqueIndex:idx_accounts_company_code,priority:2"`
	Name     string      `gorm:"type:varchar(255);not null"`
	Type     AccountType `gorm:"type:varchar(20);not null;index"`
	ParentID *uuid.UUID  `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates an account in a tenant's chart
func NewAccount(companyID uuid.UUID, code, name string, accountType AccountType) (*Account, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if code == "" {
		return nil, shared.NewValidationError("INVALID_CODE", "Account code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Account name cannot be empty")
	}
	if !accountType.IsValid() {
		return nil, shared.NewValidationError("INVALID_TYPE", "Account type is not valid")
	}

	return &Account{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Code:                 code,
		Name:                 name,
		Type:                 accountType,
	}, nil
}

// SetParent links the account under a parent account. The parent must belong
// to the same tenant; a mismatch is a cross-tenant reference.
func (a *Account) SetParent(parent *Account) error {
	if parent == nil {
		return shared.NewValidationError("INVALID_PARENT", "Parent account cannot be nil")
	}
	if parent.CompanyID != a.CompanyID {
		return shared.ErrCrossTenantReference
	}
	if parent.ID == a.ID {
		return shared.NewValidationError("INVALID_PARENT", "Account cannot be its own parent")
	}
	a.ParentID = &parent.ID
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Rename changes the display name
func (a *Account) Rename(name string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Account name cannot be empty")
	}
	a.Name = name
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// IsDebitNormal reports whether debits increase this account's balance
func (a *Account) IsDebitNormal() bool {
	return a.Type == AccountTypeAsset || a.Type == AccountTypeExpense
}

// DefaultAccount describes one entry of the default chart seeded at
// tenant creation.
type DefaultAccount struct {
	Code string
	Name string
	Type AccountType
}

// DefaultChart returns the chart of accounts every new tenant starts with
func DefaultChart() []DefaultAccount {
	return []DefaultAccount{
		{CodeCashBank, "Cash/Bank", AccountTypeAsset},
		{CodeAccountsReceivable, "Accounts Receivable", AccountTypeAsset},
		{CodeAccountsPayable, "Accounts Payable", AccountTypeLiability},
		{CodeCustomerCredit, "Customer Credit", AccountTypeLiability},
		{CodeSalesRevenue, "Sales Revenue", AccountTypeRevenue},
		{CodeCostOfGoods, "Cost of Goods", AccountTypeExpense},
	}
}
