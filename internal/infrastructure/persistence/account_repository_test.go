package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/clinicerp/backend/internal/domain/accounting"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockAccountRepository creates a GormAccountRepository with a mocked SQL connection
func newMockAccountRepository(t *testing.T) (*GormAccountRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormAccountRepository(gormDB), mock, mockDB
}

func TestGormAccountRepository_FindByCode(t *testing.T) {
	t.Run("finds account by code within company", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		accountID := uuid.New()
		companyID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "company_id", "code", "name", "type"}).
			AddRow(accountID, companyID, "1100", "Accounts Receivable", "asset")

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE company_id = \$1 AND code = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(companyID, "1100", 1).
			WillReturnRows(rows)

		account, err := repo.FindByCode(context.Background(), companyID, "1100")

		assert.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, "1100", account.Code)
		assert.Equal(t, accounting.AccountTypeAsset, account.Type)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown code", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE company_id = \$1 AND code = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(companyID, "9999", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		account, err := repo.FindByCode(context.Background(), companyID, "9999")

		assert.Nil(t, account)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAccountRepository_FindByIDForCompany(t *testing.T) {
	t.Run("scopes the lookup to the company", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		accountID := uuid.New()
		companyID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "company_id", "code", "name", "type"}).
			AddRow(accountID, companyID, "1000", "Cash/Bank", "asset")

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE company_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(companyID, accountID, 1).
			WillReturnRows(rows)

		account, err := repo.FindByIDForCompany(context.Background(), companyID, accountID)

		assert.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, accountID, account.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("does not leak another company's account", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		accountID := uuid.New()
		companyID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE company_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(companyID, accountID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		account, err := repo.FindByIDForCompany(context.Background(), companyID, accountID)

		assert.Nil(t, account)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAccountRepository_ExistsByCode(t *testing.T) {
	t.Run("returns true when the code is taken", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts" WHERE company_id = \$1 AND code = \$2`).
			WithArgs(companyID, "4000").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCode(context.Background(), companyID, "4000")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when the code is free", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts" WHERE company_id = \$1 AND code = \$2`).
			WithArgs(companyID, "6000").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByCode(context.Background(), companyID, "6000")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAccountRepository_FindAllForActor(t *testing.T) {
	t.Run("company actor only sees its own rows", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		actor := shared.NewActor(uuid.New(), companyID)

		rows := sqlmock.NewRows([]string{"id", "company_id", "code", "name", "type"}).
			AddRow(uuid.New(), companyID, "1000", "Cash/Bank", "asset")

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE company_id = \$1 ORDER BY created_at DESC`).
			WithArgs(companyID).
			WillReturnRows(rows)

		accounts, err := repo.FindAllForActor(context.Background(), actor, shared.Filter{})

		assert.NoError(t, err)
		assert.Len(t, accounts, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("super-admin is not restricted to a company", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "company_id", "code", "name", "type"}).
			AddRow(uuid.New(), uuid.New(), "1000", "Cash/Bank", "asset").
			AddRow(uuid.New(), uuid.New(), "1000", "Cash/Bank", "asset")

		mock.ExpectQuery(`SELECT \* FROM "accounts" ORDER BY created_at DESC`).
			WillReturnRows(rows)

		accounts, err := repo.FindAllForActor(context.Background(), shared.NewSuperAdmin(uuid.New()), shared.Filter{})

		assert.NoError(t, err)
		assert.Len(t, accounts, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("actor without a company matches nothing", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE 1 = 0 ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "code", "name", "type"}))

		accounts, err := repo.FindAllForActor(context.Background(), shared.Actor{UserID: uuid.New()}, shared.Filter{})

		assert.NoError(t, err)
		assert.Empty(t, accounts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAccountRepository_Save(t *testing.T) {
	t.Run("saves an account", func(t *testing.T) {
		repo, mock, mockDB := newMockAccountRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		account, err := accounting.NewAccount(companyID, "1000", "Cash/Bank", accounting.AccountTypeAsset)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "accounts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), account)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
