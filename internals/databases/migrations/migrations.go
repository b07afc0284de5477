// Package migrations mendaftarkan migrasi skema aplikasi.
package migrations

import (
	"gorm.io/gorm"

	housingModel "sirumah_backend/internals/features/housing/model"
	userModel "sirumah_backend/internals/features/users/user/model"
	"sirumah_backend/internals/databases/migration"
)

func createTable(model any) func(*gorm.DB) error {
	return func(tx *gorm.DB) error { return tx.Migrator().CreateTable(model) }
}

// block_number unik tanpa membedakan huruf besar/kecil.
const houseBlockIndex = "CREATE UNIQUE INDEX uq_houses_block_number_lower ON houses (LOWER(block_number))"

func createHouses(tx *gorm.DB) error {
	if err := tx.Migrator().CreateTable(&housingModel.House{}); err != nil {
		return err
	}
	return tx.Exec(houseBlockIndex).Error
}

func dropTable(model any) func(*gorm.DB) error {
	return func(tx *gorm.DB) error { return tx.Migrator().DropTable(model) }
}

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "2024_01_01_000001",
		Name:    "create_users_table",
		Up:      createTable(&userModel.UserModel{}),
		Down:    dropTable(&userModel.UserModel{}),
	})
	migration.RegisterMigration(&migration.Migration{
		Version: "2024_01_01_000004",
		Name:    "create_houses_table",
		Up:      createHouses,
		Down:    dropTable(&housingModel.House{}),
	})
	migration.RegisterMigration(&migration.Migration{
		Version: "2024_01_01_000005",
		Name:    "create_residents_table",
		Up:      createTable(&housingModel.Resident{}),
		Down:    dropTable(&housingModel.Resident{}),
	})
	migration.RegisterMigration(&migration.Migration{
		Version: "2024_01_01_000006",
		Name:    "create_payments_table",
		Up:      createTable(&housingModel.Payment{}),
		Down:    dropTable(&housingModel.Payment{}),
	})
	migration.RegisterMigration(&migration.Migration{
		Version: "2024_01_01_000007",
		Name:    "create_complaints_table",
		Up:      createTable(&housingModel.Complaint{}),
		Down:    dropTable(&housingModel.Complaint{}),
	})
}
