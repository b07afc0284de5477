package seeds

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sirumah_backend/internals/helpers/dbtime"
	housing "sirumah_backend/internals/seeds/housing"
	users "sirumah_backend/internals/seeds/users"
)

// RunAllSeeds: user dulu (dibutuhkan sebagai pembuat/pelapor), lalu data perumahan.
func RunAllSeeds(db *gorm.DB, clock dbtime.Clock, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if clock == nil {
		clock = dbtime.SystemClock{}
	}

	//* User
	seeded, err := users.SeedUsersFromJSON(db, users.DataUsers, log.Named("seed.users"))
	if err != nil {
		return err
	}

	//* Perumahan
	return housing.SeedHousing(db, seeded, clock, log.Named("seed.housing"))
}
