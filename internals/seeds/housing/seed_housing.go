// Package housing mengisi data demo: rumah, penghuni, iuran bulanan, keluhan.
package housing

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	m "sirumah_backend/internals/features/housing/model"
	"sirumah_backend/internals/features/users/user/model"
	"sirumah_backend/internals/helpers/dbtime"
	"sirumah_backend/internals/policy"
)

const (
	houseCount        = 25
	occupiedHouses    = 15
	billedHouses      = 10
	complainingHouses = 8
	billingMonths     = 6
)

var (
	houseTypes      = []string{"Type 36", "Type 45", "Type 54", "Type 70"}
	complaintTitles = []string{
		"Lampu jalan mati", "Keran air bocor", "Pagar rusak", "Jalan berlubang",
		"Tempat sampah penuh", "Keamanan kurang", "Tetangga berisik",
	}
	seedCategories = []string{"maintenance", "security", "facility", "neighbor"}
	seedPriorities = []string{m.PriorityLow, m.PriorityMedium, m.PriorityHigh}
	seedStatuses   = []string{m.ComplaintOpen, m.ComplaintInProgress, m.ComplaintResolved}
)

type seeder struct {
	tx      *gorm.DB
	r       *rand.Rand
	today   time.Time
	manager model.UserModel
	owners  []model.UserModel
}

// SeedHousing dilewati kalau tabel houses sudah berisi. Semua insert dalam
// satu transaksi; rand dengan seed tetap supaya hasil bisa diulang.
func SeedHousing(db *gorm.DB, users []model.UserModel, clock dbtime.Clock, log *zap.Logger) error {
	var n int64
	if err := db.Model(&m.House{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		log.Info("data rumah sudah ada, seeder dilewati", zap.Int64("houses", n))
		return nil
	}

	s := seeder{r: rand.New(rand.NewPCG(42, 2024)), today: dbtime.Today(clock)}
	for _, u := range users {
		switch u.Role {
		case policy.HousingManager:
			s.manager = u
		case policy.Resident:
			s.owners = append(s.owners, u)
		}
	}
	if s.manager.ID == uuid.Nil || len(s.owners) == 0 {
		return fmt.Errorf("seeder butuh housing_manager dan minimal satu resident")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		s.tx = tx
		houses, err := s.houses()
		if err != nil {
			return err
		}
		occupants := map[uuid.UUID]m.Resident{}
		for i := 0; i < occupiedHouses && i < len(houses); i++ {
			res, err := s.occupy(&houses[i])
			if err != nil {
				return err
			}
			occupants[houses[i].ID] = res
		}
		for i := 0; i < billedHouses && i < occupiedHouses; i++ {
			if err := s.payments(houses[i]); err != nil {
				return err
			}
		}
		for i := 0; i < complainingHouses && i < occupiedHouses; i++ {
			if err := s.complaint(houses[i], occupants[houses[i].ID]); err != nil {
				return err
			}
		}
		log.Info("seeder perumahan selesai",
			zap.Int("houses", len(houses)),
			zap.Int("residents", len(occupants)),
		)
		return nil
	})
}

func (s *seeder) houses() ([]m.House, error) {
	out := make([]m.House, 0, houseCount)
	for i := 0; i < houseCount; i++ {
		block := fmt.Sprintf("%c-%02d", 'A'+i/5, i%5+1)
		land := decimal.NewFromInt(int64(60 + s.r.IntN(90)))
		building := land.Mul(decimal.NewFromFloat(0.6)).Round(2)
		price := decimal.NewFromInt(int64(350+s.r.IntN(650)) * 1_000_000)
		h := m.House{
			BlockNumber:  block,
			Address:      fmt.Sprintf("Jl. Kenanga Blok %s, Perumahan SiRumah", block),
			HouseType:    houseTypes[s.r.IntN(len(houseTypes))],
			LandArea:     land,
			BuildingArea: building,
			Status:       m.HouseAvailable,
			SellingPrice: &price,
			Bedrooms:     2 + s.r.IntN(3),
			Bathrooms:    1 + s.r.IntN(2),
		}
		if err := s.tx.Create(&h).Error; err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

// occupy: penghuni pemilik aktif + rumah jadi sold dengan data pemilik.
func (s *seeder) occupy(h *m.House) (m.Resident, error) {
	u := s.owners[s.r.IntN(len(s.owners))]
	moveIn := s.today.AddDate(0, 0, -s.r.IntN(700))
	phone := ""
	if u.Phone != nil {
		phone = *u.Phone
	}
	email := u.Email
	res := m.Resident{
		HouseID:      h.ID,
		UserID:       &u.ID,
		Name:         u.Name,
		Email:        &email,
		Phone:        phone,
		Relationship: m.RelationshipOwner,
		MoveInDate:   &moveIn,
		IsActive:     true,
	}
	if err := s.tx.Create(&res).Error; err != nil {
		return res, err
	}

	h.OwnerName, h.OwnerPhone = &res.Name, &res.Phone
	h.Status = m.HouseSold
	h.HandoverDate = &moveIn
	err := s.tx.Model(h).Updates(map[string]any{
		"owner_name":    res.Name,
		"owner_phone":   res.Phone,
		"status":        m.HouseSold,
		"handover_date": moveIn,
	}).Error
	return res, err
}

// payments: iuran bulanan 6 bulan terakhir, jatuh tempo akhir bulan.
func (s *seeder) payments(h m.House) error {
	for i := 0; i < billingMonths; i++ {
		monthStart := time.Date(s.today.Year(), s.today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		due := monthStart.AddDate(0, 1, -1)
		desc := fmt.Sprintf("Iuran pemeliharaan bulan %s", monthStart.Format("01/2006"))
		p := m.Payment{
			HouseID:     h.ID,
			PaymentType: "Iuran Bulanan",
			Amount:      decimal.NewFromInt(int64(100+s.r.IntN(201)) * 1000),
			DueDate:     due,
			Status:      m.PaymentPending,
			Description: &desc,
			CreatedBy:   s.manager.ID,
		}
		// 70% lunas; tanggal bayar dan pembayar selalu terisi bersama status paid
		if s.r.IntN(10) < 7 {
			paid := monthStart.AddDate(0, 0, 1+s.r.IntN(5))
			p.Status = m.PaymentPaid
			p.PaidDate = &paid
			p.PaidBy = &s.manager.ID
		} else if due.Before(s.today) {
			p.Status = m.PaymentOverdue
		}
		if err := p.SetHouseSnapshot(h); err != nil {
			return err
		}
		if err := s.tx.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) complaint(h m.House, res m.Resident) error {
	if res.UserID == nil || !res.IsActive {
		return nil
	}
	c := m.Complaint{
		HouseID:     h.ID,
		ReportedBy:  *res.UserID,
		Title:       complaintTitles[s.r.IntN(len(complaintTitles))],
		Description: "Mohon segera ditindaklanjuti oleh pengelola perumahan.",
		Category:    seedCategories[s.r.IntN(len(seedCategories))],
		Priority:    seedPriorities[s.r.IntN(len(seedPriorities))],
		Status:      seedStatuses[s.r.IntN(len(seedStatuses))],
	}
	if s.r.IntN(10) < 6 {
		c.AssignedTo = &s.manager.ID
	}
	if s.r.IntN(10) < 4 {
		cost := decimal.NewFromInt(int64(100+s.r.IntN(1901)) * 1000)
		c.EstimatedCost = &cost
	}
	if c.Status == m.ComplaintResolved {
		resolved := s.today.AddDate(0, 0, -s.r.IntN(30))
		resp := "Sudah ditangani oleh tim pemeliharaan."
		c.ResolvedDate, c.Response = &resolved, &resp
	} else if s.r.IntN(2) == 0 {
		target := s.today.AddDate(0, 0, 1+s.r.IntN(30))
		c.TargetResolutionDate = &target
	}
	if err := c.SetHouseSnapshot(h); err != nil {
		return err
	}
	return s.tx.Create(&c).Error
}
