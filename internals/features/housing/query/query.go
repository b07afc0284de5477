// Package query menyusun query list: pembatasan baris dari policy, filter
// opsional, pencarian teks, urutan terbaru, dan paging.
package query

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"sirumah_backend/internals/helpers/apperror"
	"sirumah_backend/internals/helpers/dbtime"
	helper "sirumah_backend/internals/helpers"
	"sirumah_backend/internals/policy"
)

// Target mendeskripsikan satu tabel entitas yang bisa di-list.
type Target struct {
	Table    string
	Resource policy.Resource
	PerPage  int

	// kolom teks milik tabel yang dicari dengan LIKE
	SearchColumns []string
	// juga cocokkan houses.block_number lewat house_id
	SearchHouseBlock bool

	// filter kesetaraan yang diizinkan (nama query = nama kolom)
	EqualFilters []string
	BoolFilters  []string
	// kolom tanggal untuk date_from/date_to (kosong = tidak ada)
	DateColumn string
}

var (
	Houses = Target{
		Table:         "houses",
		Resource:      policy.ResourceHouse,
		PerPage:       12,
		SearchColumns: []string{"block_number", "address", "owner_name"},
		EqualFilters:  []string{"status", "house_type"},
	}
	Residents = Target{
		Table:            "residents",
		Resource:         policy.ResourceResident,
		PerPage:          15,
		SearchColumns:    []string{"name", "email", "phone"},
		SearchHouseBlock: true,
		EqualFilters:     []string{"relationship"},
		BoolFilters:      []string{"is_active"},
	}
	Payments = Target{
		Table:            "payments",
		Resource:         policy.ResourcePayment,
		PerPage:          15,
		SearchColumns:    []string{"description", "receipt_number"},
		SearchHouseBlock: true,
		EqualFilters:     []string{"status", "payment_type"},
		DateColumn:       "due_date",
	}
	Complaints = Target{
		Table:            "complaints",
		Resource:         policy.ResourceComplaint,
		PerPage:          15,
		SearchColumns:    []string{"title", "description"},
		SearchHouseBlock: true,
		EqualFilters:     []string{"status", "category", "priority"},
	}
)

func (t Target) col(name string) string { return t.Table + "." + name }

// Filters nilai mentah dari query string. Nilai kosong = tidak difilter.
type Filters struct {
	Equals   map[string]string
	Bools    map[string]string
	DateFrom string
	DateTo   string
	Search   string
}

// Echo: filter yang benar-benar dipakai, untuk dikembalikan ke klien.
func (f Filters) Echo() map[string]string {
	out := map[string]string{}
	for k, v := range f.Equals {
		if v = strings.TrimSpace(v); v != "" {
			out[k] = v
		}
	}
	for k, v := range f.Bools {
		if v = strings.TrimSpace(v); v != "" {
			out[k] = v
		}
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		out["search"] = s
	}
	if s := strings.TrimSpace(f.DateFrom); s != "" {
		out["date_from"] = s
	}
	if s := strings.TrimSpace(f.DateTo); s != "" {
		out["date_to"] = s
	}
	return out
}

/* ===============================
   Row scope
=================================*/

const ownHousesSQL = "SELECT house_id FROM residents WHERE user_id = ? AND is_active = ?"

// Scope menerapkan pembatasan baris policy ke db.
func Scope(t Target, rs policy.RowScope) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch rs.Kind {
		case policy.ScopeAll:
			return db
		case policy.ScopeOwnHouses:
			if t.Table == Houses.Table {
				return db.Where(t.col("id")+" IN ("+ownHousesSQL+")", rs.ActorID, true)
			}
			return db.Where(t.col("house_id")+" IN ("+ownHousesSQL+")", rs.ActorID, true)
		case policy.ScopeSelf:
			return db.Where(t.col("user_id")+" = ?", rs.ActorID)
		case policy.ScopeReported:
			return db.Where(t.col("reported_by")+" = ?", rs.ActorID)
		}
		return db.Where("1 = 0")
	}
}

// Base: query model t dengan pembatasan baris (tanpa filter user).
// Dipakai list dan stats supaya hitungannya sama.
func Base(ctx context.Context, db *gorm.DB, t Target, rs policy.RowScope) *gorm.DB {
	return db.WithContext(ctx).Table(t.Table).Scopes(Scope(t, rs))
}

/* ===============================
   Filters
=================================*/

// Apply menambahkan filter opsional. Tanggal/boolean yang tidak bisa dibaca
// menghasilkan ValidationError.
func Apply(db *gorm.DB, t Target, f Filters) (*gorm.DB, error) {
	verr := &apperror.ValidationError{}

	for _, key := range t.EqualFilters {
		if v := strings.TrimSpace(f.Equals[key]); v != "" {
			db = db.Where(t.col(key)+" = ?", v)
		}
	}
	for _, key := range t.BoolFilters {
		raw := strings.TrimSpace(f.Bools[key])
		if raw == "" {
			continue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			verr.Add(key, "Nilai filter tidak valid.")
			continue
		}
		db = db.Where(t.col(key)+" = ?", b)
	}

	if t.DateColumn != "" {
		if from, ok := parseDate(f.DateFrom, "date_from", verr); ok {
			db = db.Where(t.col(t.DateColumn)+" >= ?", from)
		}
		if to, ok := parseDate(f.DateTo, "date_to", verr); ok {
			db = db.Where(t.col(t.DateColumn)+" <= ?", to)
		}
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		sql, args := searchClause(t, s)
		db = db.Where(sql, args...)
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return db, nil
}

func parseDate(raw, field string, verr *apperror.ValidationError) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	d, err := dbtime.ParseDate(raw)
	if err != nil {
		verr.Add(field, "Format tanggal harus YYYY-MM-DD.")
		return time.Time{}, false
	}
	return d, true
}

// searchClause: OR atas kolom teks + block_number rumah terkait, case-insensitive.
func searchClause(t Target, s string) (string, []any) {
	like := helper.ContainsPattern(s)
	var (
		parts []string
		args  []any
	)
	for _, c := range t.SearchColumns {
		parts = append(parts, "LOWER(COALESCE("+t.col(c)+", '')) LIKE ? ESCAPE '\\'")
		args = append(args, like)
	}
	if t.SearchHouseBlock {
		parts = append(parts, t.col("house_id")+" IN (SELECT id FROM houses WHERE LOWER(block_number) LIKE ? ESCAPE '\\')")
		args = append(args, like)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

/* ===============================
   List
=================================*/

// List menjalankan count + halaman data ke dest (pointer ke slice model).
// prepare boleh nil, dipakai untuk Preload.
func List(ctx context.Context, db *gorm.DB, t Target, rs policy.RowScope, f Filters, p helper.Paging, dest any, prepare func(*gorm.DB) *gorm.DB) (int64, error) {
	q, err := Apply(Base(ctx, db, t, rs), t, f)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}

	q = q.Session(&gorm.Session{})
	if prepare != nil {
		q = prepare(q)
	}
	if err := q.
		Order(t.col("created_at") + " DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}
