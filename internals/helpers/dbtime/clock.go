// file: internals/helpers/dbtime/clock.go
package dbtime

import (
	"strings"
	"time"
)

// DateLayout dipakai untuk semua kolom bertipe DATE di request/response.
const DateLayout = "2006-01-02"

// Clock sumber waktu "sekarang". Service menerima Clock supaya
// transisi status bisa dites dengan waktu tetap.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock selalu mengembalikan waktu yang sama (untuk test / seeder).
type FixedClock struct{ T time.Time }

func (f FixedClock) Now() time.Time { return f.T }

var appLoc = defaultLocation()

func defaultLocation() *time.Location {
	if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		return loc
	}
	return time.UTC
}

// SetLocation mengganti zona aplikasi. Dipanggil sekali saat config dimuat.
func SetLocation(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	appLoc = loc
	return nil
}

// Location: zona aplikasi (default Asia/Jakarta, fallback UTC).
func Location() *time.Location { return appLoc }

// Today: tanggal hari ini di zona aplikasi, disimpan sebagai 00:00 UTC.
func Today(c Clock) time.Time {
	return DateOf(c.Now().In(Location()))
}

// DateOf membuang jam, hasilnya tengah malam UTC pada tanggal kalender t.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate menerima "YYYY-MM-DD" (atau RFC3339, diambil tanggalnya).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

func FormatDate(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// MonthRange: [awal bulan, awal bulan berikutnya) dari bulan kalender now
// di zona aplikasi.
func MonthRange(now time.Time) (time.Time, time.Time) {
	local := now.In(Location())
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, Location())
	return start, start.AddDate(0, 1, 0)
}
