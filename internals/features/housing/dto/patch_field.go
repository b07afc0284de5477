package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"
	"unicode"

	"sirumah_backend/internals/helpers/apperror"
	"sirumah_backend/internals/helpers/dbtime"
)

/* =========================================================
   PATCH FIELD: tri-state (absent | null | value)
   ========================================================= */

type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(bytes.TrimSpace(b)) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func (p PatchField[T]) Get() (*T, bool) { return p.Value, p.Present }

// applyPtr: field nullable di input.
func applyPtr[T any](dst **T, p PatchField[T]) {
	if p.Present {
		*dst = p.Value
	}
}

// applyVal: field wajib di input; null menjadi zero value supaya validasi
// menolak dengan pesan "harus diisi".
func applyVal[T any](dst *T, p PatchField[T]) {
	if !p.Present {
		return
	}
	var zero T
	if p.Value == nil {
		*dst = zero
		return
	}
	*dst = *p.Value
}

/* =========================================================
   Decode body PATCH
   ========================================================= */

// DecodePatch mengurai body JSON ke dst dan mengembalikan daftar key yang
// dikirim (terurut, sudah dikanonikkan). Key tak dikenal tetap dilaporkan
// supaya policy bisa menolaknya.
func DecodePatch(body []byte, dst any) ([]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperror.NewValidation("body", "Format JSON tidak valid.")
	}
	seen := make(map[string]struct{}, len(raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		k = foldKey(k)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if err := json.Unmarshal(body, dst); err != nil {
		return nil, decodeError(err)
	}
	return keys, nil
}

// DecodeCreate: sama dengan DecodePatch; key yang dikirim dipakai policy
// untuk menolak field yang tidak boleh diisi role tsb.
func DecodeCreate(body []byte, dst any) ([]string, error) {
	return DecodePatch(body, dst)
}

// foldKey menyamakan key dengan cara encoding/json mencocokkan tag
// (case-insensitive, termasuk ſ → s dan K Kelvin → k). Semua tag DTO huruf
// kecil ASCII, jadi "Status" dan "ſtatus" dilaporkan sebagai "status".
func foldKey(k string) string {
	var b strings.Builder
	b.Grow(len(k))
	for _, r := range k {
		b.WriteRune(foldRune(r))
	}
	return b.String()
}

func foldRune(r rune) rune {
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f >= 'a' && f <= 'z' {
			return f
		}
	}
	return unicode.ToLower(r)
}

func decodeError(err error) error {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		field := te.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		return apperror.NewValidation(field, "Tipe data tidak valid.")
	}
	return apperror.NewValidation("body", "Format JSON tidak valid.")
}

/* =========================================================
   Helpers tanggal & string
   ========================================================= */

// parseDatePtr: "" / nil → nil. Format sudah divalidasi tag datetime.
func parseDatePtr(s *string) *time.Time {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t, err := dbtime.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &t
}

func trimPtr(pp **string) {
	if pp == nil || *pp == nil {
		return
	}
	v := strings.TrimSpace(**pp)
	if v == "" {
		*pp = nil
		return
	}
	*pp = &v
}

func datePtr(t *time.Time) *string { return dbtime.FormatDate(t) }

func dateStr(t time.Time) string { return t.Format(dbtime.DateLayout) }
