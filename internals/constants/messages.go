package constants

import "fmt"

// Pesan sukses per entitas (ditampilkan apa adanya oleh frontend)
const (
	MsgHouseCreated = "Rumah berhasil ditambahkan."
	MsgHouseUpdated = "Data rumah berhasil diperbarui."
	MsgHouseDeleted = "Rumah berhasil dihapus."

	MsgResidentCreated = "Penghuni berhasil ditambahkan."
	MsgResidentUpdated = "Data penghuni berhasil diperbarui."
	MsgResidentDeleted = "Penghuni berhasil dihapus."

	MsgPaymentCreated = "Pembayaran berhasil ditambahkan."
	MsgPaymentUpdated = "Pembayaran berhasil diperbarui."
	MsgPaymentDeleted = "Pembayaran berhasil dihapus."

	MsgComplaintCreated = "Keluhan berhasil dikirim."
	MsgComplaintUpdated = "Keluhan berhasil diperbarui."
	MsgComplaintDeleted = "Keluhan berhasil dihapus."

	MsgUserDeleted = "User berhasil dihapus."
	MsgLoginOK     = "Login berhasil."
)

// Pesan error umum
const (
	ErrInvalidID        = "ID %s tidak valid."
	ErrInvalidLogin     = "Email atau password salah."
	ErrUserInactive     = "Akun tidak aktif."
	ErrUserReferenced   = "User masih tercatat sebagai %s, tidak bisa dihapus."
	ErrCannotDeleteSelf = "Tidak bisa menghapus akun sendiri."
)

func InvalidID(resource string) string { return fmt.Sprintf(ErrInvalidID, resource) }

// Paging
const (
	MaxPerPage = 100
)
