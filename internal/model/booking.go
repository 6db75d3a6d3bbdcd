package model

import (
	"strings"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD form of a booking date.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a midnight time in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

// FormatDate returns the YYYY-MM-DD form of t.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// Booking is a reserved time interval for a meeting room on a given date.
//
// Fields map onto the `bookings` table:
//  ID        – bookings.id, assigned by the store and never reused.
//  Name      – bookings.nama, the requester.
//  Contact   – bookings.subdir, department or other free-text contact.
//  Phone     – bookings.no_hp (nullable).
//  Floor     – bookings.floor (nullable).
//  Room      – bookings.ruang_meeting.
//  Date      – bookings.tanggal_booking (date only).
//  Start/End – bookings.waktu_mulai / waktu_selesai, half-open [Start, End).
//  Note      – bookings.keterangan.
//  CreatedAt – bookings.created_at, immutable after creation.
type Booking struct {
	ID        uint64
	Name      string
	Contact   string
	Phone     *string
	Floor     *string
	Room      string
	Date      time.Time
	Start     Clock
	End       Clock
	Note      string
	CreatedAt time.Time
}

// DateString returns the booking date as YYYY-MM-DD.
func (b Booking) DateString() string { return FormatDate(b.Date) }

// BookingFilter narrows ListAll queries.  Zero values mean "no filter".
type BookingFilter struct {
	Room string
	From *time.Time
	To   *time.Time
}

// AdminCredential is the single admin account allowed to edit and delete
// bookings.  PasswordHash is a bcrypt hash.
type AdminCredential struct {
	Username     string
	PasswordHash string
}
