package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "strconv"
    "strings"
    "time"

    "github.com/iliyamo/meeting-room-booking/internal/model"
)

// Dialects understood by BookingRepo.  They differ only in placeholder
// syntax and in how generated IDs are returned.
const (
    DialectMySQL    = "mysql"
    DialectPostgres = "postgres"
)

const bookingColumns = `id, nama, subdir, no_hp, floor, ruang_meeting, tanggal_booking,
                        waktu_mulai, waktu_selesai, keterangan, created_at`

// BookingRepo provides CRUD operations for the bookings table.  Dates are
// bound as YYYY-MM-DD strings and times of day as HH:MM:SS strings so the
// same statements work on MySQL and Postgres.
type BookingRepo struct {
    db      *sql.DB
    dialect string
}

// NewBookingRepo returns a BookingRepo bound to db.  Unknown dialects fall
// back to MySQL placeholders.
func NewBookingRepo(db *sql.DB, dialect string) *BookingRepo {
    if dialect != DialectPostgres {
        dialect = DialectMySQL
    }
    return &BookingRepo{db: db, dialect: dialect}
}

// Create inserts b and returns the generated ID.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) (uint64, error) {
    const ins = `INSERT INTO bookings (nama, subdir, no_hp, floor, ruang_meeting, tanggal_booking,
                                       waktu_mulai, waktu_selesai, keterangan, created_at)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    createdAt := b.CreatedAt
    if createdAt.IsZero() {
        createdAt = time.Now()
    }
    args := []interface{}{
        b.Name, b.Contact, nullable(b.Phone), nullable(b.Floor), b.Room, model.FormatDate(b.Date),
        b.Start.String(), b.End.String(), b.Note, createdAt.UTC(),
    }
    if r.dialect == DialectPostgres {
        var id int64
        if err := r.db.QueryRowContext(ctx, r.rebind(ins+" RETURNING id"), args...).Scan(&id); err != nil {
            return 0, fmt.Errorf("insert booking: %w", err)
        }
        return uint64(id), nil
    }
    res, err := r.db.ExecContext(ctx, ins, args...)
    if err != nil {
        return 0, fmt.Errorf("insert booking: %w", err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, fmt.Errorf("insert booking: %w", err)
    }
    return uint64(id), nil
}

// ListByRoomAndDate returns the bookings of one room on one date ordered by
// start time.
func (r *BookingRepo) ListByRoomAndDate(ctx context.Context, room string, date time.Time) ([]model.Booking, error) {
    q := `SELECT ` + bookingColumns + `
          FROM bookings
          WHERE ruang_meeting = ? AND tanggal_booking = ?
          ORDER BY waktu_mulai, id`
    rows, err := r.db.QueryContext(ctx, r.rebind(q), room, model.FormatDate(date))
    if err != nil {
        return nil, fmt.Errorf("list bookings by room and date: %w", err)
    }
    return collectBookings(rows)
}

// GetByID returns ErrNotFound when no booking has the given ID.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
    q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    b, err := scanBooking(r.db.QueryRowContext(ctx, r.rebind(q), id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return model.Booking{}, ErrNotFound
        }
        return model.Booking{}, fmt.Errorf("get booking %d: %w", id, err)
    }
    return b, nil
}

// Update overwrites every mutable column of booking id.  created_at is
// never touched.  The MySQL DSN built by database.MySQLDSN sets
// clientFoundRows so an unchanged row still counts as matched.
func (r *BookingRepo) Update(ctx context.Context, id uint64, b *model.Booking) error {
    const q = `UPDATE bookings
               SET nama = ?, subdir = ?, no_hp = ?, floor = ?, ruang_meeting = ?, tanggal_booking = ?,
                   waktu_mulai = ?, waktu_selesai = ?, keterangan = ?
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, r.rebind(q),
        b.Name, b.Contact, nullable(b.Phone), nullable(b.Floor), b.Room, model.FormatDate(b.Date),
        b.Start.String(), b.End.String(), b.Note, id,
    )
    if err != nil {
        return fmt.Errorf("update booking %d: %w", id, err)
    }
    return requireAffected(res)
}

// Delete removes booking id, returning ErrNotFound when it does not exist.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM bookings WHERE id = ?`), id)
    if err != nil {
        return fmt.Errorf("delete booking %d: %w", id, err)
    }
    return requireAffected(res)
}

// ListAll returns bookings matching filter ordered by date, start time and ID.
func (r *BookingRepo) ListAll(ctx context.Context, filter model.BookingFilter) ([]model.Booking, error) {
    var (
        where []string
        args  []interface{}
    )
    if room := strings.TrimSpace(filter.Room); room != "" {
        where = append(where, "ruang_meeting = ?")
        args = append(args, room)
    }
    if filter.From != nil {
        where = append(where, "tanggal_booking >= ?")
        args = append(args, model.FormatDate(*filter.From))
    }
    if filter.To != nil {
        where = append(where, "tanggal_booking <= ?")
        args = append(args, model.FormatDate(*filter.To))
    }
    q := `SELECT ` + bookingColumns + ` FROM bookings`
    if len(where) > 0 {
        q += ` WHERE ` + strings.Join(where, " AND ")
    }
    q += ` ORDER BY tanggal_booking, waktu_mulai, id`
    rows, err := r.db.QueryContext(ctx, r.rebind(q), args...)
    if err != nil {
        return nil, fmt.Errorf("list bookings: %w", err)
    }
    return collectBookings(rows)
}

// rebind rewrites ? placeholders to $1..$n for Postgres.
func (r *BookingRepo) rebind(q string) string {
    if r.dialect != DialectPostgres {
        return q
    }
    var b strings.Builder
    b.Grow(len(q) + 8)
    n := 0
    for i := 0; i < len(q); i++ {
        if q[i] == '?' {
            n++
            b.WriteByte('$')
            b.WriteString(strconv.Itoa(n))
            continue
        }
        b.WriteByte(q[i])
    }
    return b.String()
}

type rowScanner interface {
    Scan(dest ...interface{}) error
}

func scanBooking(s rowScanner) (model.Booking, error) {
    var (
        b                          model.Booking
        subdir, phone, floor, note sql.NullString
        date, createdAt            flexTime
    )
    if err := s.Scan(
        &b.ID, &b.Name, &subdir, &phone, &floor, &b.Room, &date,
        &b.Start, &b.End, &note, &createdAt,
    ); err != nil {
        return model.Booking{}, err
    }
    b.Contact = subdir.String
    b.Note = note.String
    if phone.Valid {
        p := phone.String
        b.Phone = &p
    }
    if floor.Valid {
        f := floor.String
        b.Floor = &f
    }
    b.Date = date.Time
    b.CreatedAt = createdAt.Time
    return b, nil
}

func collectBookings(rows *sql.Rows) ([]model.Booking, error) {
    defer rows.Close()
    bookings := []model.Booking{}
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, fmt.Errorf("scan booking: %w", err)
        }
        bookings = append(bookings, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return bookings, nil
}

func requireAffected(res sql.Result) error {
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

func nullable(s *string) interface{} {
    if s == nil {
        return nil
    }
    return *s
}

// flexTime scans DATE and TIMESTAMP columns whether the driver hands back
// time.Time (parseTime=true, pgx) or raw text.
type flexTime struct {
    Time time.Time
}

var flexLayouts = []string{
    time.RFC3339Nano,
    "2006-01-02 15:04:05.999999999-07:00",
    "2006-01-02 15:04:05.999999999",
    "2006-01-02 15:04:05",
    model.DateLayout,
}

func (f *flexTime) Scan(src interface{}) error {
    switch v := src.(type) {
    case nil:
        f.Time = time.Time{}
        return nil
    case time.Time:
        f.Time = v
        return nil
    case []byte:
        return f.parse(string(v))
    case string:
        return f.parse(v)
    }
    return fmt.Errorf("cannot scan %T into time", src)
}

func (f *flexTime) parse(s string) error {
    for _, layout := range flexLayouts {
        if t, err := time.Parse(layout, s); err == nil {
            f.Time = t
            return nil
        }
    }
    return fmt.Errorf("unrecognized time %q", s)
}
