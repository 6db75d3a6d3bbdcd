package config

import (
    "fmt"
    "os"
    "strings"

    "github.com/iliyamo/meeting-room-booking/internal/service"
)

const (
    defaultRooms        = "Breakout Traction,Cozy 19.2"
    defaultRoomColors   = "Breakout Traction=#FF6B6B,Cozy 19.2=#4ECDC4"
    defaultFloors       = "19"
    defaultWorkingHours = "08:00-18:00"
)

// LoadBookingPolicy builds the booking form policy from the environment.
// WORKING_HOURS set to an empty value disables the working-hours bound;
// leaving it unset keeps the default window.
func LoadBookingPolicy() (service.Policy, error) {
    p := service.Policy{
        Rooms:           splitList(getenv("ROOMS", defaultRooms)),
        Floors:          splitList(getenv("FLOORS", defaultFloors)),
        RequirePhone:    envBool("REQUIRE_PHONE", false),
        NoteMinLength:   envInt("NOTE_MIN_LENGTH", 0),
        RejectPastDates: envBool("REJECT_PAST_DATES", true),
    }
    if len(p.Rooms) == 0 {
        return service.Policy{}, fmt.Errorf("ROOMS must list at least one room")
    }

    colors, err := parseRoomColors(getenv("ROOM_COLORS", defaultRoomColors))
    if err != nil {
        return service.Policy{}, err
    }
    p.RoomColors = colors

    hours := defaultWorkingHours
    if v, ok := os.LookupEnv("WORKING_HOURS"); ok {
        hours = v
    }
    if p.WorkingHours, err = service.ParseWindow(hours); err != nil {
        return service.Policy{}, err
    }

    if p.Mode, err = service.ParseValidationMode(os.Getenv("VALIDATION_MODE")); err != nil {
        return service.Policy{}, err
    }
    if p.NoteMinLength < 0 {
        p.NoteMinLength = 0
    }
    return p, nil
}

// parseRoomColors reads "room=#hex" pairs separated by commas.
func parseRoomColors(s string) (map[string]string, error) {
    colors := map[string]string{}
    for _, pair := range splitList(s) {
        room, color, ok := strings.Cut(pair, "=")
        room, color = strings.TrimSpace(room), strings.TrimSpace(color)
        if !ok || room == "" || !strings.HasPrefix(color, "#") {
            return nil, fmt.Errorf("ROOM_COLORS entry %q: expected room=#rrggbb", pair)
        }
        colors[room] = color
    }
    return colors, nil
}
