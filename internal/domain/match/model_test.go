package match

import (
	"testing"
	"time"
)

func TestCalendarDay(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	t.Run("truncates in utc by default", func(t *testing.T) {
		got := CalendarDay(time.Date(2026, 1, 12, 23, 59, 0, 0, time.UTC), nil)
		want := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("unexpected day: got=%s want=%s", got, want)
		}
	})

	t.Run("uses the configured location", func(t *testing.T) {
		got := CalendarDay(time.Date(2026, 1, 12, 20, 0, 0, 0, time.UTC), jakarta)
		want := time.Date(2026, 1, 13, 0, 0, 0, 0, jakarta)
		if !got.Equal(want) {
			t.Fatalf("unexpected day: got=%s want=%s", got, want)
		}
	})

	t.Run("same day scrapes collapse", func(t *testing.T) {
		a := CalendarDay(time.Date(2026, 1, 12, 1, 0, 0, 0, time.UTC), nil)
		b := CalendarDay(time.Date(2026, 1, 12, 22, 30, 0, 0, time.UTC), nil)
		if !a.Equal(b) {
			t.Fatalf("expected equal days, got %s and %s", a, b)
		}
	})
}
