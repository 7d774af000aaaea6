package stats

import (
	"fmt"
	"time"
)

// DayKey возвращает ключ календарного дня YYYY-MM-DD в зоне самого времени.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekKey возвращает ключ ISO-недели вида 2024-W01 (недели с понедельника,
// первая неделя содержит первый четверг года).
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// WeekStart возвращает понедельник ISO-недели по ключу WeekKey.
func WeekStart(key string, loc *time.Location) (time.Time, bool) {
	var year, week int
	if _, err := fmt.Sscanf(key, "%04d-W%02d", &year, &week); err != nil {
		return time.Time{}, false
	}
	if week < 1 || week > 53 {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	// 4 января всегда попадает в первую ISO-неделю.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	offset := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -offset+(week-1)*7)
	if y, w := monday.ISOWeek(); y != year || w != week {
		return time.Time{}, false
	}
	return monday, true
}

// weekdayIndex переводит день недели в нумерацию 0 — понедельник, 6 — воскресенье.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
