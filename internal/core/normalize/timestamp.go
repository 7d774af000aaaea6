package normalize

import (
	"strconv"
	"strings"
	"time"
)

// exportLayouts — форматы поля date без часового пояса.
var exportLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp разбирает дату сообщения. Дата без зоны трактуется как время в loc,
// дата со смещением приводится к loc. Если date не разбирается, используется date_unixtime.
// Второе значение false означает некорректную дату; текущее время никогда не подставляется.
func Timestamp(date, unixtime string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}

	date = strings.TrimSpace(date)
	if date != "" {
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
			if t, err := time.Parse(layout, date); err == nil {
				return t.In(loc), true
			}
		}
		for _, layout := range exportLayouts {
			if t, err := time.ParseInLocation(layout, date, loc); err == nil {
				return t, true
			}
		}
	}

	if unixtime = strings.TrimSpace(unixtime); unixtime != "" {
		if sec, err := strconv.ParseInt(unixtime, 10, 64); err == nil && sec > 0 {
			return time.Unix(sec, 0).In(loc), true
		}
	}

	return time.Time{}, false
}
