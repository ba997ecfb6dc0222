package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30)
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// ToIST converts any time to IST
func ToIST(t time.Time) time.Time {
	return t.In(IST)
}

// Today returns today's date in IST formatted as an ISO date, the format
// invoice and item date fields are stored in.
func Today() string {
	return Now().Format(DateLayout)
}

// FormatDisplayDate converts a stored ISO date (2006-01-02) to the dd-MM-yyyy
// form used on the printed invoice. Unparseable input is returned as-is.
func FormatDisplayDate(isoDate string) string {
	t, err := time.ParseInLocation(DateLayout, isoDate, IST)
	if err != nil {
		return isoDate
	}
	return t.Format(DisplayDateLayout)
}

// Common layouts for IST formatting
const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "02-01-2006"
	DateTimeLayout    = "2006-01-02 15:04:05"
)
