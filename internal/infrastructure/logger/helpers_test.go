package logger

import "time"

const time2s = 2 * time.Second

func timeNowMinus(d time.Duration) time.Time {
	return time.Now().Add(-d)
}
