package services

import (
	"strconv"
	"time"
)

func uintStr(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func timeStr(t time.Time) string {
	return t.Format(time.RFC3339)
}
