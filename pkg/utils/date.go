package utils

import (
	"log"
	"time"
)

// TimeNowIST returns the current time in Indian Standard Time, the
// timezone of the NSE/BSE exchanges this service analyzes.
func TimeNowIST() time.Time {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return time.Now().In(loc)
}
