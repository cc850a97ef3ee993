package redisrepo

import "fmt"

const ns = "arkhive:v1"

func KeyEventList() string {
	return ns + ":events:list"
}

func KeyBookingList() string {
	return ns + ":bookings:list"
}

func KeyMonthAvailability(year, month0 int) string {
	return fmt.Sprintf("%s:availability:%04d-%02d", ns, year, month0)
}

// KeyRateLimit is the limiter prefix; the limiter appends the caller key
// (for example "ip:203.0.113.7").
func KeyRateLimit() string {
	return ns + ":rl"
}

func KeyIdemBooking(idemKey string) string {
	return fmt.Sprintf("%s:idem:bookings:%s", ns, idemKey)
}

func ChannelDataChanged() string {
	return ns + ":data:changed"
}
