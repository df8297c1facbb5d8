package validation

import (
	"regexp"
	"strings"
	"time"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// WasteTypes is the fixed set of accepted e-waste categories.
var WasteTypes = []string{
	"Desktop Computer",
	"Laptop",
	"Mobile Phone",
	"Tablet",
	"Monitor",
	"Television",
	"Printer",
	"Scanner",
	"Gaming Console",
	"Cables & Wires",
	"Battery",
	"Other Electronic Device",
}

// TimeSlots are the collection windows offered by the scheduler.
var TimeSlots = []string{
	"09:00 - 11:00",
	"11:00 - 13:00",
	"13:00 - 15:00",
	"15:00 - 17:00",
}

func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && emailRegex.MatchString(email) && len(email) <= 200
}

func ValidatePhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	return phone != "" && phoneRegex.MatchString(phone) && len(phone) <= 50
}

func ValidateName(name string) bool {
	name = strings.TrimSpace(name)
	return len(name) >= 2 && len(name) <= 200
}

func ValidatePassword(password string) bool {
	return len(password) >= 6 && len(password) <= 100
}

func ValidateAddress(address string) bool {
	address = strings.TrimSpace(address)
	return len(address) >= 5 && len(address) <= 500
}

// ValidateDate accepts a YYYY-MM-DD calendar date from tomorrow onward.
func ValidateDate(date string) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return d.After(today)
}

func ValidateTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if slot == s {
			return true
		}
	}
	return false
}

func ValidateWasteType(t string) bool {
	for _, w := range WasteTypes {
		if t == w {
			return true
		}
	}
	return false
}
