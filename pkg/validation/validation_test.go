package validation

import (
	"testing"
	"time"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.org"}
	invalid := []string{"", "not-an-email", "@example.com", "user@", "user@host"}

	for _, e := range valid {
		if !ValidateEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}
	for _, e := range invalid {
		if ValidateEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestValidateDate(t *testing.T) {
	future := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	if !ValidateDate(future) {
		t.Errorf("expected %q to be valid", future)
	}

	for _, d := range []string{"", "2020-01-01", "15-02-2025", "not-a-date"} {
		if ValidateDate(d) {
			t.Errorf("expected %q to be invalid", d)
		}
	}
}

func TestValidateTimeSlot(t *testing.T) {
	if !ValidateTimeSlot("09:00 - 11:00") {
		t.Error("expected the first slot to be valid")
	}
	for _, s := range []string{"", "10:00", "09:00-11:00", "17:00 - 19:00"} {
		if ValidateTimeSlot(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestValidateWasteType(t *testing.T) {
	for _, w := range WasteTypes {
		if !ValidateWasteType(w) {
			t.Errorf("expected %q to be valid", w)
		}
	}
	if ValidateWasteType("Refrigerator") {
		t.Error("expected unknown category to be invalid")
	}
}

func TestValidateAddress(t *testing.T) {
	if !ValidateAddress("123 Green St, Eco City") {
		t.Error("expected a normal address to be valid")
	}
	if ValidateAddress("   ") || ValidateAddress("x") {
		t.Error("expected blank or tiny addresses to be invalid")
	}
}
