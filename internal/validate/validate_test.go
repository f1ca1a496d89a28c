package validate

import (
	"testing"

	"shopforge/internal/domain"
)

func TestEmail(t *testing.T) {
	good := []string{"a@b.co", "user.name+tag@example.org", "  padded@example.com  "}
	for _, s := range good {
		if _, ok := Email(s); !ok {
			t.Errorf("Email(%q) rejected", s)
		}
	}
	bad := []string{"", "plain", "@no.local", "a@b", "a b@c.de"}
	for _, s := range bad {
		if _, ok := Email(s); ok {
			t.Errorf("Email(%q) accepted", s)
		}
	}
}

func TestPassword(t *testing.T) {
	if !Password("Passw0rd!") {
		t.Error("valid password rejected")
	}
	for _, s := range []string{"short1!", "nouppercase1!", "NOLOWERCASE1!", "NoDigits!!", "NoSymbol11"} {
		if Password(s) {
			t.Errorf("Password(%q) accepted", s)
		}
	}
}

func TestQty(t *testing.T) {
	cases := map[string]int{"3": 3, "0": 1, "-2": 1, "junk": 1, "999": 50, " 7 ": 7}
	for in, want := range cases {
		if got := Qty(in); got != want {
			t.Errorf("Qty(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestAddress(t *testing.T) {
	full := domain.ShippingAddress{
		FullName: "A B", Address: "1 St", City: "X", State: "Y",
		ZipCode: "22150", Country: "USA", Phone: "+1 555 0100",
	}
	if problems := Address(full); len(problems) != 0 {
		t.Fatalf("valid address flagged: %v", problems)
	}

	empty := Address(domain.ShippingAddress{})
	if len(empty) != 7 {
		t.Fatalf("want 7 missing-field problems, got %v", empty)
	}

	badZip := full
	badZip.ZipCode = "!!"
	if problems := Address(badZip); len(problems) != 1 {
		t.Fatalf("bad zip not flagged once: %v", problems)
	}

	badPhone := full
	badPhone.Phone = "call me"
	if problems := Address(badPhone); len(problems) != 1 {
		t.Fatalf("bad phone not flagged once: %v", problems)
	}
}

func TestEnumHelpers(t *testing.T) {
	if _, ok := PaymentMethod("PayPal"); !ok {
		t.Error("PayPal rejected")
	}
	if _, ok := PaymentMethod("IOU"); ok {
		t.Error("unknown payment method accepted")
	}
	if _, ok := Category("Books"); !ok {
		t.Error("Books rejected")
	}
	if _, ok := Category("Weapons"); ok {
		t.Error("unknown category accepted")
	}
	if st, ok := OrderStatus(" Shipped "); !ok || st != domain.StatusShipped {
		t.Errorf("Shipped not recognized: %v %v", st, ok)
	}
	if _, ok := OrderStatus("Lost"); ok {
		t.Error("unknown status accepted")
	}
}
