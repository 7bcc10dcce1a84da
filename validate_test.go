package homie

// test the validate routine

import (
	"testing"
)

func TestValidate_0(t *testing.T) {
	// test a valid id
	i := "now-is-the-time-0"
	if err := validateID(i, false); err != nil {
		t.Errorf("validateID(%s) yields %v", i, err)
	}
}

func TestValidate_1(t *testing.T) {
	// upper case is an error, not lower-cased
	i := "now-Is-The-Time"
	if err := validateID(i, false); err == nil {
		t.Errorf("validateID(%s) accepted upper case", i)
	}
}

func TestValidate_2(t *testing.T) {
	// test invalid ids
	for _, i := range []string{"", "-lead", "now_is", "a/b", "a+b", "a#", "$name", "sp ace"} {
		if err := validateID(i, false); err == nil {
			t.Errorf("id %q was accepted", i)
		}
	}
}

func TestValidate_3(t *testing.T) {
	// attribute ids are only allowed when asked for
	if err := validateID("$name", true); err != nil {
		t.Errorf("attribute id rejected: %v", err)
	}
	if err := validateID("na$me", true); err == nil {
		t.Errorf("'$' accepted past the first character")
	}
}

func TestValidID(t *testing.T) {
	if !ValidID("switch1") || ValidID("Switch1") {
		t.Errorf("ValidID disagrees with validateID")
	}
}
