package ncname

import "testing"

func TestValidate(t *testing.T) {
	valid := []string{"a", "_foo", "foo-bar", "foo.bar", "foo123", "fée"}
	invalid := []string{"", "1foo", "-foo", "foo:bar", "foo bar"}

	for _, s := range valid {
		if err := Validate(s); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", s, err)
		}
	}
	for _, s := range invalid {
		if err := Validate(s); err == nil {
			t.Errorf("Validate(%q) = nil, want error", s)
		}
	}
}
