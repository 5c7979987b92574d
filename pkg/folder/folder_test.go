package folder

import "testing"

func TestDeriveID(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Urgent", "URGENT"},
		{"a b-c!", "ABC"},
		{"Q2 2024", "Q22024"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := DeriveID(tc.name); got != tc.want {
			t.Fatalf("DeriveID(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestValidate(t *testing.T) {
	f := &Folder{ID: "URGENT", Name: "Urgent"}
	if err := f.Validate(); err != nil {
		t.Fatalf("expected valid folder, got %v", err)
	}
	if err := (&Folder{Name: "x"}).Validate(); err == nil {
		t.Fatal("expected missing id error")
	}
	if err := (&Folder{ID: "X"}).Validate(); err == nil {
		t.Fatal("expected missing name error")
	}
}
