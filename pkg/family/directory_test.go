package family

import (
	"slices"
	"testing"
)

func TestDirectoryLookup(t *testing.T) {
	d := NewDirectory(simpsons(t))

	if d.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", d.Len())
	}

	tests := []struct {
		name   string
		wantID string
		wantOK bool
	}{
		{"Homer", "11111111A", true},
		{"Homer Simpson", "11111111A", true},
		{"Lisa", "88888888H", true},
		{"Ned", "", false},
		{"", "", false},
		{"homer", "", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := d.Lookup(tt.name)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tt.name, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}

	if n, ok := d.Name("77777777G"); !ok || n != "Bart" {
		t.Errorf("Name(bart) = %q, %v", n, ok)
	}
	want := []string{"Abraham", "Bart", "Homer", "Lisa", "Marge", "Mona"}
	if got := d.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestDirectoryDisambiguation(t *testing.T) {
	tr := NewTree()
	_ = tr.AddPerson(Person{ID: "1", Name: "Herb", Surname: "Powell"})
	_ = tr.AddPerson(Person{ID: "2", Name: "Herb", Surname: "Simpson"})
	_ = tr.AddPerson(Person{ID: "3", Name: "Jo", Surname: "Doe"})
	_ = tr.AddPerson(Person{ID: "4", Name: "Jo", Surname: "Doe"})
	d := NewDirectory(tr)

	if _, ok := d.Lookup("Herb"); ok {
		t.Error("ambiguous short name should not resolve")
	}
	if id, _ := d.Lookup("Herb Powell"); id != "1" {
		t.Errorf("Lookup(Herb Powell) = %q", id)
	}
	if id, _ := d.Lookup("Jo Doe (4)"); id != "4" {
		t.Errorf("Lookup(Jo Doe (4)) = %q", id)
	}
	if _, ok := d.Lookup("Jo Doe"); ok {
		t.Error("ambiguous full name should not resolve")
	}
	if n, _ := d.Name("2"); n != "Herb Simpson" {
		t.Errorf("Name(2) = %q", n)
	}
}
