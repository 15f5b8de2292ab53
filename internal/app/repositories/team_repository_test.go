package repositories

import "testing"

func TestTeamNameRange(t *testing.T) {
	filter := teamNameRange("Byte")

	if filter["$gte"] != "Byte" {
		t.Fatalf("lower bound = %v", filter["$gte"])
	}
	upper, ok := filter["$lt"].(string)
	if !ok || upper <= "Byte" {
		t.Fatalf("upper bound %q must sort after the prefix", upper)
	}

	// Every name that starts with the prefix must fall inside the range,
	// and near misses outside it.
	for _, name := range []string{"Byte", "Byte Club", "Byteÿ"} {
		if name < "Byte" || name >= upper {
			t.Fatalf("%q should match the prefix range", name)
		}
	}
	for _, name := range []string{"Byt", "Bz", "byte"} {
		if name >= "Byte" && name < upper {
			t.Fatalf("%q should not match the prefix range", name)
		}
	}
}

func TestTeamNameRange_EmptyPrefixMatchesAll(t *testing.T) {
	filter := teamNameRange("")
	if filter["$gte"] != "" {
		t.Fatalf("lower bound = %v", filter["$gte"])
	}
	if upper := filter["$lt"].(string); upper == "" {
		t.Fatal("upper bound must be non-empty for an open search")
	}
}
