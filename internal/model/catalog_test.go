package model

import "testing"

func testCatalog() PatternCatalog {
	return NewPatternCatalog(
		Pattern{Name: "Wonderland: Gold", SKU: "W-WON-GOL", SaleType: SaleTypeYard},
		Pattern{Name: "Megaflora: Rust", SKU: "W-MEG-RUS", SaleType: SaleTypeYard},
		Pattern{Name: "Grove Mural", SaleType: SaleTypePanel},
	)
}

func TestPatternCatalogFind(t *testing.T) {
	c := testCatalog()

	if c.Len() != 3 {
		t.Fatalf("expected 3 patterns, got %d", c.Len())
	}

	p := c.FindBySKU("w-meg-rus")
	if p == nil {
		t.Fatal("expected to find W-MEG-RUS case-insensitively")
	}
	if p.Name != "Megaflora: Rust" {
		t.Errorf("expected Megaflora: Rust, got %s", p.Name)
	}

	if c.FindBySKU("NOPE") != nil {
		t.Error("expected nil for unknown SKU")
	}

	if got := c.FindByName("Grove Mural"); got == nil || got.SaleType != SaleTypePanel {
		t.Errorf("expected to find Grove Mural panel pattern, got %+v", got)
	}
}

func TestPatternCatalogLookup(t *testing.T) {
	c := testCatalog()
	if p := c.Lookup("W-WON-GOL"); p == nil || p.Name != "Wonderland: Gold" {
		t.Errorf("lookup by SKU failed: %+v", p)
	}
	if p := c.Lookup("Grove Mural"); p == nil {
		t.Error("lookup by name failed")
	}
	if p := c.Lookup("missing"); p != nil {
		t.Errorf("expected nil, got %+v", p)
	}
}

func TestPatternCatalogSortedDoesNotMutate(t *testing.T) {
	c := testCatalog()
	sorted := c.Sorted()

	want := []string{"Grove Mural", "Megaflora: Rust", "Wonderland: Gold"}
	for i, name := range want {
		if sorted[i].Name != name {
			t.Errorf("sorted[%d] = %s, want %s", i, sorted[i].Name, name)
		}
	}
	if c.Patterns[0].Name != "Wonderland: Gold" {
		t.Error("Sorted must not reorder the catalog")
	}
}

func TestPatternCatalogDisplayNames(t *testing.T) {
	c := testCatalog()
	names := c.DisplayNames()
	want := []string{"Grove Mural", "Megaflora: Rust / W-MEG-RUS", "Wonderland: Gold / W-WON-GOL"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestPatternCatalogAdd(t *testing.T) {
	c := NewPatternCatalog()
	c.Add(Pattern{Name: "New", SKU: "N-1"})
	if c.Len() != 1 || c.FindBySKU("N-1") == nil {
		t.Error("Add did not store the pattern")
	}
}
