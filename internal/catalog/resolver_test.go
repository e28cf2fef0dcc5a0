package catalog

import "testing"

const resolverFixture = `[
	{"name": "Gdańsk", "lat": 54.3520, "lon": 18.6466},
	{"name": "Gdynia", "lat": 54.5189, "lon": 18.5305},
	{"name": "Sopot", "lat": 54.4416, "lon": 18.5601},
	{"name": "Warszawa", "lat": 52.2297, "lon": 21.0122},
	{"name": "Kraków", "lat": 50.0647, "lon": 19.9450},
	{"name": "Katowice", "lat": 50.2649, "lon": 19.0238},
	{"name": "Kalisz", "lat": 51.7611, "lon": 18.0910}
]`

func TestResolveExactMatchWinsOverSubstring(t *testing.T) {
	c := mustParse(t, resolverFixture)

	got := c.Resolve("Gdańsk")
	if len(got) != 1 || got[0].Name != "Gdańsk" {
		t.Fatalf("Resolve = %v, want exact singleton Gdańsk", got)
	}
}

func TestResolveTrimsInput(t *testing.T) {
	c := mustParse(t, resolverFixture)

	got := c.Resolve("  Sopot  ")
	if len(got) != 1 || got[0].Name != "Sopot" {
		t.Fatalf("Resolve = %v, want Sopot", got)
	}
}

func TestResolveSubstringBothDirections(t *testing.T) {
	c := mustParse(t, resolverFixture)

	// Input contained in candidate names.
	got := c.Resolve("Gd")
	if len(got) != 2 || got[0].Name != "Gdańsk" || got[1].Name != "Gdynia" {
		t.Fatalf("Resolve(Gd) = %v, want [Gdańsk Gdynia] in catalog order", got)
	}

	// Candidate name contained in input.
	got = c.Resolve("Warszawa Mokotów")
	if len(got) != 1 || got[0].Name != "Warszawa" {
		t.Fatalf("Resolve(Warszawa Mokotów) = %v, want Warszawa", got)
	}
}

func TestResolveNoCaseFolding(t *testing.T) {
	c := mustParse(t, resolverFixture)

	// Lowercase input matches nothing; falls back to the first entries.
	got := c.Resolve("warszawa")
	if len(got) != 5 {
		t.Fatalf("Resolve(warszawa) returned %d entries, want fallback of 5", len(got))
	}
	if got[0].Name != "Gdańsk" {
		t.Fatalf("fallback must start at catalog head, got %q", got[0].Name)
	}
}

func TestResolveFallbackNeverEmpty(t *testing.T) {
	c := mustParse(t, resolverFixture)

	got := c.Resolve("Xanadu")
	if len(got) != 5 {
		t.Fatalf("Resolve(Xanadu) returned %d entries, want 5", len(got))
	}

	small := mustParse(t, `[{"name": "Opole", "lat": 50.6751, "lon": 17.9213}]`)
	got = small.Resolve("Xanadu")
	if len(got) != 1 || got[0].Name != "Opole" {
		t.Fatalf("fallback on small catalog = %v, want [Opole]", got)
	}
}

func TestResolveCapsMatchesAtFive(t *testing.T) {
	c := mustParse(t, `[
		{"name": "Nowa Wieś 1", "lat": 50, "lon": 20},
		{"name": "Nowa Wieś 2", "lat": 50, "lon": 20.1},
		{"name": "Nowa Wieś 3", "lat": 50, "lon": 20.2},
		{"name": "Nowa Wieś 4", "lat": 50, "lon": 20.3},
		{"name": "Nowa Wieś 5", "lat": 50, "lon": 20.4},
		{"name": "Nowa Wieś 6", "lat": 50, "lon": 20.5}
	]`)

	got := c.Resolve("Nowa")
	if len(got) != 5 {
		t.Fatalf("Resolve returned %d matches, want cap of 5", len(got))
	}
}

func TestSuggestOrdersByEditDistance(t *testing.T) {
	c := mustParse(t, resolverFixture)

	got := c.Suggest("warszava", 3)
	if len(got) != 3 {
		t.Fatalf("Suggest returned %d entries, want 3", len(got))
	}
	if got[0].Name != "Warszawa" {
		t.Fatalf("closest suggestion = %q, want Warszawa", got[0].Name)
	}
}

func TestSuggestEmptyInput(t *testing.T) {
	c := mustParse(t, resolverFixture)

	if got := c.Suggest("   ", 3); got != nil {
		t.Fatalf("Suggest on blank input = %v, want nil", got)
	}
	if got := c.Suggest("Sopot", 0); got != nil {
		t.Fatalf("Suggest with n=0 = %v, want nil", got)
	}
}
