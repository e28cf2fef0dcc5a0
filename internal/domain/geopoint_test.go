package domain

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	cases := []struct {
		name string
		a, b GeoPoint
		want float64
	}{
		{
			name: "same point",
			a:    GeoPoint{Lat: 52.2297, Lon: 21.0122},
			b:    GeoPoint{Lat: 52.2297, Lon: 21.0122},
			want: 0,
		},
		{
			name: "equator 0.05 degrees longitude",
			a:    GeoPoint{Lat: 0, Lon: 0},
			b:    GeoPoint{Lat: 0, Lon: 0.05},
			want: 5.56,
		},
		{
			name: "warsaw to pruszkow",
			a:    GeoPoint{Lat: 52.2297, Lon: 21.0122},
			b:    GeoPoint{Lat: 52.1706, Lon: 20.8126},
			want: 15.11,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HaversineKm(tc.a, tc.b)
			if math.Abs(got-tc.want) > 0.01 {
				t.Fatalf("HaversineKm = %.4f, want %.2f +/- 0.01", got, tc.want)
			}

			back := HaversineKm(tc.b, tc.a)
			if math.Abs(got-back) > 1e-9 {
				t.Fatalf("distance not symmetric: %.9f vs %.9f", got, back)
			}
		})
	}
}

func TestPharmacyRecordAddMedication(t *testing.T) {
	rec := &PharmacyRecord{Name: "Apteka Centralna", Address: "ul. Polna 3, Warszawa"}

	rec.AddMedication("Euthyrox N 50")
	rec.AddMedication("Metformax 850")
	rec.AddMedication("Euthyrox N 50")

	if len(rec.Medications) != 2 {
		t.Fatalf("medications = %v, want 2 unique entries", rec.Medications)
	}
	if rec.Medications[0] != "Euthyrox N 50" || rec.Medications[1] != "Metformax 850" {
		t.Fatalf("medications out of first-confirmed order: %v", rec.Medications)
	}
	if !rec.HasMedication("Metformax 850") {
		t.Fatal("expected Metformax 850 to be recorded")
	}
	if rec.HasMedication("metformax 850") {
		t.Fatal("medication matching must be exact-string, not case folded")
	}
}
