package baseline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harsahib2907/climate-policy-simulator/internal/sim"
)

func TestDefaultBaselineValid(t *testing.T) {
	t.Parallel()
	if err := Default().Validate(); err != nil {
		t.Fatalf("default baseline invalid: %v", err)
	}
}

func TestStaticProvider(t *testing.T) {
	t.Parallel()

	b, err := NewStaticProvider(Default()).Load()
	if err != nil {
		t.Fatal(err)
	}
	if b != Default() {
		t.Errorf("static provider changed the baseline: %+v", b)
	}

	bad := Default()
	bad.BaseRenewableShare = 3
	if _, err := NewStaticProvider(bad).Load(); !errors.Is(err, sim.ErrInvalidBaseline) {
		t.Errorf("expected InvalidBaseline, got %v", err)
	}
}

func TestFileProvider(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "baseline.yaml")
	content := `base_year: 2026
base_year_emissions_tons: 750000
base_vehicle_count: 4000000
base_renewable_share: 0.35
base_forest_cover_units: 80000
base_industrial_output_index: 90
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	b, err := NewFileProvider(path).Load()
	if err != nil {
		t.Fatal(err)
	}
	if b.BaseYearEmissionsTons != 750_000 {
		t.Errorf("emissions = %g, want 750000", b.BaseYearEmissionsTons)
	}
	if b.BaseRenewableShare != 0.35 {
		t.Errorf("renewable share = %g, want 0.35", b.BaseRenewableShare)
	}
}

func TestFileProviderMissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewFileProvider(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	if !errors.Is(err, sim.ErrDataUnavailable) {
		t.Errorf("expected DataUnavailable, got %v", err)
	}
}

func TestFileProviderRejectsGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "baseline.yaml")
	content := "base_year_emissions_tons: -5\nbase_renewable_share: 0.2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileProvider(path).Load()
	if !errors.Is(err, sim.ErrInvalidBaseline) {
		t.Errorf("expected InvalidBaseline, got %v", err)
	}
}

func TestParseInventory(t *testing.T) {
	t.Parallel()

	doc := `<?xml version="1.0"?>
<inventory>
  <base-year>2026</base-year>
  <indicator name="emissions_tons">1000000</indicator>
  <indicator name="vehicle_count">5000000</indicator>
  <indicator name="renewable_share">0.2</indicator>
  <indicator name="forest_cover_units">50000</indicator>
  <indicator name="industrial_output_index">100</indicator>
  <indicator name="coastline_km">25760</indicator>
</inventory>`

	b, err := parseInventory([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if b.BaseYear != 2026 {
		t.Errorf("base year = %d, want 2026", b.BaseYear)
	}
	if b.BaseYearEmissionsTons != 1_000_000 {
		t.Errorf("emissions = %g", b.BaseYearEmissionsTons)
	}
	if b.BaseVehicleCount != 5_000_000 {
		t.Errorf("vehicles = %d", b.BaseVehicleCount)
	}
}

func TestParseInventoryMissingIndicator(t *testing.T) {
	t.Parallel()

	doc := `<inventory><base-year>2026</base-year><indicator name="renewable_share">0.2</indicator></inventory>`
	_, err := parseInventory([]byte(doc))
	if !errors.Is(err, sim.ErrDataUnavailable) {
		t.Errorf("expected DataUnavailable, got %v", err)
	}
}

func TestParseInventoryBadValue(t *testing.T) {
	t.Parallel()

	doc := `<inventory><base-year>2026</base-year><indicator name="emissions_tons">lots</indicator></inventory>`
	_, err := parseInventory([]byte(doc))
	if !errors.Is(err, sim.ErrDataUnavailable) {
		t.Errorf("expected DataUnavailable, got %v", err)
	}
}

func TestParseInventoryNotXML(t *testing.T) {
	t.Parallel()

	if _, err := parseInventory([]byte("{json}")); !errors.Is(err, sim.ErrDataUnavailable) {
		t.Errorf("expected DataUnavailable, got %v", err)
	}
}
