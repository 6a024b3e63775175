package astro

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewObjectAssignsLevels(t *testing.T) {
	obj := NewObject(CategoryGalaxy, "m31", "M31",
		T(3, "a"),
		T(6, "b"),
		T(12, "c"),
	)

	if obj.PowerNeeded != 3 {
		t.Errorf("PowerNeeded = %d, expected 3", obj.PowerNeeded)
	}
	if len(obj.Detail) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(obj.Detail))
	}
	for i, d := range obj.Detail {
		if d.Level != i {
			t.Errorf("tier %d has level %d", i, d.Level)
		}
	}
	if obj.Detail[2].DiscoveryText != "c" {
		t.Errorf("unexpected discovery text %q", obj.Detail[2].DiscoveryText)
	}
}

func TestObjectString(t *testing.T) {
	obj := NewObject(CategoryStar, "sirius", "Sirius", T(1, "x"), T(10, "y"))
	want := `"Sirius", a Star with 2 levels of observable detail`
	if obj.String() != want {
		t.Errorf("String() = %q, expected %q", obj.String(), want)
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if len(c.Objects()) != 3 {
		t.Errorf("expected 3 objects, got %d", len(c.Objects()))
	}

	eye, err := c.Telescope("eye")
	if err != nil {
		t.Fatalf("Telescope(eye) failed: %v", err)
	}
	if eye.MaxPower != 4 {
		t.Errorf("eye MaxPower = %d, expected 4", eye.MaxPower)
	}

	aliens, err := c.Object("aliens")
	if err != nil {
		t.Fatalf("Object(aliens) failed: %v", err)
	}
	if aliens.PowerNeeded != 7 || aliens.Category != CategoryAlienShip {
		t.Errorf("unexpected aliens object: %+v", aliens)
	}
}

func TestCatalogUnknownKey(t *testing.T) {
	c := Default()

	_, err := c.Telescope("hubble")
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	if !strings.Contains(err.Error(), "hubble") {
		t.Errorf("error should name the missing key: %v", err)
	}

	if _, err := c.Object("m42"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey for object, got %v", err)
	}
}

func TestTelescopesByPower(t *testing.T) {
	scopes := Default().TelescopesByPower()

	want := []string{"eye", "refractor_2in", "reflector_6in", "dobsonian_20in", "keck"}
	if len(scopes) != len(want) {
		t.Fatalf("expected %d telescopes, got %d", len(want), len(scopes))
	}
	for i, key := range want {
		if scopes[i].Key != key {
			t.Errorf("position %d: expected %s, got %s", i, key, scopes[i].Key)
		}
	}
}

func TestObjectsReturnsCopies(t *testing.T) {
	c := Default()
	objs := c.Objects()
	objs[0].Detail[0].DiscoveryText = "tampered"

	again, _ := c.Object(objs[0].Key)
	if again.Detail[0].DiscoveryText == "tampered" {
		t.Error("Objects() should not expose catalog internals")
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name       string
		objects    []Object
		telescopes []Telescope
	}{
		{
			name:    "no tiers",
			objects: []Object{NewObject(CategoryStar, "x", "X")},
		},
		{
			name: "duplicate object",
			objects: []Object{
				NewObject(CategoryStar, "x", "X", T(1, "")),
				NewObject(CategoryStar, "x", "X again", T(2, "")),
			},
		},
		{
			name:    "decreasing thresholds",
			objects: []Object{NewObject(CategoryStar, "x", "X", T(5, ""), T(2, ""))},
		},
		{
			name:    "unknown category",
			objects: []Object{NewObject(Category("comet"), "x", "X", T(1, ""))},
		},
		{
			name:       "zero power telescope",
			telescopes: []Telescope{{Key: "t", MaxPower: 0}},
		},
		{
			name:       "duplicate telescope",
			telescopes: []Telescope{{Key: "t", MaxPower: 1}, {Key: "t", MaxPower: 2}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.objects, tc.telescopes); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParseEmbeddedMatchesBuiltin(t *testing.T) {
	parsed, err := Parse(defaultCatalogYAML)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	builtin := Default()

	for _, want := range builtin.Objects() {
		got, err := parsed.Object(want.Key)
		if err != nil {
			t.Fatalf("embedded catalog missing %s: %v", want.Key, err)
		}
		if got.Name != want.Name || got.PowerNeeded != want.PowerNeeded || len(got.Detail) != len(want.Detail) {
			t.Errorf("embedded %s = %+v, builtin %+v", want.Key, got, want)
		}
	}
	for _, want := range builtin.TelescopesByPower() {
		got, err := parsed.Telescope(want.Key)
		if err != nil {
			t.Fatalf("embedded catalog missing telescope %s: %v", want.Key, err)
		}
		if got != want {
			t.Errorf("embedded telescope %+v, builtin %+v", got, want)
		}
	}
}

func TestLoadCatalogCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `
objects:
  - key: vega
    name: Vega
    category: star
    detail:
      - power: 2
        text: "Bright and blue."
telescopes:
  - key: binoculars
    name: Binoculars
    max_power: 5
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() failed: %v", err)
	}
	vega, err := c.Object("vega")
	if err != nil {
		t.Fatalf("Object(vega) failed: %v", err)
	}
	if vega.PowerNeeded != 2 {
		t.Errorf("vega PowerNeeded = %d, expected 2", vega.PowerNeeded)
	}
	if _, err := c.Telescope("binoculars"); err != nil {
		t.Errorf("Telescope(binoculars) failed: %v", err)
	}
}

func TestLoadCatalogMissingCustomPath(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing custom catalog")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("objects: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadCatalogTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	data := `
[[objects]]
key = "vega"
name = "Vega"
category = "star"

  [[objects.detail]]
  power = 2
  text = "Bright and blue."

  [[objects.detail]]
  power = 9
  text = "A dusty disk around Vega."

[[telescopes]]
key = "binoculars"
name = "Binoculars"
max_power = 5
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() failed: %v", err)
	}
	vega, err := c.Object("vega")
	if err != nil {
		t.Fatalf("Object(vega) failed: %v", err)
	}
	if len(vega.Detail) != 2 || vega.Detail[1].Level != 1 || vega.Detail[1].PowerNeeded != 9 {
		t.Errorf("unexpected vega detail: %+v", vega.Detail)
	}
	if _, err := c.Telescope("binoculars"); err != nil {
		t.Errorf("Telescope(binoculars) failed: %v", err)
	}
}

func TestParseTOMLInvalid(t *testing.T) {
	if _, err := ParseTOML([]byte("[[objects]\n")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadCatalogWarnsOnInvalidSearchFile(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(&buf))
	t.Cleanup(func() { log.SetDefault(prev) })

	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join("configs", "catalog.yaml"), []byte("objects: ["), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	c, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog() failed: %v", err)
	}
	if _, err := c.Object("sirius"); err != nil {
		t.Errorf("expected the embedded default catalog: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, filepath.Join("configs", "catalog.yaml")) {
		t.Errorf("warning should name the rejected file, got %q", out)
	}
	if strings.Contains(out, "catalog.toml") {
		t.Errorf("missing files should not be reported, got %q", out)
	}
}
