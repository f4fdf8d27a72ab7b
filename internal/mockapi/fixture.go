package mockapi

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BrandonKowalski/doomdex/pkg/gateway"
	"github.com/BrandonKowalski/doomdex/pkg/view"
)

//go:embed fixture.yaml
var defaultFixture []byte

// Demon is a fixture entry for /demons.
type Demon struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	HP          string `yaml:"hp"`
	Rank        string `yaml:"rank"`
	Speed       string `yaml:"speed"`
	Image       string `yaml:"image"`
}

func (d Demon) detail() gateway.DemonDetail {
	return gateway.DemonDetail{
		Name:        d.Name,
		Description: d.Description,
		HP:          d.HP,
		Rank:        d.Rank,
		Speed:       d.Speed,
		Image:       d.Image,
	}
}

// Weapon is a fixture entry for /weapons.
type Weapon struct {
	Key        string `yaml:"key"`
	Name       string `yaml:"name"`
	Damage     string `yaml:"damage"`
	FireMode   string `yaml:"fire_mode"`
	Location   string `yaml:"location"`
	WeaponType string `yaml:"weapon_type"`
	AmmoType   string `yaml:"ammo_type"`
	Image      string `yaml:"image"`
}

func (w Weapon) detail() gateway.WeaponDetail {
	return gateway.WeaponDetail{
		Name:       w.Name,
		Damage:     w.Damage,
		FireMode:   w.FireMode,
		Location:   w.Location,
		WeaponType: w.WeaponType,
		AmmoType:   w.AmmoType,
		Image:      w.Image,
	}
}

// Fixture is the data set the mock API serves, in list order.
type Fixture struct {
	Demons  []Demon  `yaml:"demons"`
	Weapons []Weapon `yaml:"weapons"`
}

// DefaultFixture returns the embedded data set.
func DefaultFixture() (*Fixture, error) {
	return ParseFixture(defaultFixture)
}

// LoadFixture reads a YAML fixture from path.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mockapi: read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes a YAML fixture, fills in missing keys from names and
// rejects duplicate keys.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("mockapi: parse fixture: %w", err)
	}

	seen := map[string]bool{}
	for i := range f.Demons {
		if f.Demons[i].Key == "" {
			f.Demons[i].Key = view.NormalizeKey(f.Demons[i].Name)
		}
		if err := unique(seen, "demon", f.Demons[i].Key); err != nil {
			return nil, err
		}
	}

	seen = map[string]bool{}
	for i := range f.Weapons {
		if f.Weapons[i].Key == "" {
			f.Weapons[i].Key = view.NormalizeKey(f.Weapons[i].Name)
		}
		if err := unique(seen, "weapon", f.Weapons[i].Key); err != nil {
			return nil, err
		}
	}

	return &f, nil
}

func unique(seen map[string]bool, kind, key string) error {
	if key == "" {
		return fmt.Errorf("mockapi: %s without key or name", kind)
	}
	if seen[key] {
		return fmt.Errorf("mockapi: duplicate %s key %q", kind, key)
	}
	seen[key] = true
	return nil
}
