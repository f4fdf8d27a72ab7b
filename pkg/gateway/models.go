package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// EntitySummary is the key of a demon or weapon as returned by a list endpoint.
// The same string is used as the path parameter of the matching detail lookup.
type EntitySummary string

// Field is a single labeled value of a detail record, in display order.
type Field struct {
	Label string // Message ID of the label (e.g. "DemonHP")
	Value string // Value exactly as decoded from the API
}

// Detail is implemented by every detail record the gateway decodes.
type Detail interface {
	DisplayName() string
	ImageURL() string
	Fields() []Field
}

// DemonDetail is the full record for one demon. All fields are opaque strings.
type DemonDetail struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HP          string `json:"hp"`
	Rank        string `json:"rank"`
	Speed       string `json:"speed"`
	Image       string `json:"image"`
}

func (d DemonDetail) DisplayName() string { return d.Name }
func (d DemonDetail) ImageURL() string    { return d.Image }

// Fields returns the five display fields in the order the detail screen shows them.
func (d DemonDetail) Fields() []Field {
	return []Field{
		{Label: "DemonName", Value: d.Name},
		{Label: "DemonHP", Value: d.HP},
		{Label: "DemonSpeed", Value: d.Speed},
		{Label: "DemonDescription", Value: d.Description},
		{Label: "DemonRank", Value: d.Rank},
	}
}

// WeaponDetail is the full record for one weapon. All fields are opaque strings.
type WeaponDetail struct {
	Name       string `json:"name"`
	Damage     string `json:"damage"`
	FireMode   string `json:"fire_mode"`
	Location   string `json:"location"`
	WeaponType string `json:"weapon_type"`
	AmmoType   string `json:"ammo_type"`
	Image      string `json:"image"`
}

func (w WeaponDetail) DisplayName() string { return w.Name }
func (w WeaponDetail) ImageURL() string    { return w.Image }

// Fields returns the six display fields in the order the detail screen shows them.
func (w WeaponDetail) Fields() []Field {
	return []Field{
		{Label: "WeaponName", Value: w.Name},
		{Label: "WeaponDamage", Value: w.Damage},
		{Label: "WeaponFireMode", Value: w.FireMode},
		{Label: "WeaponLocation", Value: w.Location},
		{Label: "WeaponType", Value: w.WeaponType},
		{Label: "WeaponAmmoType", Value: w.AmmoType},
	}
}

var (
	demonFields  = []string{"name", "description", "hp", "rank", "speed", "image"}
	weaponFields = []string{"name", "damage", "fire_mode", "location", "weapon_type", "ammo_type", "image"}
)

// UnmarshalJSON rejects records with missing, unknown or non-string fields.
func (d *DemonDetail) UnmarshalJSON(data []byte) error {
	values, err := decodeStrict(data, demonFields)
	if err != nil {
		return err
	}
	*d = DemonDetail{
		Name:        values["name"],
		Description: values["description"],
		HP:          values["hp"],
		Rank:        values["rank"],
		Speed:       values["speed"],
		Image:       values["image"],
	}
	return nil
}

// UnmarshalJSON rejects records with missing, unknown or non-string fields.
func (w *WeaponDetail) UnmarshalJSON(data []byte) error {
	values, err := decodeStrict(data, weaponFields)
	if err != nil {
		return err
	}
	*w = WeaponDetail{
		Name:       values["name"],
		Damage:     values["damage"],
		FireMode:   values["fire_mode"],
		Location:   values["location"],
		WeaponType: values["weapon_type"],
		AmmoType:   values["ammo_type"],
		Image:      values["image"],
	}
	return nil
}

// decodeSummaries checks that a list body is an array of strings. A nil raw
// means the body was null.
func decodeSummaries(raw []json.RawMessage) ([]EntitySummary, error) {
	if raw == nil {
		return nil, fmt.Errorf("expected array, got null")
	}
	out := make([]EntitySummary, len(raw))
	for i, msg := range raw {
		var s string
		if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) || json.Unmarshal(msg, &s) != nil {
			return nil, fmt.Errorf("element %d: expected string, got %s", i, string(msg))
		}
		out[i] = EntitySummary(s)
	}
	return out, nil
}

func decodeStrict(data []byte, fields []string) (map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("expected object, got null")
	}

	var missing []string
	values := make(map[string]string, len(fields))
	for _, name := range fields {
		msg, ok := raw[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		var s string
		dec := json.NewDecoder(bytes.NewReader(msg))
		if err := dec.Decode(&s); err != nil || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			return nil, fmt.Errorf("field %q: expected string, got %s", name, string(msg))
		}
		values[name] = s
		delete(raw, name)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}
	if len(raw) > 0 {
		unknown := make([]string, 0, len(raw))
		for name := range raw {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown fields: %s", strings.Join(unknown, ", "))
	}
	return values, nil
}
