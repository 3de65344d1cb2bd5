package data

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/vampsurvivor/survivor/internal/component"
	"github.com/vampsurvivor/survivor/internal/physics"
)

// ErrUnknownArchetype is returned when a spawn names a template that was not loaded.
var ErrUnknownArchetype = errors.New("unknown archetype")

// Role decides which tag component a spawned entity receives.
type Role string

const (
	RolePlayer     Role = "player"
	RoleEnemy      Role = "enemy"
	RoleProjectile Role = "projectile"
	RoleProp       Role = "prop" // walls and other inert bodies
)

type SpriteDef struct {
	Asset string  `yaml:"asset"`
	Scale float64 `yaml:"scale"`
}

type BodyDef struct {
	Kind          string  `yaml:"kind"` // dynamic, kinematic, static
	Mass          float64 `yaml:"mass"`
	LinearDamping float64 `yaml:"linear_damping"`
	LockRotations bool    `yaml:"lock_rotations"`
}

type ColliderDef struct {
	HalfWidth    float64 `yaml:"half_width"`
	HalfHeight   float64 `yaml:"half_height"`
	OffsetX      float64 `yaml:"offset_x"`
	OffsetY      float64 `yaml:"offset_y"`
	Sensor       bool    `yaml:"sensor"`
	ActiveEvents bool    `yaml:"active_events"`
	Friction     float64 `yaml:"friction"`
	Elasticity   float64 `yaml:"elasticity"`
}

type AbilityDef struct {
	Kind     string        `yaml:"kind"`
	Cooldown time.Duration `yaml:"cooldown"`
}

// Archetype is a spawn template loaded from YAML.
type Archetype struct {
	Name      string        `yaml:"name"`
	Role      Role          `yaml:"role"`
	Sprite    SpriteDef     `yaml:"sprite"`
	Speed     float64       `yaml:"speed"`
	Health    float64       `yaml:"health"` // 0 = indestructible
	Damage    float64       `yaml:"damage"`
	Lifetime  time.Duration `yaml:"lifetime"` // 0 = lives until killed
	Body      BodyDef       `yaml:"body"`
	Collider  ColliderDef   `yaml:"collider"`
	Abilities []AbilityDef  `yaml:"abilities"`

	bodyKind     physics.BodyKind
	abilityKinds []component.AbilityKind
}

// BodyKind returns the parsed body kind.
func (a *Archetype) BodyKind() physics.BodyKind { return a.bodyKind }

// AbilityKind returns the parsed kind of ability i.
func (a *Archetype) AbilityKind(i int) component.AbilityKind { return a.abilityKinds[i] }

type archetypeFile struct {
	Archetypes []Archetype `yaml:"archetypes"`
}

// ArchetypeTable holds spawn templates indexed by name.
type ArchetypeTable struct {
	templates map[string]*Archetype
}

// LoadArchetypeTable loads archetypes.yaml.
func LoadArchetypeTable(path string) (*ArchetypeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archetypes: %w", err)
	}
	return ParseArchetypeTable(raw)
}

// ParseArchetypeTable decodes and validates archetype YAML. Every invalid
// entry is reported, not only the first.
func ParseArchetypeTable(raw []byte) (*ArchetypeTable, error) {
	var f archetypeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse archetypes: %w", err)
	}
	t := &ArchetypeTable{templates: make(map[string]*Archetype, len(f.Archetypes))}
	var errs error
	for i := range f.Archetypes {
		a := &f.Archetypes[i]
		if err := a.validate(); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if _, dup := t.templates[a.Name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("archetype %q: duplicate name", a.Name))
			continue
		}
		t.templates[a.Name] = a
	}
	if errs != nil {
		return nil, fmt.Errorf("validate archetypes: %w", errs)
	}
	return t, nil
}

func (a *Archetype) validate() error {
	var errs error
	if a.Name == "" {
		return errors.New("archetype without name")
	}
	switch a.Role {
	case RolePlayer, RoleEnemy, RoleProjectile, RoleProp:
	default:
		errs = multierr.Append(errs, fmt.Errorf("archetype %q: unknown role %q", a.Name, a.Role))
	}
	kind, ok := physics.ParseBodyKind(a.Body.Kind)
	if !ok {
		errs = multierr.Append(errs, fmt.Errorf("archetype %q: unknown body kind %q", a.Name, a.Body.Kind))
	}
	a.bodyKind = kind
	if a.Collider.HalfWidth <= 0 || a.Collider.HalfHeight <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("archetype %q: collider needs positive half extents", a.Name))
	}
	if a.Health < 0 || a.Speed < 0 || a.Damage < 0 || a.Lifetime < 0 {
		errs = multierr.Append(errs, fmt.Errorf("archetype %q: negative stat", a.Name))
	}
	if a.Sprite.Scale == 0 {
		a.Sprite.Scale = 1
	}
	a.abilityKinds = a.abilityKinds[:0]
	for _, ab := range a.Abilities {
		k, ok := component.ParseAbilityKind(ab.Kind)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("archetype %q: unknown ability %q", a.Name, ab.Kind))
		}
		if ab.Cooldown <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("archetype %q: ability %q needs a cooldown", a.Name, ab.Kind))
		}
		a.abilityKinds = append(a.abilityKinds, k)
	}
	return errs
}

// Get returns an archetype by name.
func (t *ArchetypeTable) Get(name string) (*Archetype, error) {
	a, ok := t.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
	}
	return a, nil
}

// Count returns the number of loaded archetypes.
func (t *ArchetypeTable) Count() int {
	return len(t.templates)
}
