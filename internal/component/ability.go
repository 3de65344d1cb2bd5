package component

// AbilityKind enumerates every castable ability.
type AbilityKind int

const (
	AbilityFireball AbilityKind = iota + 1
)

var abilityNames = map[AbilityKind]string{
	AbilityFireball: "fireball",
}

func (k AbilityKind) String() string {
	if n, ok := abilityNames[k]; ok {
		return n
	}
	return "unknown"
}

// ParseAbilityKind maps a data-file name to an AbilityKind.
func ParseAbilityKind(s string) (AbilityKind, bool) {
	for k, n := range abilityNames {
		if n == s {
			return k, true
		}
	}
	return 0, false
}

// AbilitySlot is one ability with its own cooldown, counted in ticks.
type AbilitySlot struct {
	Kind          AbilityKind
	CooldownTicks int
	ReadyIn       int
}

type Abilities struct {
	Slots []AbilitySlot
}
