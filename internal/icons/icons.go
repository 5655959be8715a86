// Package icons resolve identificadores simbólicos de ícone. O
// catálogo espelha os nomes da biblioteca usada pela UI; nomes
// desconhecidos caem no ícone padrão.
package icons

import "sort"

// DefaultIcon ícone usado quando o nome não existe no catálogo.
const DefaultIcon = "Construction"

// catalog nomes reconhecidos. Inclui os ícones do catálogo padrão de
// especialidades mais os nomes comuns oferecidos no editor.
var catalog = map[string]struct{}{
	"Anchor":       {},
	"Axe":          {},
	"Bot":          {},
	"Briefcase":    {},
	"Brush":        {},
	"Building":     {},
	"Bug":          {},
	"Car":          {},
	"Construction": {},
	"Cpu":          {},
	"Drill":        {},
	"Droplet":      {},
	"Fan":          {},
	"Flame":        {},
	"Gem":          {},
	"Hammer":       {},
	"HardHat":      {},
	"Home":         {},
	"Key":          {},
	"Layers":       {},
	"Leaf":         {},
	"Lightbulb":    {},
	"Lock":         {},
	"Paintbrush":   {},
	"PaintRoller":  {},
	"Pickaxe":      {},
	"Pipette":      {},
	"Plug":         {},
	"Ruler":        {},
	"Scissors":     {},
	"ShieldCheck":  {},
	"Shovel":       {},
	"Sprout":       {},
	"Sun":          {},
	"Thermometer":  {},
	"Truck":        {},
	"Tv":           {},
	"User":         {},
	"UserCheck":    {},
	"VenetianMask": {},
	"Wind":         {},
	"Wrench":       {},
	"Zap":          {},
}

// Lookup devolve o identificador renderizável para o nome simbólico;
// nomes desconhecidos (ou vazios) caem no padrão.
func Lookup(name string) string {
	if _, ok := catalog[name]; ok {
		return name
	}
	return DefaultIcon
}

// Names lista ordenada dos nomes disponíveis.
func Names() []string {
	out := make([]string, 0, len(catalog))
	for name := range catalog {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
