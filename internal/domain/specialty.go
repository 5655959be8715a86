package domain

// SpecialtyConfig especialidade do catálogo. Name é a chave única
// (case-sensitive); Icon é um identificador simbólico de ícone.
type SpecialtyConfig struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// DefaultSpecialties catálogo semeado na primeira execução.
var DefaultSpecialties = []SpecialtyConfig{
	{Name: "Pintor", Icon: "Paintbrush"},
	{Name: "Pedreiro", Icon: "HardHat"},
	{Name: "Marceneiro", Icon: "Hammer"},
	{Name: "Carpinteiro", Icon: "Hammer"},
	{Name: "Metalúrgico", Icon: "Drill"},
	{Name: "Soldador", Icon: "Drill"},
	{Name: "Bombeiro", Icon: "UserCheck"},
	{Name: "Gesseiro", Icon: "Layers"},
	{Name: "Retelhamento", Icon: "Building"},
	{Name: "Ar Condicionado", Icon: "Wind"},
	{Name: "Eletricista", Icon: "Zap"},
	{Name: "Engenheiro Eletricista", Icon: "UserCheck"},
	{Name: "Engenheiro de Gás", Icon: "UserCheck"},
	{Name: "Engenheiro Civil", Icon: "UserCheck"},
	{Name: "Niquelador", Icon: "Gem"},
	{Name: "Segurança Eletrônica", Icon: "ShieldCheck"},
	{Name: "Câmeras de Vigilância", Icon: "Tv"},
	{Name: "Piso vinílico", Icon: "Layers"},
	{Name: "Piso cerâmica", Icon: "Layers"},
	{Name: "Porcelanato líquido", Icon: "Layers"},
	{Name: "Steel Frame", Icon: "Building"},
	{Name: "Revestimento de pedra", Icon: "Gem"},
	{Name: "Lona tensionada", Icon: "VenetianMask"},
	{Name: "Lustres", Icon: "Lightbulb"},
	{Name: "Automação residencial", Icon: "Bot"},
}
