package domain

// RuleMode indica con quanta forza una regola di generazione viene applicata.
type RuleMode string

const (
	RuleModeHard RuleMode = "hard" // mai violata: i candidati vengono filtrati
	RuleModeSoft RuleMode = "soft" // violabile in mancanza di alternative, con deroga a registro
	RuleModeOff  RuleMode = "off"  // regola disattivata
)

// ParseRuleMode interpreta il valore salvato; qualunque valore sconosciuto
// ricade sulla modalità hard, come nel comportamento storico del gestionale.
func ParseRuleMode(value string) RuleMode {
	switch RuleMode(value) {
	case RuleModeHard, RuleModeSoft, RuleModeOff:
		return RuleMode(value)
	default:
		return RuleModeHard
	}
}

type RuleKey string

const (
	RuleMinSenior       RuleKey = "min_senior"
	RuleWeeklyCap       RuleKey = "weekly_cap"
	RuleSummerExclusion RuleKey = "summer_exclusion"
	RuleSpecialRotation RuleKey = "special_rotation"
)

// RuleConfig è la configurazione effettiva di una regola di generazione.
// Value è significativo solo per le regole che prevedono un valore numerico
// (oggi soltanto min_senior).
type RuleConfig struct {
	Mode  RuleMode `json:"mode"`
	Value *int     `json:"value,omitempty"`
}

type RuleDefinition struct {
	Key          RuleKey  `json:"key"`
	Label        string   `json:"label"`
	Description  string   `json:"description"`
	DefaultMode  RuleMode `json:"defaultMode"`
	HasValue     bool     `json:"hasValue"`
	DefaultValue int      `json:"defaultValue"`
	MinValue     int      `json:"minValue"`
	MaxValue     int      `json:"maxValue"`
}

// RuleDefinitions elenca le quattro regole configurabili del generatore,
// nell'ordine in cui vengono presentate all'amministratore.
var RuleDefinitions = []RuleDefinition{
	{
		Key:          RuleMinSenior,
		Label:        "Minimo SENIOR in squadra",
		Description:  "Numero minimo di vigili SENIOR nella squadra selezionata.",
		DefaultMode:  RuleModeHard,
		HasValue:     true,
		DefaultValue: 1,
		MinValue:     0,
		MaxValue:     4,
	},
	{
		Key:         RuleWeeklyCap,
		Label:       "Limite turni settimanali",
		Description: "Rispetta il limite di turni settimanali per ogni persona.",
		DefaultMode: RuleModeHard,
	},
	{
		Key:         RuleSummerExclusion,
		Label:       "Esclusione estiva dedicata",
		Description: "Esclude il vigile configurato da luglio e agosto.",
		DefaultMode: RuleModeHard,
	},
	{
		Key:         RuleSpecialRotation,
		Label:       "Rotazione autisti dedicata",
		Description: "Applica la rotazione speciale tra autista dedicato e autista collegato.",
		DefaultMode: RuleModeHard,
	},
}

// RuleDefinitionByKey ritorna la definizione della regola, se esiste.
func RuleDefinitionByKey(key RuleKey) (RuleDefinition, bool) {
	for _, def := range RuleDefinitions {
		if def.Key == key {
			return def, true
		}
	}
	return RuleDefinition{}, false
}

// DefaultRules costruisce la configurazione di fabbrica delle regole.
func DefaultRules() map[RuleKey]RuleConfig {
	rules := make(map[RuleKey]RuleConfig, len(RuleDefinitions))
	for _, def := range RuleDefinitions {
		cfg := RuleConfig{Mode: def.DefaultMode}
		if def.HasValue {
			v := def.DefaultValue
			cfg.Value = &v
		}
		rules[def.Key] = cfg
	}
	return rules
}

// MergeRulesWithDefaults sovrappone la configurazione salvata a quella di
// fabbrica: le regole mancanti restano al default, i valori mancanti delle
// regole con valore vengono reintegrati.
func MergeRulesWithDefaults(custom map[RuleKey]RuleConfig) map[RuleKey]RuleConfig {
	merged := DefaultRules()
	for _, def := range RuleDefinitions {
		cfg, ok := custom[def.Key]
		if !ok {
			continue
		}
		next := RuleConfig{Mode: cfg.Mode}
		if def.HasValue {
			if cfg.Value != nil {
				v := *cfg.Value
				next.Value = &v
			} else {
				v := def.DefaultValue
				next.Value = &v
			}
		}
		merged[def.Key] = next
	}
	return merged
}

// ForbiddenPair è una coppia di vigili da non mettere in squadra insieme.
type ForbiddenPair struct {
	ID      int64  `json:"id"`
	First   string `json:"first"`
	Second  string `json:"second"`
	Hard    bool   `json:"hard"`
	Version int32  `json:"-"`
}

// PreferredPair lega un autista a un vigile da includere (hard) o da
// privilegiare (soft) quando quell'autista guida.
type PreferredPair struct {
	ID         int64  `json:"id"`
	Driver     string `json:"driver"`
	CrewMember string `json:"crewMember"`
	Hard       bool   `json:"hard"`
	Version    int32  `json:"-"`
}
