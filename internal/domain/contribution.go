package domain

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Recurrence is how often an extraordinary contribution repeats.
type Recurrence int

const (
	RecurrenceOnce Recurrence = iota
	RecurrenceQuarterly
	RecurrenceSemiannual
	RecurrenceAnnual
)

var recurrenceNames = map[Recurrence]string{
	RecurrenceOnce:       "once",
	RecurrenceQuarterly:  "quarterly",
	RecurrenceSemiannual: "semiannual",
	RecurrenceAnnual:     "annual",
}

// StepMonths returns the spacing between occurrences. Once has no step and returns 0.
func (r Recurrence) StepMonths() int {
	switch r {
	case RecurrenceQuarterly:
		return 3
	case RecurrenceSemiannual:
		return 6
	case RecurrenceAnnual:
		return 12
	default:
		return 0
	}
}

// IsValid reports whether r is one of the declared recurrences.
func (r Recurrence) IsValid() bool {
	_, ok := recurrenceNames[r]
	return ok
}

func (r Recurrence) String() string {
	if name, ok := recurrenceNames[r]; ok {
		return name
	}
	return fmt.Sprintf("recurrence(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r Recurrence) MarshalText() ([]byte, error) {
	name, ok := recurrenceNames[r]
	if !ok {
		return nil, fmt.Errorf("unknown recurrence %d", int(r))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value means once.
func (r *Recurrence) UnmarshalText(text []byte) error {
	parsed, err := ParseRecurrence(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRecurrence accepts the canonical names plus a few synonyms used by older saved scenarios.
func ParseRecurrence(s string) (Recurrence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "once", "one_off", "single":
		return RecurrenceOnce, nil
	case "quarterly":
		return RecurrenceQuarterly, nil
	case "semiannual", "semi_annual", "semiannually":
		return RecurrenceSemiannual, nil
	case "annual", "yearly", "annually":
		return RecurrenceAnnual, nil
	}
	return RecurrenceOnce, fmt.Errorf("unknown recurrence %q", s)
}

// EvolutionKind selects how a recurring contribution grows between occurrences.
type EvolutionKind int

const (
	EvolutionNone EvolutionKind = iota
	EvolutionPercentage
	EvolutionNominal
)

var evolutionNames = map[EvolutionKind]string{
	EvolutionNone:       "none",
	EvolutionPercentage: "percentage",
	EvolutionNominal:    "nominal",
}

// IsValid reports whether k is one of the declared evolution kinds.
func (k EvolutionKind) IsValid() bool {
	_, ok := evolutionNames[k]
	return ok
}

func (k EvolutionKind) String() string {
	if name, ok := evolutionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("evolution(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k EvolutionKind) MarshalText() ([]byte, error) {
	name, ok := evolutionNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown evolution kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EvolutionKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "none":
		*k = EvolutionNone
	case "percentage", "percent":
		*k = EvolutionPercentage
	case "nominal", "fixed":
		*k = EvolutionNominal
	default:
		return fmt.Errorf("unknown evolution kind %q", string(text))
	}
	return nil
}

// Evolution describes growth applied to occurrence k > 0 of a recurring contribution.
// Percentage grows geometrically by Amount percent, Nominal adds Amount per occurrence.
type Evolution struct {
	Kind   EvolutionKind
	Amount float64
}

// NoEvolution is the zero Evolution: every occurrence pays the base amount.
var NoEvolution = Evolution{}

// GrowByPercent returns a geometric evolution.
func GrowByPercent(pct float64) Evolution { return Evolution{Kind: EvolutionPercentage, Amount: pct} }

// GrowByAmount returns a linear evolution.
func GrowByAmount(amount float64) Evolution { return Evolution{Kind: EvolutionNominal, Amount: amount} }

// Evolving reports whether any growth applies.
func (e Evolution) Evolving() bool { return e.Kind != EvolutionNone }

// ExtraordinaryContribution is a one-off or recurring cash injection such as a
// 13th salary or a yearly bonus.
type ExtraordinaryContribution struct {
	ID          string
	AnchorMonth int // 1-12, month of the first occurrence
	Amount      float64
	Description string
	Recurrence  Recurrence
	Evolution   Evolution
}

// contributionRecord is the flat shape scenario stores persist.
type contributionRecord struct {
	ID              string        `json:"id" yaml:"id,omitempty"`
	AnchorMonth     int           `json:"anchor_month" yaml:"anchor_month"`
	Amount          float64       `json:"amount" yaml:"amount"`
	Description     string        `json:"description" yaml:"description,omitempty"`
	Recurrence      Recurrence    `json:"recurrence" yaml:"recurrence"`
	Evolving        bool          `json:"evolving" yaml:"evolving"`
	EvolutionAmount float64       `json:"evolution_amount" yaml:"evolution_amount,omitempty"`
	EvolutionKind   EvolutionKind `json:"evolution_kind" yaml:"evolution_kind,omitempty"`
}

func (c ExtraordinaryContribution) toRecord() contributionRecord {
	rec := contributionRecord{
		ID:          c.ID,
		AnchorMonth: c.AnchorMonth,
		Amount:      c.Amount,
		Description: c.Description,
		Recurrence:  c.Recurrence,
		Evolving:    c.Evolution.Evolving(),
	}
	if rec.Evolving {
		rec.EvolutionAmount = c.Evolution.Amount
		rec.EvolutionKind = c.Evolution.Kind
	}
	return rec
}

func (c *ExtraordinaryContribution) fromRecord(rec contributionRecord) {
	*c = ExtraordinaryContribution{
		ID:          rec.ID,
		AnchorMonth: rec.AnchorMonth,
		Amount:      rec.Amount,
		Description: rec.Description,
		Recurrence:  rec.Recurrence,
	}
	if !rec.Evolving {
		return
	}
	kind := rec.EvolutionKind
	if kind == EvolutionNone {
		// evolving records saved without a kind grow by percentage
		kind = EvolutionPercentage
	}
	c.Evolution = Evolution{Kind: kind, Amount: rec.EvolutionAmount}
}

// MarshalJSON implements json.Marshaler.
func (c ExtraordinaryContribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.toRecord())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *ExtraordinaryContribution) UnmarshalJSON(data []byte) error {
	var rec contributionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	c.fromRecord(rec)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c ExtraordinaryContribution) MarshalYAML() (interface{}, error) {
	return c.toRecord(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *ExtraordinaryContribution) UnmarshalYAML(value *yaml.Node) error {
	var rec contributionRecord
	if err := value.Decode(&rec); err != nil {
		return err
	}
	c.fromRecord(rec)
	return nil
}

// DecodeContributions parses the JSON array a scenario store keeps alongside the plan parameters.
func DecodeContributions(data []byte) ([]ExtraordinaryContribution, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	var out []ExtraordinaryContribution
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode contributions: %w", err)
	}
	return out, nil
}

// EncodeContributions is the inverse of DecodeContributions. A nil list encodes as [].
func EncodeContributions(extras []ExtraordinaryContribution) ([]byte, error) {
	if extras == nil {
		extras = []ExtraordinaryContribution{}
	}
	return json.Marshal(extras)
}
