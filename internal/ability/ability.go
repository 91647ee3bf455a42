// Package ability parses stored card-ability documents into the in-memory
// form the engine executes. Documents are JSON and are schema-validated by
// the content pipeline before they reach Parse; a document that fails to
// decode here is a content bug, surfaced as a load-time error and never
// tolerated at resolution time.
package ability

import (
	"encoding/json"
	"fmt"
)

// SpellSpeed is the priority tier governing which activations may respond
// to which. Speed 1 cannot chain; speed 3 can only be answered by speed 3.
type SpellSpeed int

const (
	Speed1 SpellSpeed = 1
	Speed2 SpellSpeed = 2
	Speed3 SpellSpeed = 3
)

// TargetSpec scopes which card instances an effect may act on. Owner is
// always relative to the acting player.
type TargetSpec struct {
	Owner     TargetOwner `json:"owner"`
	Zone      TargetZone  `json:"zone"`
	Count     int         `json:"count,omitempty"` // 0 = every candidate
	Selection Selection   `json:"selection"`
}

// Condition filters which cards a continuous bonus or a search applies to.
// Zero-valued fields match everything.
type Condition struct {
	Archetype string `json:"archetype,omitempty"`
	CardType  string `json:"cardType,omitempty"`
	MinLevel  int    `json:"minLevel,omitempty"`
	MaxLevel  int    `json:"maxLevel,omitempty"`
}

// IsZero reports whether the condition matches unconditionally.
func (c Condition) IsZero() bool {
	return c == Condition{}
}

// Effect is one parsed effect case. Type selects which executor runs it;
// the optional payload fields are only meaningful for their own case
// (Search for EffectSearch, Negate* for EffectNegate, and so on).
type Effect struct {
	Type       EffectType
	Trigger    Trigger
	Value      int
	Target     TargetSpec
	OPT        bool
	Continuous bool
	Duration   Duration

	// Continuous-effect applicability filter (modify_atk / modify_def).
	Condition Condition

	// EffectSearch payload.
	SearchCondition Condition
	SendTo          TargetZone

	// EffectNegate payload.
	NegateType       NegateType
	NegateAndDestroy bool

	// Display text only. Never interpreted.
	Description string
}

// Ability is a card's full parsed ability: an ordered effect list (array
// order is execution and priority order when several effects share a
// trigger), its spell speed, and whether it is a continuous card.
type Ability struct {
	Effects    []Effect
	SpellSpeed SpellSpeed
	Continuous bool
}

// Document is the raw JSON shape of a stored ability. It exists separately
// from Ability so the wire format can stay stable while the parsed form
// evolves, and so the content pipeline can generate a schema from it.
type Document struct {
	SpellSpeed   int              `json:"spellSpeed" jsonschema:"minimum=1,maximum=3"`
	IsContinuous bool             `json:"isContinuous,omitempty"`
	Effects      []EffectDocument `json:"effects" jsonschema:"minItems=1"`
}

// EffectDocument is the raw JSON shape of a single effect.
type EffectDocument struct {
	Type         EffectType `json:"type"`
	Trigger      Trigger    `json:"trigger,omitempty"`
	Value        int        `json:"value,omitempty"`
	Target       TargetSpec `json:"target,omitempty"`
	IsOPT        bool       `json:"isOPT,omitempty"`
	IsContinuous bool       `json:"isContinuous,omitempty"`
	Duration     Duration   `json:"duration,omitempty"`
	Condition    Condition  `json:"condition,omitempty"`

	SearchCondition Condition  `json:"searchCondition,omitempty"`
	SendTo          TargetZone `json:"sendTo,omitempty"`

	NegateType       NegateType `json:"negateType,omitempty"`
	NegateAndDestroy bool       `json:"negateAndDestroy,omitempty"`

	Description string `json:"description,omitempty"`
}

// Parse decodes a stored ability document. Effect order is preserved and no
// target references are resolved; targets bind against live board state at
// execution time.
func Parse(raw []byte) (*Ability, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode ability document: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument converts an already-decoded document.
func FromDocument(doc Document) (*Ability, error) {
	if doc.SpellSpeed < 1 || doc.SpellSpeed > 3 {
		return nil, fmt.Errorf("spell speed %d out of range 1-3", doc.SpellSpeed)
	}
	if len(doc.Effects) == 0 {
		return nil, fmt.Errorf("ability has no effects")
	}

	ab := &Ability{
		SpellSpeed: SpellSpeed(doc.SpellSpeed),
		Continuous: doc.IsContinuous,
		Effects:    make([]Effect, 0, len(doc.Effects)),
	}
	for i, ed := range doc.Effects {
		if ed.Type == EffectUnknown {
			return nil, fmt.Errorf("effect %d: missing type", i)
		}
		ab.Effects = append(ab.Effects, Effect{
			Type:             ed.Type,
			Trigger:          ed.Trigger,
			Value:            ed.Value,
			Target:           ed.Target,
			OPT:              ed.IsOPT,
			Continuous:       ed.IsContinuous,
			Duration:         ed.Duration,
			Condition:        ed.Condition,
			SearchCondition:  ed.SearchCondition,
			SendTo:           ed.SendTo,
			NegateType:       ed.NegateType,
			NegateAndDestroy: ed.NegateAndDestroy,
			Description:      ed.Description,
		})
	}
	return ab, nil
}

// MustParse is Parse for trusted built-in content. It panics on error, which
// is the intended fail-loud behavior for a broken bundled card set.
func MustParse(raw string) *Ability {
	ab, err := Parse([]byte(raw))
	if err != nil {
		panic(err)
	}
	return ab
}
