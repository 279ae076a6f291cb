package brackets

import (
	"fmt"
	"strings"

	"github.com/Dosada05/matchday-predictor/models"
)

// TokenKind tags a parsed slot token.
type TokenKind int

const (
	TokenLiteral TokenKind = iota
	TokenGroupWinner
	TokenGroupRunnerUp
	TokenBestThird
)

const bestThirdToken = "best3rd"

// SlotToken is one side of a slot rule. Group is set for winner and runner-up
// tokens, Name for literals.
type SlotToken struct {
	Kind  TokenKind
	Group string
	Name  string
}

func (t SlotToken) String() string {
	switch t.Kind {
	case TokenGroupWinner:
		return "1" + t.Group
	case TokenGroupRunnerUp:
		return "2" + t.Group
	case TokenBestThird:
		return bestThirdToken
	}
	return t.Name
}

// SlotRule is a parsed template line.
type SlotRule struct {
	Slot string
	Home SlotToken
	Away SlotToken
}

// ParseSlotToken classifies a token. "1<g>" and "2<g>" are group references
// when g is a known group, or a single capital letter (then the group must
// exist). "best3rd" must match exactly. Anything else is a literal team name.
func ParseSlotToken(raw string, knownGroups map[string]bool) (SlotToken, error) {
	tok := strings.TrimSpace(raw)
	if tok == "" {
		return SlotToken{}, fmt.Errorf("%w: empty token", ErrInvalidSlotRule)
	}
	if tok == bestThirdToken {
		return SlotToken{Kind: TokenBestThird}, nil
	}
	if strings.HasPrefix(tok, bestThirdToken) {
		return SlotToken{}, fmt.Errorf("%w: %q (did you mean %s?)", ErrInvalidSlotRule, tok, bestThirdToken)
	}
	if len(tok) >= 2 && (tok[0] == '1' || tok[0] == '2') {
		group := tok[1:]
		if !knownGroups[group] {
			if len(group) == 1 && group[0] >= 'A' && group[0] <= 'Z' {
				return SlotToken{}, fmt.Errorf("%w: %q references group %s", ErrUnknownGroup, tok, group)
			}
			return SlotToken{Kind: TokenLiteral, Name: tok}, nil
		}
		kind := TokenGroupWinner
		if tok[0] == '2' {
			kind = TokenGroupRunnerUp
		}
		return SlotToken{Kind: kind, Group: group}, nil
	}
	return SlotToken{Kind: TokenLiteral, Name: tok}, nil
}

// ParseSlotRule parses "token vs token" for one slot.
func ParseSlotRule(slot, rule string, knownGroups map[string]bool) (SlotRule, error) {
	parts := strings.Split(rule, " vs ")
	if len(parts) != 2 {
		return SlotRule{}, fmt.Errorf("%w: slot %s: %q", ErrInvalidSlotRule, slot, rule)
	}
	home, err := ParseSlotToken(parts[0], knownGroups)
	if err != nil {
		return SlotRule{}, fmt.Errorf("slot %s: %w", slot, err)
	}
	away, err := ParseSlotToken(parts[1], knownGroups)
	if err != nil {
		return SlotRule{}, fmt.Errorf("slot %s: %w", slot, err)
	}
	return SlotRule{Slot: slot, Home: home, Away: away}, nil
}

// ParseTemplate parses a whole round-of-32 template, keeping its order.
func ParseTemplate(template []models.SlotConfig, knownGroups map[string]bool) ([]SlotRule, error) {
	if len(template) == 0 {
		return nil, fmt.Errorf("%w: round of 32 template is empty", ErrInvalidSlotRule)
	}
	seen := make(map[string]bool, len(template))
	rules := make([]SlotRule, 0, len(template))
	for _, sc := range template {
		if strings.TrimSpace(sc.Slot) == "" {
			return nil, fmt.Errorf("%w: rule %q has no slot id", ErrInvalidSlotRule, sc.Rule)
		}
		if seen[sc.Slot] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlot, sc.Slot)
		}
		seen[sc.Slot] = true

		r, err := ParseSlotRule(sc.Slot, sc.Rule, knownGroups)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}
