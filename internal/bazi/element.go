// Package bazi holds the Four Pillars symbol tables (stems, branches and
// the five elements) and the pure rules computed over them: body-strength
// scoring, ten-god relations and favorable element selection.
package bazi

import (
	"fmt"
	"strings"
)

// Element is one of the five phases, ordered along the generating cycle.
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// numElements is the length of the generating cycle.
const numElements = 5

var elementNames = [numElements]string{"木", "火", "土", "金", "水"}

var elementEnglish = [numElements]string{"Wood", "Fire", "Earth", "Metal", "Water"}

// Elements returns the five elements in generating order.
func Elements() []Element {
	return []Element{Wood, Fire, Earth, Metal, Water}
}

// Valid reports whether e is one of the five defined elements.
func (e Element) Valid() bool { return e >= Wood && e <= Water }

// String returns the Chinese character for the element.
func (e Element) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// English returns the English name of the element.
func (e Element) English() string {
	if !e.Valid() {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementEnglish[e]
}

// Generates returns the element e produces (its successor in the cycle).
func (e Element) Generates() Element { return (e + 1) % numElements }

// GeneratedBy returns the sole element that produces e.
func (e Element) GeneratedBy() Element { return (e + numElements - 1) % numElements }

// Controls returns the element two steps ahead of e.
func (e Element) Controls() Element { return (e + 2) % numElements }

// ControlledBy returns the element that controls e.
func (e Element) ControlledBy() Element { return (e + numElements - 2) % numElements }

// ParseElement accepts either the Chinese character or the English name
// (case-insensitive).
func ParseElement(s string) (Element, error) {
	s = strings.TrimSpace(s)
	for i := range elementNames {
		if s == elementNames[i] || strings.EqualFold(s, elementEnglish[i]) {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("element %q: %w", s, ErrUnknownSymbol)
}

// MarshalText encodes the element as its Chinese character.
func (e Element) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("element %d: %w", int(e), ErrUnknownSymbol)
	}
	return []byte(e.String()), nil
}

// UnmarshalText is the inverse of MarshalText; English names are accepted too.
func (e *Element) UnmarshalText(b []byte) error {
	v, err := ParseElement(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ElementOf classifies any of the 22 stem and branch characters.
func ElementOf(symbol string) (Element, error) {
	if s, err := ParseStem(symbol); err == nil {
		return s.Element(), nil
	}
	if b, err := ParseBranch(symbol); err == nil {
		return b.Element(), nil
	}
	return 0, fmt.Errorf("symbol %q: %w", symbol, ErrUnknownSymbol)
}
