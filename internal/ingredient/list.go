// Package ingredient holds the user-editable list of ingredient rows.
package ingredient

import (
	"fmt"
	"strings"

	apperrors "github.com/socialchef/leftovers/internal/errors"
)

// Record is one row of user input. All fields are free-form text.
type Record struct {
	Item     string `json:"item" yaml:"item"`
	Quantity string `json:"quantity" yaml:"quantity"`
	Unit     string `json:"unit" yaml:"unit"`
}

// Field names an editable column of a Record.
type Field string

const (
	FieldItem     Field = "item"
	FieldQuantity Field = "quantity"
	FieldUnit     Field = "unit"
)

// ParseField maps a form field name to a Field.
func ParseField(name string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(name))); f {
	case FieldItem, FieldQuantity, FieldUnit:
		return f, nil
	default:
		return "", apperrors.NewValidationError(
			fmt.Sprintf("unknown ingredient field %q", name),
			"UNKNOWN_FIELD",
			"Use one of item, quantity or unit.",
		)
	}
}

// List is an ordered sequence of records; insertion order is display order.
type List []Record

// NewList returns the list a fresh session starts with: one blank record.
func NewList() List {
	return List{{}}
}

// Add appends a blank record.
func (l *List) Add() {
	*l = append(*l, Record{})
}

// Remove deletes the record at index. The list may become empty.
func (l *List) Remove(index int) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	*l = append((*l)[:index], (*l)[index+1:]...)
	return nil
}

// Update sets one field of the record at index in place.
func (l List) Update(index int, field Field, value string) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	switch field {
	case FieldItem:
		l[index].Item = value
	case FieldQuantity:
		l[index].Quantity = value
	case FieldUnit:
		l[index].Unit = value
	default:
		_, err := ParseField(string(field))
		return err
	}
	return nil
}

// HasContent reports whether any record has a non-blank item after trimming.
// It drives whether generation is offered at all.
func (l List) HasContent() bool {
	for _, r := range l {
		if strings.TrimSpace(r.Item) != "" {
			return true
		}
	}
	return false
}

// AllItemsFilled reports whether every record has a non-empty item.
// Unlike HasContent it does not trim, so an item of "  " counts as filled.
func (l List) AllItemsFilled() bool {
	for _, r := range l {
		if r.Item == "" {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no backing array with l.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}

func (l List) checkIndex(index int) error {
	if index < 0 || index >= len(l) {
		return apperrors.NewValidationError(
			fmt.Sprintf("ingredient index %d out of range [0,%d)", index, len(l)),
			"INDEX_OUT_OF_RANGE",
			"Reload the form and try again.",
		)
	}
	return nil
}
