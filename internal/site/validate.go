package site

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the aggregate invariants. It is used on snapshots restored
// from the session store before they are handed back to a live view.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Structure, validation.By(validateStructure)),
		validation.Field(&c.Palette, validation.Required),
		validation.Field(&c.FontPair, validation.Required),
	)
}

func validateStructure(value any) error {
	sections, ok := value.([]Section)
	if !ok {
		return errors.New("must be a section list")
	}
	seen := make(map[Section]bool, len(sections))
	for _, s := range sections {
		if !s.IsKnown() {
			return validation.NewError("validation_section_unknown", fmt.Sprintf("unknown section %q", s))
		}
		if seen[s] {
			return validation.NewError("validation_section_duplicate", fmt.Sprintf("duplicate section %q", s))
		}
		seen[s] = true
	}
	return nil
}
