package builder

import (
	"errors"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-microsite/website"
)

var (
	// ErrUnknownColorKey indicates a palette slot outside website.ColorKeys.
	ErrUnknownColorKey = errors.New("builder: unknown color key")
	// ErrUnknownFontKey indicates a typography slot outside website.FontKeys.
	ErrUnknownFontKey = errors.New("builder: unknown font key")
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ColorPanel edits styles.colors.
type ColorPanel struct {
	shell *Shell
}

// Presets lists the available theme presets.
func (p *ColorPanel) Presets() []string {
	return website.PresetNames()
}

// ApplyPreset replaces the whole palette with the preset's.
func (p *ColorPanel) ApplyPreset(name string) error {
	_, err := p.shell.Update(func(doc website.Document) (website.Document, bool, error) {
		next, err := website.ApplyColorPreset(doc, name)
		if err != nil {
			return doc, false, err
		}
		next.Meta.UpdatedAt = p.shell.now().UTC()
		return next, true, nil
	})
	return err
}

// SetColor updates a single palette slot with a hex colour.
func (p *ColorPanel) SetColor(key website.ColorKey, value string) error {
	if err := validateColor(value); err != nil {
		return err
	}
	_, err := p.shell.Update(func(doc website.Document) (website.Document, bool, error) {
		colors, ok := doc.Styles.Colors.With(key, value)
		if !ok {
			return doc, false, fmt.Errorf("%w: %s", ErrUnknownColorKey, key)
		}
		doc.Styles.Colors = colors
		doc.Meta.UpdatedAt = p.shell.now().UTC()
		return doc, true, nil
	})
	return err
}

func validateColor(value string) error {
	err := validation.Errors{
		"value": validation.Validate(value,
			validation.Required,
			validation.Match(hexColor).Error("must be a hex colour such as #AABBCC"),
		),
	}.Filter()
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid colour").WithTextCode("COLOR_INVALID")
	}
	return nil
}

// FontPanel edits styles.fonts.
type FontPanel struct {
	shell *Shell
}

// ApplyPreset replaces the whole font set with the preset's.
func (p *FontPanel) ApplyPreset(name string) error {
	_, err := p.shell.Update(func(doc website.Document) (website.Document, bool, error) {
		next, err := website.ApplyFontPreset(doc, name)
		if err != nil {
			return doc, false, err
		}
		next.Meta.UpdatedAt = p.shell.now().UTC()
		return next, true, nil
	})
	return err
}

// SetFont updates a single typography slot.
func (p *FontPanel) SetFont(key website.FontKey, family string) error {
	err := validation.Errors{
		"family": validation.Validate(family, validation.Required, validation.Length(1, 100)),
	}.Filter()
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid font").WithTextCode("FONT_INVALID")
	}
	_, err = p.shell.Update(func(doc website.Document) (website.Document, bool, error) {
		fonts, ok := doc.Styles.Fonts.With(key, family)
		if !ok {
			return doc, false, fmt.Errorf("%w: %s", ErrUnknownFontKey, key)
		}
		doc.Styles.Fonts = fonts
		doc.Meta.UpdatedAt = p.shell.now().UTC()
		return doc, true, nil
	})
	return err
}
