package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Element defaults mirror the external JSON shape: absent optional fields
// take these values during decode so a sparse generation response still
// yields a fully-populated tree.

func defaultTextBox() TextBox {
	return TextBox{
		Type:              ElementText,
		X:                 0.5,
		Y:                 0.5,
		Width:             9.0,
		Height:            1.0,
		FontName:          DefaultFont,
		FontSize:          18,
		FontColor:         "#333333",
		Alignment:         AlignLeft,
		VerticalAlignment: VAlignTop,
	}
}

func defaultImageElement() ImageElement {
	return ImageElement{
		Type:   ElementImage,
		X:      1.0,
		Y:      1.5,
		Width:  8.0,
		Height: 5.0,
	}
}

func defaultChartElement() ChartElement {
	return ChartElement{
		Type:      ElementChart,
		ChartType: ChartBar,
		X:         1.0,
		Y:         1.5,
		Width:     8.0,
		Height:    5.0,
	}
}

// UnmarshalJSON applies field defaults before decoding.
func (t *TextBox) UnmarshalJSON(data []byte) error {
	type plain TextBox
	tmp := plain(defaultTextBox())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*t = TextBox(tmp)
	t.Type = ElementText
	return nil
}

// UnmarshalJSON applies field defaults before decoding.
func (i *ImageElement) UnmarshalJSON(data []byte) error {
	type plain ImageElement
	tmp := plain(defaultImageElement())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*i = ImageElement(tmp)
	i.Type = ElementImage
	return nil
}

// UnmarshalJSON applies field defaults and decodes series values with
// json.Number so "20" round-trips as "20", not "20.000000".
func (c *ChartElement) UnmarshalJSON(data []byte) error {
	type plain ChartElement
	tmp := plain(defaultChartElement())
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&tmp); err != nil {
		return err
	}
	*c = ChartElement(tmp)
	c.Type = ElementChart
	return nil
}

// elementTag peeks at the discriminant field of an element object.
type elementTag struct {
	Type ElementType `json:"type"`
}

// UnmarshalJSON decodes the element union by its type tag and applies slide
// defaults. An unrecognized tag is a decode failure, not an ignored element.
func (s *Slide) UnmarshalJSON(data []byte) error {
	var tmp struct {
		Layout          LayoutType        `json:"layout"`
		BackgroundColor string            `json:"background_color"`
		Elements        []json.RawMessage `json:"elements"`
		SpeakerNotes    string            `json:"speaker_notes"`
	}
	tmp.Layout = LayoutTitleContent
	tmp.BackgroundColor = "#FFFFFF"
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	s.Layout = tmp.Layout
	s.BackgroundColor = tmp.BackgroundColor
	s.SpeakerNotes = tmp.SpeakerNotes
	s.Elements = make([]Element, 0, len(tmp.Elements))

	for idx, raw := range tmp.Elements {
		var tag elementTag
		if err := json.Unmarshal(raw, &tag); err != nil {
			return fmt.Errorf("element %d: %w", idx, err)
		}
		var el Element
		switch tag.Type {
		case ElementText:
			el = &TextBox{}
		case ElementImage:
			el = &ImageElement{}
		case ElementChart:
			el = &ChartElement{}
		default:
			return fmt.Errorf("element %d: unknown element type %q", idx, tag.Type)
		}
		if err := json.Unmarshal(raw, el); err != nil {
			return fmt.Errorf("element %d: %w", idx, err)
		}
		s.Elements = append(s.Elements, el)
	}
	return nil
}

// UnmarshalJSON applies root defaults before decoding.
func (p *Presentation) UnmarshalJSON(data []byte) error {
	type plain Presentation
	tmp := plain{
		Author: "deckgen",
		Theme:  DefaultTheme(),
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*p = Presentation(tmp)
	return nil
}
