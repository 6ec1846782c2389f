package tree

import (
	"encoding/json"
	"fmt"
)

// UnmarshalJSON restores a Book from the JSON shape MarshalJSON produces,
// letting pre-parsed JSON input (C1's json_parsed kind) feed the dataset
// builder without going through the USX/USFM parsers.
func (b *Book) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      string            `json:"id"`
		Header  *string           `json:"header,omitempty"`
		Title   *string           `json:"title,omitempty"`
		Content []json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.ID = raw.ID
	b.Header = raw.Header
	b.Title = raw.Title
	b.Content = nil
	for _, rm := range raw.Content {
		item, err := unmarshalRootItem(rm)
		if err != nil {
			return err
		}
		b.Content = append(b.Content, item)
	}
	return nil
}

func tagOf(data []byte) (string, error) {
	var tagged struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return "", err
	}
	return tagged.Type, nil
}

func unmarshalRootItem(data []byte) (RootItem, error) {
	tag, err := tagOf(data)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "chapter":
		var raw struct {
			Number    int               `json:"number"`
			Content   []json.RawMessage `json:"content"`
			Footnotes []Footnote        `json:"footnotes"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		ch := &ChapterItem{Number: raw.Number, Footnotes: raw.Footnotes}
		for _, rm := range raw.Content {
			c, err := unmarshalChapterContent(rm)
			if err != nil {
				return nil, err
			}
			ch.Content = append(ch.Content, c)
		}
		return ch, nil
	case "heading":
		var raw struct {
			Content []string `json:"content"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return &RootHeadingItem{Content: raw.Content}, nil
	default:
		return nil, fmt.Errorf("tree: unknown root item type %q", tag)
	}
}

func unmarshalChapterContent(data []byte) (ChapterContent, error) {
	tag, err := tagOf(data)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "heading":
		var raw struct {
			Content []string `json:"content"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return &HeadingContent{Content: raw.Content}, nil
	case "line_break":
		return &LineBreakContent{}, nil
	case "hebrew_subtitle":
		var raw struct {
			Content []json.RawMessage `json:"content"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		items, err := unmarshalInlineItems(raw.Content)
		if err != nil {
			return nil, err
		}
		return &HebrewSubtitleContent{Content: items}, nil
	case "verse":
		var raw struct {
			Number  int               `json:"number"`
			Content []json.RawMessage `json:"content"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		items, err := unmarshalInlineItems(raw.Content)
		if err != nil {
			return nil, err
		}
		return &VerseContent{Number: raw.Number, Content: items}, nil
	default:
		return nil, fmt.Errorf("tree: unknown chapter content type %q", tag)
	}
}

func unmarshalInlineItems(raw []json.RawMessage) ([]InlineItem, error) {
	var items []InlineItem
	for _, rm := range raw {
		item, err := unmarshalInlineItem(rm)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func unmarshalInlineItem(data []byte) (InlineItem, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return PlainText(s), nil
	}
	var probe struct {
		NoteID *int    `json:"noteId"`
		Text   *string `json:"text"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	switch {
	case probe.NoteID != nil:
		var fr FootnoteReference
		if err := json.Unmarshal(data, &fr); err != nil {
			return nil, err
		}
		return fr, nil
	case probe.Text != nil:
		var tr TextRun
		if err := json.Unmarshal(data, &tr); err != nil {
			return nil, err
		}
		return tr, nil
	default:
		return nil, fmt.Errorf("tree: unrecognized inline item %s", string(data))
	}
}
