package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/kula-app/ggway/internal/jsonvalue"
)

// Field names of a giveaway entry that make up an output line
const (
	FieldTitle = "title"
	FieldWorth = "worth"
	FieldURL   = "gamerpower_url"
)

// Renderer prints one summary line per giveaway entry
type Renderer struct {
	out   io.Writer
	title *color.Color
	worth *color.Color
	url   *color.Color
}

// NewRenderer creates a renderer writing to out. ANSI styles are applied only when colorize is set.
func NewRenderer(out io.Writer, colorize bool) *Renderer {
	r := &Renderer{
		out:   out,
		title: color.New(color.Bold),
		worth: color.New(color.FgGreen),
		url:   color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{r.title, r.worth, r.url} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Render writes the document.
//
// An array renders each element in order, skipping null elements. Any other
// value, such as the single object returned for an id lookup, renders as one
// entry.
func (r *Renderer) Render(doc jsonvalue.Value) error {
	if !doc.IsArray() {
		return r.Entry(doc)
	}

	var err error
	doc.Each(func(_ int, entry jsonvalue.Value) {
		if err != nil || entry.Kind() == jsonvalue.Null {
			return
		}
		err = r.Entry(entry)
	})
	return err
}

// Entry writes "<title>, <worth>, <url>" for a single giveaway
func (r *Renderer) Entry(entry jsonvalue.Value) error {
	_, err := fmt.Fprintf(r.out, "%s, %s, %s\n",
		r.title.Sprint(entry.Get(FieldTitle).String()),
		r.worth.Sprint(entry.Get(FieldWorth).String()),
		r.url.Sprint(entry.Get(FieldURL).String()),
	)
	if err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	return nil
}
