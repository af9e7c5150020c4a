// Package accessibility runs heuristic page audits. One script capture
// produces a PageSnapshot; every check is a pure predicate over that
// snapshot, so classification is testable against fixtures.
package accessibility

// Image is the alt-text-relevant shape of one img element.
type Image struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	HasAlt bool   `json:"hasAlt"`
}

// Field is one non-hidden form control.
type Field struct {
	Identifier  string `json:"identifier"`
	HasLabel    bool   `json:"hasLabel"`
	AriaLabel   string `json:"ariaLabel"`
	LabelledBy  string `json:"labelledBy"`
	Placeholder string `json:"placeholder"`
}

// Contrast pairs a text-bearing element's computed foreground and
// background.
type Contrast struct {
	Identifier string `json:"identifier"`
	Color      string `json:"color"`
	Background string `json:"background"`
}

// Handler is one element with a click handler, with its keyboard
// handler state.
type Handler struct {
	Identifier  string `json:"identifier"`
	Tag         string `json:"tag"`
	HasKeyboard bool   `json:"hasKeyboard"`
	Interactive bool   `json:"interactive"`
}

// Tabbed is one element with an explicit tabindex.
type Tabbed struct {
	Identifier  string `json:"identifier"`
	TabIndex    int    `json:"tabIndex"`
	Interactive bool   `json:"interactive"`
}

// PageSnapshot is everything the checks inspect, captured in one pass.
type PageSnapshot struct {
	Lang      string     `json:"lang"`
	Title     string     `json:"title"`
	Images    []Image    `json:"images"`
	Fields    []Field    `json:"fields"`
	Contrasts []Contrast `json:"contrasts"`
	Tabbed    []Tabbed   `json:"tabbed"`
	Handlers  []Handler  `json:"handlers"`
}

// snapshotScript captures the full PageSnapshot in the page context.
const snapshotScript = `() => {
  const ident = el => el.id || el.name || el.tagName.toLowerCase();
  const interactive = el => ['a','button','input','select','textarea'].includes(el.tagName.toLowerCase());
  return {
    lang: document.documentElement.getAttribute('lang') || '',
    title: document.title || '',
    images: Array.from(document.querySelectorAll('img')).map(img => ({
      src: img.getAttribute('src') || '',
      alt: img.getAttribute('alt') || '',
      hasAlt: img.hasAttribute('alt')
    })),
    fields: Array.from(document.querySelectorAll("input:not([type='hidden']), select, textarea")).map(f => ({
      identifier: ident(f),
      hasLabel: (f.id && !!document.querySelector("label[for='" + f.id + "']")) || !!f.closest('label'),
      ariaLabel: f.getAttribute('aria-label') || '',
      labelledBy: f.getAttribute('aria-labelledby') || '',
      placeholder: f.getAttribute('placeholder') || ''
    })),
    contrasts: Array.from(document.querySelectorAll('body *'))
      .filter(el => Array.from(el.childNodes).some(n => n.nodeType === 3 && n.textContent.trim() !== ''))
      .slice(0, 200)
      .map(el => {
        const cs = window.getComputedStyle(el);
        return { identifier: ident(el), color: cs.color, background: cs.backgroundColor };
      }),
    tabbed: Array.from(document.querySelectorAll('[tabindex]')).map(el => ({
      identifier: ident(el),
      tabIndex: parseInt(el.getAttribute('tabindex'), 10) || 0,
      interactive: interactive(el)
    })),
    handlers: Array.from(document.querySelectorAll('body *'))
      .filter(el => el.onclick || el.hasAttribute('onclick'))
      .map(el => ({
        identifier: ident(el),
        tag: el.tagName.toLowerCase(),
        hasKeyboard: !!(el.onkeydown || el.onkeyup || el.onkeypress ||
          el.hasAttribute('onkeydown') || el.hasAttribute('onkeyup') || el.hasAttribute('onkeypress')),
        interactive: interactive(el)
      }))
  };
}`

// parseSnapshot decodes the loosely typed Evaluate result.
func parseSnapshot(raw any) PageSnapshot {
	m, ok := raw.(map[string]any)
	if !ok {
		return PageSnapshot{}
	}
	snap := PageSnapshot{
		Lang:  str(m, "lang"),
		Title: str(m, "title"),
	}
	for _, item := range list(m, "images") {
		snap.Images = append(snap.Images, Image{
			Src:    str(item, "src"),
			Alt:    str(item, "alt"),
			HasAlt: boolean(item, "hasAlt"),
		})
	}
	for _, item := range list(m, "fields") {
		snap.Fields = append(snap.Fields, Field{
			Identifier:  str(item, "identifier"),
			HasLabel:    boolean(item, "hasLabel"),
			AriaLabel:   str(item, "ariaLabel"),
			LabelledBy:  str(item, "labelledBy"),
			Placeholder: str(item, "placeholder"),
		})
	}
	for _, item := range list(m, "contrasts") {
		snap.Contrasts = append(snap.Contrasts, Contrast{
			Identifier: str(item, "identifier"),
			Color:      str(item, "color"),
			Background: str(item, "background"),
		})
	}
	for _, item := range list(m, "tabbed") {
		snap.Tabbed = append(snap.Tabbed, Tabbed{
			Identifier:  str(item, "identifier"),
			TabIndex:    integer(item, "tabIndex"),
			Interactive: boolean(item, "interactive"),
		})
	}
	for _, item := range list(m, "handlers") {
		snap.Handlers = append(snap.Handlers, Handler{
			Identifier:  str(item, "identifier"),
			Tag:         str(item, "tag"),
			HasKeyboard: boolean(item, "hasKeyboard"),
			Interactive: boolean(item, "interactive"),
		})
	}
	return snap
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolean(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func integer(m map[string]any, key string) int {
	switch n := m[key].(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

func list(m map[string]any, key string) []map[string]any {
	items, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if im, ok := item.(map[string]any); ok {
			out = append(out, im)
		}
	}
	return out
}
