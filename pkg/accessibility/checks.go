package accessibility

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ChandanKT-git/QA-Janitri/pkg/finding"
)

// ImageMissingAlt flags images without non-empty alt text.
func ImageMissingAlt(img Image) bool {
	return !img.HasAlt || strings.TrimSpace(img.Alt) == ""
}

// FieldMissingLabel flags controls with no label, aria-label,
// aria-labelledby or placeholder.
func FieldMissingLabel(f Field) bool {
	return !f.HasLabel &&
		strings.TrimSpace(f.AriaLabel) == "" &&
		strings.TrimSpace(f.LabelledBy) == "" &&
		strings.TrimSpace(f.Placeholder) == ""
}

// colorBucket classifies a CSS rgb()/rgba() color as light, dark or
// neither. Fully transparent backgrounds count as light, matching the
// usual white page background.
type colorBucket int

const (
	bucketNone colorBucket = iota
	bucketLight
	bucketDark
)

func classifyColor(css string) colorBucket {
	css = strings.TrimSpace(strings.ToLower(css))
	if css == "transparent" {
		return bucketLight
	}
	inner, ok := strings.CutPrefix(css, "rgba(")
	if !ok {
		inner, ok = strings.CutPrefix(css, "rgb(")
	}
	if !ok {
		return bucketNone
	}
	inner = strings.TrimSuffix(inner, ")")
	parts := strings.Split(inner, ",")
	if len(parts) < 3 {
		return bucketNone
	}
	var channels [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return bucketNone
		}
		channels[i] = v
	}
	if len(parts) >= 4 {
		alpha, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err == nil && alpha == 0 {
			return bucketLight
		}
	}
	brightness := (channels[0] + channels[1] + channels[2]) / 3
	switch {
	case brightness >= 200:
		return bucketLight
	case brightness <= 60:
		return bucketDark
	default:
		return bucketNone
	}
}

// PairLowContrast flags text elements whose foreground and background
// fall in the same light or dark extreme. A crude heuristic, not a
// WCAG ratio.
func PairLowContrast(c Contrast) bool {
	fg := classifyColor(c.Color)
	bg := classifyColor(c.Background)
	return fg != bucketNone && fg == bg
}

// HandlerWithoutKeyboard flags non-interactive elements that react to
// clicks but have no keyboard handler.
func HandlerWithoutKeyboard(h Handler) bool {
	return !h.Interactive && !h.HasKeyboard
}

// DocMissingLang flags documents with no lang attribute on html.
func DocMissingLang(s PageSnapshot) bool {
	return strings.TrimSpace(s.Lang) == ""
}

// DocMissingTitle flags documents with an empty title.
func DocMissingTitle(s PageSnapshot) bool {
	return strings.TrimSpace(s.Title) == ""
}

// TabKeyboardTrap flags interactive elements removed from the tab
// order with tabindex="-1".
func TabKeyboardTrap(t Tabbed) bool {
	return t.Interactive && t.TabIndex < 0
}

// TabPositiveIndex flags elements forcing a tab order.
func TabPositiveIndex(t Tabbed) bool {
	return t.TabIndex > 0
}

// Evaluate runs every check against the snapshot and returns the
// resulting findings.
func Evaluate(snap PageSnapshot) []finding.Finding {
	var findings []finding.Finding
	for _, img := range snap.Images {
		if ImageMissingAlt(img) {
			findings = append(findings, finding.New(finding.MissingAltText,
				fmt.Sprintf("image %q has no alt attribute", img.Src)))
		}
	}
	for _, f := range snap.Fields {
		if FieldMissingLabel(f) {
			findings = append(findings, finding.New(finding.MissingLabel,
				fmt.Sprintf("form field %q has no accessible name", f.Identifier)))
		}
	}
	for _, c := range snap.Contrasts {
		if PairLowContrast(c) {
			findings = append(findings, finding.New(finding.LowContrast,
				fmt.Sprintf("element %q has foreground %s and background %s in the same extreme", c.Identifier, c.Color, c.Background)))
		}
	}
	if DocMissingLang(snap) {
		findings = append(findings, finding.New(finding.MissingLang, "html element has no lang attribute"))
	}
	if DocMissingTitle(snap) {
		findings = append(findings, finding.New(finding.MissingTitle, "document title is empty"))
	}
	for _, h := range snap.Handlers {
		if HandlerWithoutKeyboard(h) {
			findings = append(findings, finding.New(finding.ClickWithoutKeyboard,
				fmt.Sprintf("%s %q handles clicks but not keyboard events", h.Tag, h.Identifier)))
		}
	}
	for _, tb := range snap.Tabbed {
		if TabKeyboardTrap(tb) {
			findings = append(findings, finding.New(finding.KeyboardTrap,
				fmt.Sprintf("interactive element %q is removed from the tab order", tb.Identifier)))
		}
		if TabPositiveIndex(tb) {
			findings = append(findings, finding.New(finding.PositiveTabIndex,
				fmt.Sprintf("element %q forces tab order with tabindex=%d", tb.Identifier, tb.TabIndex)))
		}
	}
	return findings
}

// WithinThreshold reports whether the finding count is at or under the
// tolerated maximum.
func WithinThreshold(findings []finding.Finding, max int) bool {
	return len(findings) <= max
}
