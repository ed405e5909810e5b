package services

import (
	"regexp"
	"strings"

	"scamtrap-lab/internal/domain/models"
)

// Extractor pulls financial and identity artifacts out of message text.
// It is a pure function of its input: no state is kept between calls.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

var (
	prefixedMobileRe = regexp.MustCompile(`(?:\+91|91|0)?[6-9]\d{9}`)
	digitRunRe       = regexp.MustCompile(`\d{9,18}`)
	bareMobileRe     = regexp.MustCompile(`^[6-9]\d{9}$`)
	ifscRe           = regexp.MustCompile(`(?i)[A-Z]{4}0[A-Z0-9]{6}`)
	upiRe            = regexp.MustCompile(`[A-Za-z0-9._-]{2,256}@[A-Za-z]{2,64}`)
	linkRe           = regexp.MustCompile(`(?i)(?:https?://[^\s]+|www\.[^\s]+|[^\s]*(?:bit\.ly|tinyurl)[^\s]*)`)
	nameRe           = regexp.MustCompile(`(?i:name is|officer|mr\.|mr|dr\.|manager)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
)

type spanKind int

const (
	spanMobile spanKind = iota
	spanAccount
)

// span is a candidate numeric token: where it sits in the text, its
// normalized value, and which category it resolved to.
type span struct {
	start, end int
	value      string
	kind       spanKind
}

// Extract scans one message and returns everything it found. Empty or
// absent text yields an all-empty result; it never fails.
func (e *Extractor) Extract(text string) models.ExtractedIntel {
	var intel models.ExtractedIntel
	if text == "" {
		return intel
	}

	spans := e.numericSpans(text)
	mobileSeen := make(map[string]bool)
	accountSeen := make(map[string]bool)
	for _, s := range spans {
		switch s.kind {
		case spanMobile:
			if !mobileSeen[s.value] {
				mobileSeen[s.value] = true
				intel.Mobiles = append(intel.Mobiles, s.value)
			}
		case spanAccount:
			if !accountSeen[s.value] {
				accountSeen[s.value] = true
				intel.Accounts = append(intel.Accounts, s.value)
			}
		}
	}

	if m := ifscRe.FindString(text); m != "" {
		intel.IFSC = strings.ToUpper(m)
	}
	if m := upiRe.FindString(text); m != "" {
		intel.UPI = m
	}
	intel.Links = linkRe.FindAllString(text, -1)
	if m := nameRe.FindStringSubmatch(text); m != nil {
		intel.Name = m[1]
	}

	return intel
}

// numericSpans runs the two candidate passes and resolves each digit
// run to exactly one category. Phase one claims prefixed mobile
// numbers and masks their full span so the generic pass cannot
// re-capture the same digits; phase two takes the remaining standalone
// digit runs and routes bare mobile-shaped tokens to the mobile set,
// everything else to accounts.
func (e *Extractor) numericSpans(text string) []span {
	var spans []span
	masked := []byte(text)

	for _, loc := range prefixedMobileRe.FindAllStringIndex(text, -1) {
		if !digitBounded(text, loc[0], loc[1]) {
			continue
		}
		full := text[loc[0]:loc[1]]
		spans = append(spans, span{
			start: loc[0],
			end:   loc[1],
			value: full[len(full)-10:],
			kind:  spanMobile,
		})
		for i := loc[0]; i < loc[1]; i++ {
			masked[i] = '#'
		}
	}

	maskedText := string(masked)
	for _, loc := range digitRunRe.FindAllStringIndex(maskedText, -1) {
		if !wordBounded(maskedText, loc[0], loc[1]) {
			continue
		}
		tok := maskedText[loc[0]:loc[1]]
		kind := spanAccount
		if bareMobileRe.MatchString(tok) {
			kind = spanMobile
		}
		spans = append(spans, span{start: loc[0], end: loc[1], value: tok, kind: kind})
	}

	return spans
}

// digitBounded reports whether the match at [start,end) is not part of
// a longer digit run. Standing in for the boundaries Go's regexp
// cannot express around variable-length prefixes. Mobile matching
// deliberately allows letter-adjacent digits ("ref9876543210" still
// carries a phone number).
func digitBounded(text string, start, end int) bool {
	if start > 0 && isDigit(text[start-1]) {
		return false
	}
	if end < len(text) && isDigit(text[end]) {
		return false
	}
	return true
}

// wordBounded requires the match to be a standalone token: generic
// digit runs glued to letters are reference codes, not account numbers.
func wordBounded(text string, start, end int) bool {
	if start > 0 && isWordChar(text[start-1]) {
		return false
	}
	if end < len(text) && isWordChar(text[end]) {
		return false
	}
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isWordChar(b byte) bool {
	return isDigit(b) || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
