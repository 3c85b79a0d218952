package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSS parses a small CSS subset: compound selectors of .class and #id parts
// (".btn.active", "#error-message"), comma-separated lists, and "key: value" declarations.
// Rules with combinators, pseudo-classes or other selector kinds are skipped, as are
// @rules. Later rules override earlier ones. Syntax errors skip the broken part; the first one
// is returned alongside everything that did parse.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	var firstErr error
	p := css.NewParser(parse.NewInputString(content), false)
	var open []*Rule // rules of the ruleset being read; nil when skipped
	atDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if p.HasParseError() {
				if firstErr == nil {
					firstErr = fmt.Errorf("ui: css: %w", p.Err())
				}
				continue
			}
			if err := p.Err(); err != io.EOF {
				return sheet, fmt.Errorf("ui: css: %w", err)
			}
			return sheet, firstErr
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			atDepth--
		case css.BeginRulesetGrammar:
			open = nil
			if atDepth > 0 {
				continue
			}
			for _, sel := range splitSelectors(p.Values()) {
				r, ok := parseSelector(sel)
				if ok {
					open = append(open, &r)
				}
			}
		case css.DeclarationGrammar:
			if len(open) == 0 {
				continue
			}
			key := string(data)
			val := joinTokens(p.Values())
			for _, r := range open {
				r.Props[key] = val
			}
		case css.EndRulesetGrammar:
			for _, r := range open {
				sheet.Rules = append(sheet.Rules, *r)
			}
			open = nil
		}
	}
}

// splitSelectors splits selector tokens on commas into trimmed selector strings.
func splitSelectors(tokens []css.Token) []string {
	var out []string
	var b strings.Builder
	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, s)
		}
		b.Reset()
	}
	for _, t := range tokens {
		if t.TokenType == css.CommaToken {
			flush()
			continue
		}
		b.Write(t.Data)
	}
	flush()
	return out
}

// parseSelector accepts a compound of .class and #id parts with no whitespace.
func parseSelector(sel string) (Rule, bool) {
	r := Rule{Selector: sel, Props: make(map[string]string)}
	if strings.ContainsAny(sel, " \t\n>+~:[*") {
		return r, false
	}
	for rest := sel; rest != ""; {
		kind := rest[0]
		if kind != '.' && kind != '#' {
			return r, false
		}
		rest = rest[1:]
		end := strings.IndexAny(rest, ".#")
		if end < 0 {
			end = len(rest)
		}
		name := rest[:end]
		if name == "" {
			return r, false
		}
		if kind == '.' {
			r.Classes = append(r.Classes, name)
		} else {
			if r.ID != "" && r.ID != name {
				return r, false
			}
			r.ID = name
		}
		rest = rest[end:]
	}
	return r, true
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}
