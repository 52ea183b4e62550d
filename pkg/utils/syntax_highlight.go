// Package utils provides utility functions for the isagen project.
package utils

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// Source languages supported by HighlightCode
type Language int

const (
	Language_Cpp Language = iota
	Language_Go
)

var (
	keywordColor      = color.New(color.FgMagenta, color.Bold)
	typeColor         = color.New(color.FgCyan)
	stringColor       = color.New(color.FgGreen)
	numberColor       = color.New(color.FgYellow)
	commentColor      = color.New(color.FgHiBlack)
	preprocessorColor = color.New(color.FgBlue)
	functionColor     = color.New(color.FgHiYellow)
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}

type languageRules struct {
	keywords     map[string]bool
	types        map[string]bool
	preprocessor bool
}

var rules = map[Language]languageRules{
	Language_Cpp: {
		keywords: wordSet(
			"auto", "break", "case", "class", "const", "constexpr", "continue", "default",
			"do", "else", "enum", "extern", "for", "if", "inline", "namespace", "return",
			"static", "struct", "switch", "using", "while", "nullptr", "true", "false",
		),
		types: wordSet(
			"void", "char", "int", "bool", "unsigned", "uint8_t", "size_t",
			"std", "string_view", "unordered_map",
		),
		preprocessor: true,
	},
	Language_Go: {
		keywords: wordSet(
			"break", "case", "const", "continue", "default", "defer", "else", "for",
			"func", "go", "if", "import", "map", "package", "range", "return", "struct",
			"switch", "type", "var", "nil", "true", "false",
		),
		types: wordSet(
			"bool", "byte", "int", "string", "uint8", "error", "any",
		),
	},
}

var (
	// Double quoted strings (handles escaped quotes)
	stringPattern = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
	// Single-line comments
	lineCommentPattern = regexp.MustCompile(`(?m)//.*$`)
	// Hex and decimal numbers
	numberPattern = regexp.MustCompile(`\b(?:0[xX][0-9a-fA-F]+|[0-9]+)[uUlL]*\b`)
	// Preprocessor directives
	preprocessorPattern = regexp.MustCompile(`(?m)^\s*#\s*\w+`)
	// Identifiers (for keyword/type matching)
	identifierPattern = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\b`)
	// Identifier followed by open paren
	functionCallPattern = regexp.MustCompile(`\b([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`)
)

// token represents a syntax-highlighted token
type token struct {
	color      *color.Color
	start, end int
}

type tokenizer struct {
	code   string
	tokens []token
}

func (t *tokenizer) add(start, end int, c *color.Color) {
	for _, other := range t.tokens {
		if start < other.end && end > other.start {
			return
		}
	}

	t.tokens = append(t.tokens, token{color: c, start: start, end: end})
}

func (t *tokenizer) addMatches(pattern *regexp.Regexp, c *color.Color) {
	for _, match := range pattern.FindAllStringIndex(t.code, -1) {
		t.add(match[0], match[1], c)
	}
}

// HighlightCode applies syntax highlighting to a piece of generated source code.
// If colors are disabled (not a terminal, NO_COLOR set, etc) the code is returned as is
func HighlightCode(code string, language Language) string {
	if code == "" || color.NoColor {
		return code
	}

	lang := rules[language]
	t := tokenizer{code: code}

	// Comments and strings first, nothing inside them gets highlighted
	t.addMatches(lineCommentPattern, commentColor)
	t.addMatches(stringPattern, stringColor)

	if lang.preprocessor {
		t.addMatches(preprocessorPattern, preprocessorColor)
	}

	t.addMatches(numberPattern, numberColor)

	for _, match := range functionCallPattern.FindAllStringSubmatchIndex(code, -1) {
		name := code[match[2]:match[3]]
		if !lang.keywords[name] && !lang.types[name] {
			t.add(match[2], match[3], functionColor)
		}
	}

	for _, match := range identifierPattern.FindAllStringIndex(code, -1) {
		word := code[match[0]:match[1]]
		if lang.keywords[word] {
			t.add(match[0], match[1], keywordColor)
		} else if lang.types[word] {
			t.add(match[0], match[1], typeColor)
		}
	}

	return t.String()
}

// String builds the final string with color codes
func (t *tokenizer) String() string {
	if len(t.tokens) == 0 {
		return t.code
	}

	sort.Slice(t.tokens, func(i, j int) bool { return t.tokens[i].start < t.tokens[j].start })

	var result strings.Builder
	pos := 0

	for _, tok := range t.tokens {
		result.WriteString(t.code[pos:tok.start])
		result.WriteString(tok.color.Sprint(t.code[tok.start:tok.end]))
		pos = tok.end
	}

	result.WriteString(t.code[pos:])

	return result.String()
}
