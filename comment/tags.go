package comment

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// Tag vocabularies for documentation comments.
var (
	immutableTags = tagSet(atom.Code, atom.Em, atom.Pre, atom.Q, atom.Tt)
	codeTags      = tagSet(atom.Pre)
	separatorTags = tagSet(atom.Dl, atom.Hr, atom.P, atom.Pre, atom.Ul, atom.Ol, atom.Table, atom.Tr)
	breakTags     = tagSet(atom.Dd, atom.Dt, atom.Li, atom.Td, atom.Th, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6)
	singleBreak   = tagSet(atom.Br)
	newlineTags   = tagSet(atom.Dd, atom.Dt, atom.Li, atom.Td, atom.Th, atom.Tr, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6)

	knownTags = union(immutableTags, codeTags, separatorTags, breakTags, singleBreak, newlineTags)
)

// Block tags that take a parameter name before their description.
var parameterTags = []string{"@param", "@exception", "@throws", "@serialfield"}

const (
	tagIntroducer = '@'
	linkPrefix    = "{@"
	linkSuffix    = '}'
	nlsPrefix     = "//$NON-NLS-"
	noFormatStart = "/*-"
)

type tags map[atom.Atom]bool

func tagSet(as ...atom.Atom) tags {
	t := make(tags, len(as))
	for _, a := range as {
		t[a] = true
	}
	return t
}

func union(sets ...tags) tags {
	t := make(tags)
	for _, s := range sets {
		for a := range s {
			t[a] = true
		}
	}
	return t
}

// htmlTag describes a token that looks like an HTML tag.
type htmlTag struct {
	name    atom.Atom
	closing bool
}

// parseTag inspects the text between '<' and '>' of a candidate tag.
// It reports the tag only when the name belongs to the known vocabulary.
func parseTag(inner string) (htmlTag, bool) {
	var t htmlTag
	if strings.HasPrefix(inner, "/") {
		t.closing = true
		inner = inner[1:]
	}
	n := 0
	for n < len(inner) && isAlnum(inner[n]) {
		n++
	}
	if n == 0 {
		return t, false
	}
	if rest := inner[n:]; rest != "" && !isSpace(rest[0]) && rest != "/" {
		return t, false
	}
	t.name = atom.Lookup([]byte(strings.ToLower(inner[:n])))
	if t.name == 0 || !knownTags[t.name] {
		return t, false
	}
	return t, true
}

// tokenTag parses a whole token such as "<pre>" or "</p>".
func tokenTag(tok string) (htmlTag, bool) {
	if len(tok) < 3 || tok[0] != '<' || tok[len(tok)-1] != '>' {
		return htmlTag{}, false
	}
	return parseTag(tok[1 : len(tok)-1])
}

// isParameterTag reports whether tok names a parameter block tag.
func isParameterTag(tok string) bool {
	for _, p := range parameterTags {
		if strings.EqualFold(tok, p) {
			return true
		}
	}
	return false
}

// isBlockTag reports whether tok looks like "@word".
func isBlockTag(tok string) bool {
	return len(tok) >= 2 && tok[0] == tagIntroducer && isLetter(tok[1])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isAlnum(c byte) bool {
	return isLetter(c) || '0' <= c && c <= '9'
}
