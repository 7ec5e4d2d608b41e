// Package comment reflows source code comments to a line width.
//
// A comment is split into tokens, tokens are tagged with structural
// attributes (block tags, HTML tags, preformatted text), wrapped greedily
// into lines and rendered back as a list of edits against the original
// text. Three comment kinds are supported: line comments ("//"), block
// comments ("/* */") and documentation comments ("/** */"). Only
// documentation comments interpret tags.
//
// The formatter never rewrites token text. Edits only touch the whitespace
// and comment markers between tokens, plus code embedded in <pre> blocks
// when a SubFormatter is configured.
package comment
