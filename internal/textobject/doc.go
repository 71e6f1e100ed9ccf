// Package textobject resolves Vim text objects such as iw, a(, i" and at
// into regions.
//
// Inner objects exclude the surrounding white space or delimiters; around
// objects include them. Word, sentence and quote objects are inclusive
// characterwise regions. Bracket inner objects are exclusive so that an
// operator over a block whose brackets sit on their own lines becomes
// linewise, the way di{ behaves on a function body. Paragraph objects are
// linewise.
package textobject
