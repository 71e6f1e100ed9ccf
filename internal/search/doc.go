// Package search implements the pattern search used by the / ? n N * and #
// motions on top of github.com/dlclark/regexp2.
//
// Patterns are written in Vim's default 'magic' dialect and translated to
// regexp2: \( \) \| \+ \= \? and \{n,m} are the group, alternation and
// count operators while their bare spellings match themselves; . * [ ] ^
// and $ work unescaped. \< and \> are word edges, \%( groups without
// capturing, and \a \A \h name letter classes. \c forces a
// case-insensitive match and \C a case-sensitive one; without those
// 'ignorecase' and 'smartcase' decide. The \v \V very-magic switches and
// \zs \ze are not supported.
package search
