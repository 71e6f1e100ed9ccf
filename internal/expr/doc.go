// Package expr evaluates the expressions typed into the = register.
//
// Expressions are Lua, run in a sandbox with only the base, string, table
// and math libraries. An expression is evaluated as "return <expr>" first
// and, if that does not compile, as a chunk whose first return value is
// the result:
//
//	ev := expr.New()
//	defer ev.Close()
//	out, err := ev.Eval("6 * 7")           // "42"
//	out, err = ev.Eval(`("ab"):rep(3)`)    // "ababab"
//
// Numbers with no fractional part print as integers. A table that is a
// list yields one line per element, so "={1,2,3}p puts three lines.
package expr
