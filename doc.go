/* Package main: gomouse, an interpreter for Mouse

Mouse is a tiny language from the late 1970s, designed by Peter Grogono for
microcomputers with very little memory. A Mouse program is never compiled
or even tokenized ahead of time: the interpreter reads the program text one
byte at a time, and the position of its read cursor is the program counter.
Every instruction is a single character; most of them act on a stack of
16-bit integers.

Values and variables

A digit string pushes its value; an uppercase letter pushes the address of
one of 26 global variables, A being 0 and Z being 25. Then ':' stores and '.'
loads:

	7 X:       ~ X = 7
	X. 1 + X:  ~ X = X + 1

The arithmetic operators "+ - * / \" and comparisons "< = >" pop two values
and push one, the top of the stack being the right hand side. A comparison
pushes 1 for true and 0 for false.

Input and output

'?' reads a decimal number from input, "?'" reads a single byte; '!' prints
the top of the stack as a decimal number, "!'" prints it as a byte. A quoted
"string" is printed as is, except that '!' inside it prints a newline. A quote
followed by any byte, like 'A, pushes that byte's value.

Control flow

Conditionals and loops are resolved by moving the cursor through the program
text. '[' pops a value; if it is zero, the cursor skips forward past the
matching ']'. '(' opens a loop; ')' seeks back to its opening; '^' pops a
value and, if it is zero, leaves the innermost loop by skipping past its
matching ')':

	10 N: ( N. 0 > ^ N. ! " " N. 1 - N: )

Macros

A macro is defined after the main program as "$X body @", and called by
"#X;", or "#X,p1,p2;" to pass parameter texts. Within the body, "1%" runs the
text of the first parameter, as if it had been written there; it runs in the
caller's scope, so any variable it names is the caller's. Lowercase letters
name variables local to each call. Macros may call themselves.

	#F,5;!$$
	$F 1% n: n. 2 < [1 @] #F,n. 1 -; n. * @

The main program ends with '$'; a '~' starts a comment running to the end of
its line.

Implementation

The VM holds the value stack, the variables, a stack of open loop positions,
the macro table, and a call stack of frames owning each active call's
parameter texts and locals. Before running, the whole program is scanned once
to find every macro definition. A macro call, like a parameter evaluation,
runs in a nested driver loop over the relevant source; the end of that
source, be it '@' or '$', returns control to the caller.

*/
package main
