// Package runeio names bytes for human consumption, as in trace logs and
// state dumps.
package runeio

import "strconv"

// c0Names are the classic ASCII control mnemonics.
var c0Names = [32]string{
	"<NUL>", "<SOH>", "<STX>", "<ETX>", "<EOT>", "<ENQ>", "<ACK>", "<BEL>",
	"<BS>", "<HT>", "<NL>", "<VT>", "<NP>", "<CR>", "<SO>", "<SI>",
	"<DLE>", "<DC1>", "<DC2>", "<DC3>", "<DC4>", "<NAK>", "<SYN>", "<ETB>",
	"<CAN>", "<EM>", "<SUB>", "<ESC>", "<FS>", "<GS>", "<RS>", "<US>",
}

// Name returns a printable name for b: its control mnemonic when it has one,
// its quoted form when it is printable ASCII, and a hex escape otherwise.
func Name(b byte) string {
	switch {
	case b < 0x20:
		return c0Names[b]
	case b == ' ':
		return "<SP>"
	case b == 0x7f:
		return "<DEL>"
	case b < 0x80:
		return strconv.QuoteRune(rune(b))
	default:
		return "<" + strconv.FormatUint(uint64(b), 16) + ">"
	}
}
