package emit

import (
	"encoding/binary"
	"errors"

	"github.com/novachain/nova-go/pkg/io"
	"github.com/novachain/nova-go/pkg/vm/opcode"
)

// Instruction emits a VM Instruction with data to the given buffer.
func Instruction(w *io.BinWriter, op opcode.Opcode, b []byte) {
	w.WriteB(byte(op))
	w.WriteBytes(b)
}

// Opcode emits a single VM Instruction without arguments to the given buffer.
func Opcode(w *io.BinWriter, op opcode.Opcode) {
	w.WriteB(byte(op))
}

// Bool emits a bool type to the given buffer.
func Bool(w *io.BinWriter, ok bool) {
	if ok {
		Opcode(w, opcode.PUSHT)
		return
	}
	Opcode(w, opcode.PUSHF)
}

// Int emits an int type to the given buffer.
func Int(w *io.BinWriter, i int64) {
	switch {
	case i == -1:
		Opcode(w, opcode.PUSHM1)
	case i == 0:
		Opcode(w, opcode.PUSHF)
	case i > 0 && i <= 16:
		val := opcode.Opcode(int(opcode.PUSH1) - 1 + int(i))
		Opcode(w, val)
	default:
		bInt := intToBytes(i)
		Bytes(w, bInt)
	}
}

// intToBytes converts an int64 to a little-endian byte slice of minimal
// length keeping the sign bit.
func intToBytes(n int64) []byte {
	var neg bool
	if n < 0 {
		neg = true
	}
	buf := make([]byte, 9)
	binary.LittleEndian.PutUint64(buf, uint64(n))
	l := 8
	for l > 1 && ((!neg && buf[l-1] == 0 && buf[l-2]&0x80 == 0) ||
		(neg && buf[l-1] == 0xff && buf[l-2]&0x80 == 0x80)) {
		l--
	}
	return buf[:l]
}

// String emits a string to the given buffer.
func String(w *io.BinWriter, s string) {
	Bytes(w, []byte(s))
}

// Bytes emits a byte array to the given buffer.
func Bytes(w *io.BinWriter, b []byte) {
	var n = len(b)

	switch {
	case n <= int(opcode.PUSHBYTES75):
		Instruction(w, opcode.Opcode(n), b)
		return
	case n < 0x100:
		Instruction(w, opcode.PUSHDATA1, []byte{byte(n)})
	case n < 0x10000:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(n))
		Instruction(w, opcode.PUSHDATA2, buf)
	default:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(n))
		Instruction(w, opcode.PUSHDATA4, buf)
	}
	w.WriteBytes(b)
}

// Syscall emits the syscall API to the given buffer.
// Syscall API string cannot be 0.
func Syscall(w *io.BinWriter, api string) {
	if w.Err != nil {
		return
	} else if len(api) == 0 {
		w.Err = errors.New("syscall api cannot be of length 0")
		return
	}
	buf := make([]byte, len(api)+1)
	buf[0] = byte(len(api))
	copy(buf[1:], api)
	Instruction(w, opcode.SYSCALL, buf)
}

// AppCall emits an APPCALL with the given script hash to the given buffer.
func AppCall(w *io.BinWriter, scriptHash [20]byte) {
	Instruction(w, opcode.APPCALL, scriptHash[:])
}
