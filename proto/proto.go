// Package proto defines the USB-DVG command stream: big-endian 32-bit words
// with a 3-bit opcode in the top bits and an opcode-specific payload in the
// low 29 bits.
package proto

import "encoding/binary"

// Opcode identifies the command carried in Word's top 3 bits.
type Opcode uint32

const (
	OpComplete Opcode = 0 // end-of-frame marker, zero payload
	OpRGB      Opcode = 1 // set draw color, r8<<16 | g8<<8 | b8
	OpXY       Opcode = 2 // move/draw, blank<<28 | x14<<14 | y14
	OpQuality  Opcode = 3 // render-quality pacing hint for the firmware
	OpFrame    Opcode = 4 // frame header, accumulated path length
	OpExit     Opcode = 7 // session termination notice, zero payload
)

func (o Opcode) String() string {
	switch o {
	case OpComplete:
		return "complete"
	case OpRGB:
		return "rgb"
	case OpXY:
		return "xy"
	case OpQuality:
		return "quality"
	case OpFrame:
		return "frame"
	case OpExit:
		return "exit"
	default:
		return "unknown"
	}
}

// RenderQuality is the fixed pacing constant sent once per frame.
const RenderQuality = 5

// WordBytes is the wire size of one command word.
const WordBytes = 4

const (
	payloadMask = 1<<29 - 1
	coordMask   = 0x3fff // XY fields are 14 bits wide, values use 12
	blankBit    = 1 << 28
)

// Word is one packed command.
type Word uint32

func (w Word) Opcode() Opcode  { return Opcode(w >> 29) }
func (w Word) Payload() uint32 { return uint32(w) & payloadMask }

// RGB packs a set-color command from 8-bit channels.
func RGB(r, g, b uint8) Word {
	return Word(OpRGB)<<29 | Word(r)<<16 | Word(g)<<8 | Word(b)
}

// Color unpacks the channels of an RGB word.
func (w Word) Color() (r, g, b uint8) {
	return uint8(w >> 16), uint8(w >> 8), uint8(w)
}

// XY packs a beam movement to a device point. The coordinate fields are 14
// bits each even though device values only span 0-4095; blank turns the
// beam off for the movement.
func XY(x, y int32, blank bool) Word {
	w := Word(OpXY)<<29 | Word(uint32(x)&coordMask)<<14 | Word(uint32(y)&coordMask)
	if blank {
		w |= blankBit
	}
	return w
}

// Coords unpacks an XY word.
func (w Word) Coords() (x, y int32, blank bool) {
	return int32(w >> 14 & coordMask), int32(w & coordMask), w&blankBit != 0
}

// Quality packs the per-frame render-quality hint.
func Quality(q uint32) Word {
	return Word(OpQuality)<<29 | Word(q&payloadMask)
}

// Frame packs the frame header word carrying the accumulated path length.
func Frame(pathLen uint32) Word {
	return Word(OpFrame)<<29 | Word(pathLen&payloadMask)
}

func Complete() Word { return Word(OpComplete) << 29 }
func Exit() Word     { return Word(OpExit) << 29 }

// Put writes w big-endian into b[0:4].
func Put(b []byte, w Word) {
	binary.BigEndian.PutUint32(b, uint32(w))
}

// Read decodes the word at b[0:4].
func Read(b []byte) Word {
	return Word(binary.BigEndian.Uint32(b))
}
