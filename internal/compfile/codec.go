package compfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

const (
	vec3Size     = 12
	durationSize = 12
)

// encoder writes little-endian, length-prefixed fields and keeps the first error.
type encoder struct {
	w   io.Writer
	buf [16]byte
	err error
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) u32(v uint32) {
	binary.LittleEndian.PutUint32(e.buf[:4], v)
	e.write(e.buf[:4])
}

func (e *encoder) u64(v uint64) {
	binary.LittleEndian.PutUint64(e.buf[:8], v)
	e.write(e.buf[:8])
}

func (e *encoder) f32(v float32) {
	e.u32(math.Float32bits(v))
}

func (e *encoder) length(n int) {
	e.u64(uint64(n))
}

func (e *encoder) str(s string) {
	e.length(len(s))
	e.write([]byte(s))
}

func (e *encoder) id(id uuid.UUID) {
	e.write(id[:])
}

func (e *encoder) vec3(v mgl32.Vec3) {
	e.f32(v[0])
	e.f32(v[1])
	e.f32(v[2])
}

func (e *encoder) duration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	e.u64(uint64(d / time.Second))
	e.u32(uint32(d % time.Second))
}

// decoder reads from an in-memory buffer so every length prefix can be
// checked against the bytes actually left.
type decoder struct {
	b   []byte
	off int
	err error
}

func (d *decoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: %s", ErrDecode, fmt.Sprintf(format, args...))
	}
}

func (d *decoder) remaining() int {
	return len(d.b) - d.off
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || n > d.remaining() {
		d.fail("need %d bytes at offset %d, have %d", n, d.off, d.remaining())
		return nil
	}
	out := d.b[d.off : d.off+n]
	d.off += n
	return out
}

func (d *decoder) u32() uint32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (d *decoder) u64() uint64 {
	b := d.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (d *decoder) f32() float32 {
	return math.Float32frombits(d.u32())
}

// length reads a count prefix for elements of at least elemSize bytes and
// rejects counts the rest of the buffer cannot hold.
func (d *decoder) length(elemSize int) int {
	n := d.u64()
	if d.err != nil {
		return 0
	}
	if elemSize < 1 {
		elemSize = 1
	}
	if n > uint64(d.remaining()/elemSize) {
		d.fail("length %d exceeds remaining %d bytes", n, d.remaining())
		return 0
	}
	return int(n)
}

func (d *decoder) str() string {
	n := d.length(1)
	return string(d.take(n))
}

func (d *decoder) id() uuid.UUID {
	var id uuid.UUID
	if b := d.take(len(id)); b != nil {
		copy(id[:], b)
	}
	return id
}

func (d *decoder) vec3() mgl32.Vec3 {
	return mgl32.Vec3{d.f32(), d.f32(), d.f32()}
}

func (d *decoder) duration() time.Duration {
	secs := d.u64()
	nanos := d.u32()
	if d.err != nil {
		return 0
	}
	if nanos >= uint32(time.Second) || secs > uint64(math.MaxInt64/int64(time.Second)) {
		d.fail("duration out of range: %ds %dns", secs, nanos)
		return 0
	}
	return time.Duration(secs)*time.Second + time.Duration(nanos)
}

func (d *decoder) points() []mgl32.Vec3 {
	n := d.length(vec3Size)
	out := make([]mgl32.Vec3, 0, n)
	for i := 0; i < n && d.err == nil; i++ {
		out = append(out, d.vec3())
	}
	return out
}

func (d *decoder) finish() error {
	if d.err == nil && d.remaining() != 0 {
		d.fail("%d trailing bytes", d.remaining())
	}
	return d.err
}
