package scene

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"rayprobe/internal/mathutil"
)

// Digest hashes everything that affects how the frame is drawn. Two frames
// with equal digests render to identical images.
func (f Frame) Digest() uint64 {
	buf := make([]byte, 0, 64+len(f.Obstacles)*32)
	buf = append(buf, f.Scene...)
	buf = append(buf, 0)
	buf = append(buf, f.Guides...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(f.Width))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(f.Height))
	buf = appendVec(buf, f.Start)
	buf = appendVec(buf, f.Target)
	for _, o := range f.Obstacles {
		buf = appendVec(buf, o.Center)
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(o.Radius))
	}
	return xxhash.Sum64(buf)
}

func appendVec(buf []byte, v mathutil.Vec3) []byte {
	for _, c := range v {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(c))
	}
	return buf
}
