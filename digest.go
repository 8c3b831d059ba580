package ssr

import (
	"encoding/base64"
	"encoding/binary"
	"sync"
)

// Digest computes the stable per-template fingerprint from a template's
// static strings. Two independent 32-bit DJB2-style accumulators are run
// over the UTF-16-equivalent code units of each static fragment in turn,
// alternating which accumulator consumes each code unit by its index
// parity within that fragment — the index resets to zero at the start of
// every fragment, and no separator is hashed between fragments, matching
// the fixed wire algorithm bit-for-bit. The accumulators are serialized
// little-endian and encoded with standard base64, giving a 12-character
// digest (ending in one '=' pad) suitable for embedding in an HTML comment.
//
// The digest is a function of the statics only — never of the dynamic
// values — so two template instances compiled from the same call site
// always produce the same digest, and the client can use it to verify it
// is hydrating the markup a matching client-side template would produce.
func Digest(statics []string) string {
	var acc [2]uint32
	acc[0] = 5381
	acc[1] = 5381

	for _, frag := range statics {
		i := 0
		for _, r := range frag {
			// Match UTF-16 code unit semantics: code points outside the
			// BMP contribute two surrogate code units, exactly as a
			// front-end running over a JavaScript string would see them.
			if r > 0xFFFF {
				hi, lo := utf16Surrogates(r)
				acc[i%2] = (acc[i%2]*33 ^ uint32(hi))
				i++
				acc[i%2] = (acc[i%2]*33 ^ uint32(lo))
				i++
				continue
			}
			acc[i%2] = (acc[i%2]*33 ^ uint32(r))
			i++
		}
	}

	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], acc[0])
	binary.LittleEndian.PutUint32(buf[4:8], acc[1])
	return base64.StdEncoding.EncodeToString(buf)
}

func utf16Surrogates(r rune) (hi, lo uint16) {
	const (
		surrogateMin = 0x10000
		highStart    = 0xD800
		lowStart     = 0xDC00
	)
	v := uint32(r) - surrogateMin
	hi = uint16(highStart + (v >> 10))
	lo = uint16(lowStart + (v & 0x3FF))
	return hi, lo
}

// digestCache memoizes Digest by TemplateHandle identity: the digest, like
// the compiled opcode list, only depends on the statics a handle was first
// compiled with.
var digestCache sync.Map // map[*TemplateHandle]string

func digestFor(h *TemplateHandle, statics []string) string {
	if v, ok := digestCache.Load(h); ok {
		return v.(string)
	}
	d := Digest(statics)
	actual, _ := digestCache.LoadOrStore(h, d)
	return actual.(string)
}
