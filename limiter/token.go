package limiter

import (
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"strings"
	"time"

	"github.com/lixenwraith/warpcheck/parameter"
)

// TokenPrefix marks tokens produced by this codec
const TokenPrefix = "wc1."

const tokenVersion = 1

// obfuscation key, tokens are advisory and not a security boundary
var tokenKey = [...]byte{0x5a, 0xc3, 0x17, 0x9e, 0x64, 0x2b, 0xd8, 0x41}

// Layout: version(1) stamp ms(8) penalty(1) nonce(4) count(1) deltas(4·count) crc(4)
const tokenFixed = 1 + 8 + 1 + 4 + 1 + 4

// Encode serializes a lockout state into an opaque token
func Encode(s State, nonce uint32) string {
	h := s.History
	if len(h) > parameter.AttemptHistory {
		h = h[len(h)-parameter.AttemptHistory:]
	}

	buf := make([]byte, 0, tokenFixed+4*len(h))
	buf = append(buf, tokenVersion)
	buf = binary.BigEndian.AppendUint64(buf, uint64(s.Last.UnixMilli()))
	buf = append(buf, byte(s.Penalty))
	buf = binary.BigEndian.AppendUint32(buf, nonce)
	buf = append(buf, byte(len(h)))
	for _, t := range h {
		delta := s.Last.Sub(t).Milliseconds()
		if delta < 0 {
			delta = 0
		}
		buf = binary.BigEndian.AppendUint32(buf, uint32(delta))
	}
	buf = binary.BigEndian.AppendUint32(buf, crc32.ChecksumIEEE(buf))

	xor(buf)
	return TokenPrefix + base64.RawURLEncoding.EncodeToString(buf)
}

// Decode parses a token, returning nil for malformed, foreign or expired input
func Decode(token string, now time.Time) *State {
	body, ok := strings.CutPrefix(strings.TrimSpace(token), TokenPrefix)
	if !ok {
		return nil
	}
	buf, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil || len(buf) < tokenFixed {
		return nil
	}
	xor(buf)

	payload, sum := buf[:len(buf)-4], buf[len(buf)-4:]
	if crc32.ChecksumIEEE(payload) != binary.BigEndian.Uint32(sum) {
		return nil
	}
	if payload[0] != tokenVersion {
		return nil
	}

	stamp := time.UnixMilli(int64(binary.BigEndian.Uint64(payload[1:9])))
	penalty := int(payload[9])
	count := int(payload[14])
	if penalty > parameter.PenaltyCeiling || (penalty > 0 && penalty < parameter.PenaltyFloor) || count > parameter.AttemptHistory || len(payload) != tokenFixed-4+4*count {
		return nil
	}
	if now.Before(stamp) || now.Sub(stamp) > parameter.LockoutTTL {
		return nil
	}

	s := &State{Last: stamp, Penalty: penalty}
	for i := 0; i < count; i++ {
		off := 15 + 4*i
		delta := time.Duration(binary.BigEndian.Uint32(payload[off:off+4])) * time.Millisecond
		s.History = append(s.History, stamp.Add(-delta))
	}
	return s
}

func xor(buf []byte) {
	for i := range buf {
		buf[i] ^= tokenKey[i%len(tokenKey)]
	}
}
