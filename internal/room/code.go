package room

import "crypto/rand"

const (
	codeLength   = 4
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewCode returns a random 4-letter uppercase join code. Bytes that would
// bias the letter distribution are rejected (256 is not a multiple of 26).
func NewCode() string {
	const limit = 256 - 256%len(codeAlphabet)
	var code [codeLength]byte
	var buf [1]byte
	for i := 0; i < codeLength; {
		_, _ = rand.Read(buf[:])
		if int(buf[0]) >= limit {
			continue
		}
		code[i] = codeAlphabet[int(buf[0])%len(codeAlphabet)]
		i++
	}
	return string(code[:])
}

// NewUniqueCode generates a join code not currently held by any room in the
// store. With 26^4 possible codes and at most a few hundred rooms live, the
// retry loop terminates almost immediately.
func (s *Store) NewUniqueCode() string {
	for {
		code := NewCode()
		if _, taken := s.FindByCode(code); !taken {
			return code
		}
	}
}
