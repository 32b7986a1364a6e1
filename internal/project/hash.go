package project

import (
	"crypto/sha256"
	"strconv"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит ключ кэша: H( content || dep1 || dep2 ... ).
// Порядок deps должен быть детерминированным.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Digest fingerprints every setting that changes formatter output. Files and
// jobs are left out.
func (c Config) Digest() Digest {
	h := sha256.New()
	write := func(s string) {
		_, _ = h.Write([]byte(strconv.Itoa(len(s))))
		_, _ = h.Write([]byte{':'})
		_, _ = h.Write([]byte(s))
	}
	flag := func(b bool) {
		write(strconv.FormatBool(b))
	}
	flag(c.Rules.RenameHeader)
	flag(c.Rules.CollapseUnderline)
	flag(c.Rules.BlankBeforeHeader)
	flag(c.Rules.BlankBeforeCode)
	write(c.Headers.Canonical)
	for _, a := range c.Headers.Aliases {
		write(a)
	}
	write(c.Strategy().String())
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
