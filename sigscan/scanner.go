// Package sigscan locates signature patterns inside a memory region served
// by an injected reader, streaming the region through a bounded buffer so
// arbitrarily large regions never have to be resident at once.
package sigscan

import (
	"fmt"

	"memsig/memory"
	"memsig/pattern"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// DefaultChunkSize is the read granularity used when no option overrides
// it. Large enough to keep syscall counts low, small enough that a single
// unreadable page does not blind the scanner to megabytes of memory.
const DefaultChunkSize = 256 * 1024

// Mode selects how many matches a scan reports.
type Mode int

const (
	// FirstMatch stops at the first match address.
	FirstMatch Mode = iota
	// AllMatches walks the whole region and reports every match.
	AllMatches
)

// Scanner holds configuration for signature scans. It carries no state
// between calls; a single Scanner may be used from multiple goroutines.
type Scanner struct {
	chunkSize uint
	log       *logger.Logger
}

// Option is a function that configures a Scanner
type Option func(*Scanner)

// WithChunkSize sets the read granularity. Values smaller than the
// pattern being scanned for are raised to the pattern length per scan.
func WithChunkSize(size uint) Option {
	return func(s *Scanner) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithLogger replaces the scanner's logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Scanner with the default chunk size.
func New(options ...Option) *Scanner {
	s := &Scanner{
		chunkSize: DefaultChunkSize,
		log:       logger.NewLogger(coloransi.Color(coloransi.Cyan, coloransi.ColorOrange, "sigscan")),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Scan searches region for pat and returns the absolute addresses where a
// full match begins. An empty result with a nil error means the pattern
// does not occur; it is not a failure.
//
// The region is read in chunks, each chunk after the first beginning
// len(pat)-1 bytes before the previous one ended so a match straddling a
// chunk boundary is still seen whole. A chunk only reports matches that
// start inside it, which makes the candidate ranges of successive chunks
// disjoint and rules out overlap duplicates. Matches must lie entirely
// within the region: the last candidate start is region end minus the
// pattern length, inclusive.
//
// A chunk the reader cannot deliver is treated as a gap: nothing is
// reported from it, no match may span it, and scanning resumes at the
// chunk boundary after it. A short read is scanned up to its valid prefix
// and the remainder of the chunk becomes a gap.
func (s *Scanner) Scan(r memory.Reader, region memory.Region, pat pattern.Pattern, mode Mode) ([]memory.Address, error) {
	if err := region.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scan region: %w", err)
	}
	if pat.Len() == 0 {
		return nil, pattern.ErrEmptyPattern
	}

	plen := uint64(pat.Len())
	size := uint64(region.Size)
	if plen > size {
		return nil, nil
	}

	chunk := uint64(s.chunkSize)
	if chunk < plen {
		chunk = plen
	}

	s.log.Infoln("Starting scan of", region.Size.ToString(), "at", region.Base.ToString(), "for pattern", pat.String())

	var results []memory.Address
	gaps := 0

	for pos := uint64(0); size-pos >= plen; {
		readLen := chunk
		if remaining := size - pos; readLen > remaining {
			readLen = remaining
		}

		buf, err := r.ReadMemory(region.Base+memory.Address(pos), memory.Size(readLen))
		if uint64(len(buf)) > readLen {
			buf = buf[:readLen]
		}
		if err != nil && uint64(len(buf)) < plen {
			gaps++
			s.log.Debugln("Unreadable chunk at", (region.Base + memory.Address(pos)).ToString(), "length", readLen, ":", err)
			pos += readLen
			continue
		}
		if uint64(len(buf)) < plen {
			pos += readLen
			continue
		}
		if err != nil {
			// Short read: scan the prefix, the tail of the chunk is a gap.
			gaps++
			s.log.Debugln("Partial chunk at", (region.Base + memory.Address(pos)).ToString(), "got", len(buf), "of", readLen, ":", err)
		}

		for i := uint64(0); i+plen <= uint64(len(buf)); i++ {
			if !pat.Match(buf[i:]) {
				continue
			}
			addr := region.Base + memory.Address(pos+i)
			results = append(results, addr)
			if mode == FirstMatch {
				s.log.Infoln("Scan complete, first match at", addr.ToString())
				return results, nil
			}
		}

		if err != nil {
			// Do not overlap back into a chunk that failed partway.
			pos += readLen
		} else {
			pos += uint64(len(buf)) - (plen - 1)
		}
	}

	s.log.Infoln("Scan complete, found", len(results), "matches,", gaps, "gaps")
	return results, nil
}

// Find is a FirstMatch convenience wrapper. The boolean reports whether a
// match was found; false with a nil error is the "not found" outcome.
func (s *Scanner) Find(r memory.Reader, region memory.Region, pat pattern.Pattern) (memory.Address, bool, error) {
	matches, err := s.Scan(r, region, pat, FirstMatch)
	if err != nil || len(matches) == 0 {
		return 0, false, err
	}
	return matches[0], true, nil
}
