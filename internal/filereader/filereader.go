package filereader

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/IgorBayerl/linecount/internal/filesystem"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// DecodePolicy selects what happens to byte sequences that are not valid UTF-8.
// Neither policy ever fails a count.
type DecodePolicy int

const (
	// DecodeSkip drops undecodable bytes before lines are split.
	DecodeSkip DecodePolicy = iota
	// DecodeReplace turns undecodable bytes into U+FFFD before lines are split.
	DecodeReplace
)

func (p DecodePolicy) String() string {
	switch p {
	case DecodeSkip:
		return "skip"
	case DecodeReplace:
		return "replace"
	default:
		return fmt.Sprintf("DecodePolicy(%d)", int(p))
	}
}

// ParseDecodePolicy converts a flag value ("skip" or "replace", case-insensitive)
// into a DecodePolicy.
func ParseDecodePolicy(s string) (DecodePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip", "ignore":
		return DecodeSkip, nil
	case "replace":
		return DecodeReplace, nil
	default:
		return DecodeSkip, fmt.Errorf("invalid decode policy '%s'. Valid policies are skip, replace", s)
	}
}

// NewDecoder returns the UTF-8 decoding transformer for the policy.
func NewDecoder(p DecodePolicy) transform.Transformer {
	if p == DecodeReplace {
		return runes.ReplaceIllFormed()
	}
	return dropIllFormed{}
}

// dropIllFormed removes every byte that is not part of a well-formed UTF-8
// sequence. A literal U+FFFD in the input is well-formed and kept.
type dropIllFormed struct{ transform.NopResetter }

func (dropIllFormed) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if c := src[nSrc]; c < utf8.RuneSelf {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}

		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 {
			// A sequence cut by the chunk boundary may still become valid.
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			nSrc++
			continue
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
	}
	return nDst, nSrc, nil
}

// lineCounter counts universal-newline records written to it: "\n", "\r\n"
// and a lone "\r" each end one record, and a non-empty tail after the last
// terminator is one more. It keeps no line content, so line length is unbounded.
type lineCounter struct {
	terminators int
	pendingCR   bool
	partial     bool
}

func (lc *lineCounter) Write(p []byte) (int, error) {
	for _, b := range p {
		switch b {
		case '\n':
			if lc.pendingCR {
				// Second half of "\r\n", already counted at the '\r'.
				lc.pendingCR = false
				continue
			}
			lc.terminators++
			lc.partial = false
		case '\r':
			lc.terminators++
			lc.partial = false
			lc.pendingCR = true
		default:
			lc.pendingCR = false
			lc.partial = true
		}
	}
	return len(p), nil
}

func (lc *lineCounter) count() int {
	if lc.partial {
		return lc.terminators + 1
	}
	return lc.terminators
}

// CountLines decodes r according to policy and returns the number of lines
// in the decoded text. Only errors from r itself are returned.
func CountLines(r io.Reader, policy DecodePolicy) (int, error) {
	var lc lineCounter
	if _, err := io.Copy(&lc, transform.NewReader(r, NewDecoder(policy))); err != nil {
		return 0, err
	}
	return lc.count(), nil
}

// CountLinesInFile counts the lines of the file at filePath. Failing to open
// the file is returned unchanged, so callers can test it with errors.Is.
func CountLinesInFile(fsys filesystem.Filesystem, filePath string, policy DecodePolicy) (int, error) {
	file, err := fsys.Open(filePath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	lineCount, err := CountLines(file, policy)
	if err != nil {
		return 0, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return lineCount, nil
}
