package nmea

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	gonmea "github.com/adrianmo/go-nmea"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"

	"github.com/jz2447/csci420-gps-proj/internal/models"
)

// DefaultHeaderLines is the number of fixed header lines at the top of a receiver log
const DefaultHeaderLines = 5

// DefaultMaxLineBytes bounds a single log line. Longer lines are dropped as corrupted.
const DefaultMaxLineBytes = 1 << 20

// emptyField replaces blank fields so downstream parsing never sees ""
const emptyField = "0"

// ReaderOptions controls how raw log lines become sentences
type ReaderOptions struct {
	HeaderLines    int
	VerifyChecksum bool
	MaxLineBytes   int // zero means DefaultMaxLineBytes
}

// DefaultReaderOptions matches the receiver's log layout
var DefaultReaderOptions = ReaderOptions{
	HeaderLines:    DefaultHeaderLines,
	VerifyChecksum: false,
	MaxLineBytes:   DefaultMaxLineBytes,
}

// Sentence is one log line split into fields
type Sentence struct {
	Raw    string
	Fields []string
}

// Type returns TypeRMC, TypeGGA or "" depending on the field-0 discriminant
func (s Sentence) Type() string {
	if len(s.Fields) == 0 {
		return ""
	}
	return sentenceType(s.Fields[0])
}

// ReadSentences decodes a receiver log as ISO-8859-1 and returns its sentences.
// Header lines and blank lines are skipped. Lines carrying more than one
// sentence marker were concatenated by the receiver's buffer and are dropped
// whole, since the corruption boundary cannot be recovered. So are lines
// longer than opts.MaxLineBytes.
func ReadSentences(r io.Reader, opts ReaderOptions) ([]Sentence, models.ReadStats, error) {
	var stats models.ReadStats

	maxLine := opts.MaxLineBytes
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}
	br := bufio.NewReaderSize(charmap.ISO8859_1.NewDecoder().Reader(r), 64*1024)

	var sentences []Sentence
	lineNo := 0
	for {
		raw, oversized, err := readLine(br, maxLine)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("failed to read sentences: %w", err)
		}

		lineNo++
		if lineNo <= opts.HeaderLines {
			continue
		}
		stats.Lines++

		if oversized {
			stats.Corrupted++
			log.Debugf("[Reader] dropped line %d longer than %d bytes", lineNo, maxLine)
			continue
		}

		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			stats.Blank++
			continue
		}

		if strings.Count(line, "$") > 1 {
			stats.Corrupted++
			log.Debugf("[Reader] dropped concatenated line %d: %q", lineNo, line)
			continue
		}

		if opts.VerifyChecksum && !checksumOK(line) {
			stats.ChecksumFailures++
			log.Debugf("[Reader] checksum mismatch on line %d: %q", lineNo, line)
			continue
		}

		sentences = append(sentences, Sentence{Raw: line, Fields: SplitFields(line)})
	}

	return sentences, stats, nil
}

// readLine returns the next line without its terminator. A line longer than
// limit is consumed whole and reported as oversized with an empty text.
func readLine(br *bufio.Reader, limit int) (string, bool, error) {
	var buf []byte
	oversized := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if err == io.EOF && (len(buf) > 0 || oversized) {
				return string(buf), oversized, nil
			}
			return "", false, err
		}
		if !oversized {
			if len(buf)+len(chunk) > limit {
				oversized, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), oversized, nil
		}
	}
}

// SplitFields splits a line on commas, replacing empty fields with "0"
func SplitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		if p == "" {
			parts[i] = emptyField
		}
	}
	return parts
}

// checksumOK verifies the *hh suffix against the XOR of the payload.
// Lines without a checksum have nothing to verify and pass.
func checksumOK(line string) bool {
	line = strings.TrimSpace(line)
	start := strings.IndexByte(line, '$')
	star := strings.LastIndexByte(line, '*')
	if start == -1 || star == -1 || star < start {
		return true
	}
	ck := strings.TrimSpace(line[star+1:])
	if len(ck) < 2 {
		return false
	}
	return strings.EqualFold(ck[:2], gonmea.Checksum(line[start+1:star]))
}
