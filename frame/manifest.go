package frame

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Delimiter separates the filename field and the object-view fields of a manifest line.
const Delimiter = "|"

var filenamePattern = regexp.MustCompile(`_o([0-9]+)_([0-9]+\.[0-9]+)$`)

// ParseManifestLine parses one manifest record into a Frame.
func ParseManifestLine(line string) (*Frame, error) {
	blocks := strings.Split(strings.TrimRight(line, "\r\n"), Delimiter)

	head := strings.TrimSpace(blocks[0])
	marker, rest := head, ""
	if i := strings.IndexFunc(head, unicode.IsSpace); i >= 0 {
		marker, rest = head[:i], strings.TrimSpace(head[i:])
	}
	_, size := utf8.DecodeLastRuneInString(marker)
	filename := marker[:len(marker)-size]

	label, timestamp, err := parseFilename(filename)
	if err != nil {
		return nil, &ManifestParseError{Input: line, cause: err}
	}

	fields := blocks[1:]
	if rest != "" {
		fields = append([]string{rest}, fields...)
	}

	views := make([]View, 0, len(fields))
	for _, field := range fields {
		tuple, err := parseTuple(field)
		if err != nil {
			return nil, &ManifestParseError{Input: line, cause: err}
		}
		view, err := NormalizeView(tuple)
		if err != nil {
			return nil, &ManifestParseError{Input: line, cause: err}
		}
		views = append(views, view)
	}

	return &Frame{filename: filename, label: label, timestamp: timestamp, views: views}, nil
}

func parseFilename(name string) (int, float64, error) {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, ErrInvalidFilename
	}
	label, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, err
	}
	timestamp, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, err
	}
	return label, timestamp, nil
}

func parseTuple(s string) ([]int, error) {
	fields := strings.Fields(s)
	tuple := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		tuple[i] = n
	}
	return tuple, nil
}
