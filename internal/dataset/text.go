package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	auc "github.com/jamesainslie/go-auc"
)

// parseHeaderLine applies one "# Key: value" line to h. Unknown keys and
// free-form comments are ignored.
func parseHeaderLine(h *Header, line string) {
	line = strings.TrimSpace(strings.TrimPrefix(line, "#"))
	if value, ok := strings.CutPrefix(line, "Source:"); ok {
		h.Source = strings.TrimSpace(value)
	} else if value, ok := strings.CutPrefix(line, "Model:"); ok {
		h.Model = strings.TrimSpace(value)
	} else if value, ok := strings.CutPrefix(line, "Description:"); ok {
		h.Description = strings.TrimSpace(value)
	}
}

// splitRecord splits a record on commas, tabs or runs of spaces.
func splitRecord(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == '\t' || r == ' '
	})
}

// ParseLabel accepts 1/0, true/false (any case) and the -1 negative label used
// by svmlight files.
func ParseLabel(s string) (bool, error) {
	if s == "-1" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func readText(r io.Reader) (*Dataset, error) {
	d := &Dataset{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			parseHeaderLine(&d.Header, line)
			continue
		}

		fields := splitRecord(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want 2 fields, got %d", lineNo, len(fields))
		}
		if len(d.Samples) == 0 && strings.EqualFold(fields[0], "label") {
			continue // column names
		}

		label, err := ParseLabel(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: label %q: %w", lineNo, fields[0], err)
		}
		score, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: score %q: %w", lineNo, fields[1], err)
		}
		d.Samples = append(d.Samples, auc.Sample[float64]{Label: label, Score: score})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan dataset: %w", err)
	}
	return d, nil
}

func writeText(w io.Writer, d *Dataset) error {
	bw := bufio.NewWriter(w)
	for _, kv := range [][2]string{
		{"Source", d.Header.Source},
		{"Model", d.Header.Model},
		{"Description", d.Header.Description},
	} {
		if kv[1] != "" {
			fmt.Fprintf(bw, "# %s: %s\n", kv[0], kv[1])
		}
	}

	for _, s := range d.Samples {
		label := '0'
		if s.Label {
			label = '1'
		}
		bw.WriteRune(label)
		bw.WriteByte(',')
		bw.WriteString(strconv.FormatFloat(s.Score, 'g', -1, 64))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
