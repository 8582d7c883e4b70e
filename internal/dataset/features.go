package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Features is a row-major feature matrix with one ground-truth label per row.
type Features struct {
	Labels []bool
	Values []float32 // len(Labels) * Cols values
	Cols   int
}

// Rows returns the number of feature rows.
func (f *Features) Rows() int {
	return len(f.Labels)
}

// Row returns the features of row i.
func (f *Features) Row(i int) []float32 {
	return f.Values[i*f.Cols : (i+1)*f.Cols]
}

// LoadFeatures reads "label,f1,...,fk" rows. Lines starting with '#' and blank
// lines are skipped. Every row must have the same number of features.
func LoadFeatures(path string) (*Features, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open features: %w", err)
	}
	defer func() { _ = file.Close() }()

	f := &Features{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := splitRecord(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want a label and at least one feature", lineNo)
		}
		if f.Cols == 0 {
			f.Cols = len(fields) - 1
		} else if len(fields)-1 != f.Cols {
			return nil, fmt.Errorf("line %d: want %d features, got %d", lineNo, f.Cols, len(fields)-1)
		}

		label, err := ParseLabel(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: label %q: %w", lineNo, fields[0], err)
		}
		for _, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: feature %q: %w", lineNo, field, err)
			}
			f.Values = append(f.Values, float32(v))
		}
		f.Labels = append(f.Labels, label)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan features: %w", err)
	}
	return f, nil
}
