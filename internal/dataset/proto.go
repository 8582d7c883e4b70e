package dataset

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	auc "github.com/jamesainslie/go-auc"
)

// Wire layout, equivalent to:
//
//	message Sample {
//	  bool label = 1;
//	  double score = 2;
//	}
//	message Dataset {
//	  string source = 1;
//	  string model = 2;
//	  string description = 3;
//	  repeated Sample samples = 4;
//	}
const (
	sampleLabel = protowire.Number(1)
	sampleScore = protowire.Number(2)

	datasetSource      = protowire.Number(1)
	datasetModel       = protowire.Number(2)
	datasetDescription = protowire.Number(3)
	datasetSamples     = protowire.Number(4)
)

// ErrMalformed indicates a protobuf dataset that cannot be decoded.
var ErrMalformed = errors.New("dataset: malformed protobuf")

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendSample(b []byte, s auc.Sample[float64]) []byte {
	if s.Label {
		b = protowire.AppendTag(b, sampleLabel, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	b = protowire.AppendTag(b, sampleScore, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(s.Score))
}

func marshalProto(d *Dataset) []byte {
	// 1 tag + 1 length + 2 label + 1 tag + 8 score per sample.
	b := make([]byte, 0, 13*len(d.Samples)+len(d.Header.Source)+len(d.Header.Model)+len(d.Header.Description)+16)
	b = appendString(b, datasetSource, d.Header.Source)
	b = appendString(b, datasetModel, d.Header.Model)
	b = appendString(b, datasetDescription, d.Header.Description)

	var msg []byte
	for _, s := range d.Samples {
		msg = appendSample(msg[:0], s)
		b = protowire.AppendTag(b, datasetSamples, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}
	return b
}

func unmarshalSample(b []byte) (auc.Sample[float64], error) {
	var s auc.Sample[float64]
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return s, protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case num == sampleLabel && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return s, protowire.ParseError(n)
			}
			s.Label = protowire.DecodeBool(v)
			b = b[n:]
		case num == sampleScore && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return s, protowire.ParseError(n)
			}
			s.Score = math.Float64frombits(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return s, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return s, nil
}

func unmarshalProto(b []byte) (*Dataset, error) {
	d := &Dataset{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		if typ != protowire.BytesType || num < datasetSource || num > datasetSamples {
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: field %d: %w", ErrMalformed, num, protowire.ParseError(n))
		}
		b = b[n:]

		switch num {
		case datasetSource:
			d.Header.Source = string(v)
		case datasetModel:
			d.Header.Model = string(v)
		case datasetDescription:
			d.Header.Description = string(v)
		case datasetSamples:
			s, err := unmarshalSample(v)
			if err != nil {
				return nil, fmt.Errorf("%w: sample %d: %w", ErrMalformed, len(d.Samples), err)
			}
			d.Samples = append(d.Samples, s)
		}
	}
	return d, nil
}
