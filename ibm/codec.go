package ibm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedLine is returned for a parameter or alignment line with the
// wrong number of fields or a non-numeric value.
var ErrMalformedLine = errors.New("malformed line")

// OutputEpsilon is the cutoff below which entries are left out of a
// written parameter file, except NULL translations and q(0|·).
const OutputEpsilon = 1e-6

// maxSentenceLength bounds the l and m of a distortion key read from a
// parameter file. Each key allocates a row of l+1 slots.
const maxSentenceLength = 4096

// WriteParams writes p in the line-oriented parameter format.
//
// Model 1 writes "<e> <f> <t>" lines. Model 2 writes "t <e> <f> <t>" lines
// followed by "q <j> <i> <l> <m> <q>" lines.
func WriteParams(w io.Writer, p *Params) error {
	bw := bufio.NewWriter(w)
	prefix := ""
	if p.Model == Model2 {
		prefix = "t "
	}
	p.T.Each(func(f, e int, prob float64) {
		if prob <= OutputEpsilon && e != NullID {
			return
		}
		fmt.Fprintf(bw, "%s%s %s %s\n", prefix, p.Target.Word(e), p.Source.Word(f), formatFloat(prob))
	})
	if p.Q != nil {
		for _, k := range p.Q.Keys() {
			row, err := p.Q.Row(k)
			if err != nil {
				return err
			}
			for j, q := range row {
				if q <= OutputEpsilon && j != 0 {
					continue
				}
				fmt.Fprintf(bw, "q %d %d %d %d %s\n", j, k.I, k.L, k.M, formatFloat(q))
			}
		}
	}
	return bw.Flush()
}

// ReadParams parses a parameter file written for the given model.
// Distortion rows are sized from their key; slots absent from the file
// are zero.
func ReadParams(r io.Reader, model Model) (*Params, error) {
	p := NewParams(model)
	err := eachLine(r, func(n int, fields []string) error {
		if model == Model1 {
			return p.readTrans(n, fields)
		}
		switch fields[0] {
		case "t":
			return p.readTrans(n, fields[1:])
		case "q":
			return p.readDistortion(n, fields[1:])
		}
		return malformed(n, "unknown line type %q", fields[0])
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Params) readTrans(n int, fields []string) error {
	if len(fields) != 3 {
		return malformed(n, "want e f t, got %d fields", len(fields))
	}
	prob, err := parseFloat(n, fields[2])
	if err != nil {
		return err
	}
	p.T.Set(p.Source.Add(fields[1]), p.Target.Add(fields[0]), prob)
	return nil
}

func (p *Params) readDistortion(n int, fields []string) error {
	if len(fields) != 5 {
		return malformed(n, "want j i l m q, got %d fields", len(fields))
	}
	var v [4]int
	for i := range v {
		x, err := parseInt(n, fields[i])
		if err != nil {
			return err
		}
		v[i] = x
	}
	prob, err := parseFloat(n, fields[4])
	if err != nil {
		return err
	}
	k := Key{I: v[1], L: v[2], M: v[3]}
	if k.I < 1 || k.I > k.M || k.L < 0 {
		return malformed(n, "invalid key %s", k)
	}
	if k.L > maxSentenceLength || k.M > maxSentenceLength {
		return malformed(n, "key %s exceeds sentence length %d", k, maxSentenceLength)
	}
	if err := p.Q.Set(k, v[0], prob); err != nil {
		return fmt.Errorf("line %d: %w", n, err)
	}
	return nil
}

// eachLine calls fn with the 1-based line number and whitespace-separated
// fields of every non-blank line.
func eachLine(r io.Reader, fn func(n int, fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	n := 0
	for sc.Scan() {
		n++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if err := fn(n, fields); err != nil {
			return err
		}
	}
	return sc.Err()
}

func malformed(n int, format string, args ...any) error {
	return fmt.Errorf("line %d: %w: %s", n, ErrMalformedLine, fmt.Sprintf(format, args...))
}

func parseFloat(n int, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, malformed(n, "bad number %q", s)
	}
	return v, nil
}

func parseInt(n int, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, malformed(n, "bad integer %q", s)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
