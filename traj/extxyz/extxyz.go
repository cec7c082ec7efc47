/*
 * extxyz.go, part of mdbin.
 *
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

/*
Package extxyz reads and writes simple extended-XYZ trajectories.

Each frame is an atom-count line, a comment line and one "species x y z" line per atom.
The comment line carries key=value tokens, values optionally double-quoted:

	Lattice="ax ay az bx by bz cx cy cz" Properties=species:S:1:pos:R:3 step=10 time=0.5

The step defaults to the index of the frame in the file, and the time to 0, when absent.
Other numeric tokens are kept as extra fields of the step: a single number as a numerical
field, a quoted list of numbers as a numerical array. Files ending in .zst, .gz or .flate
are compressed.
*/
package extxyz

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	chem "github.com/rmera/mdbin"
	"github.com/rmera/mdbin/internal/fileio"
	"github.com/rmera/mdbin/internal/logging"
	"github.com/rmera/mdbin/traj"
	v3 "github.com/rmera/mdbin/v3"
	"go.uber.org/zap"
)

// Properties is the only per-atom layout supported.
const Properties = "species:S:1:pos:R:3"

// Reader reads frames from an extended-XYZ file. It implements traj.Reader.
type Reader struct {
	name    string
	f       io.ReadCloser
	r       *bufio.Reader
	frame   int
	line    int
	lattice *[3][3]float64 //of the previous frame
}

// New opens the file name for reading.
func New(name string) (*Reader, error) {
	f, err := fileio.Open(name)
	if err != nil {
		return nil, chem.NewFormatError("extxyz.New", "opening %s: %v", name, err)
	}
	return NewFromReader(f, name), nil
}

// NewFromReader reads frames from r. name is only used in error messages.
func NewFromReader(r io.ReadCloser, name string) *Reader {
	return &Reader{name: name, f: r, r: bufio.NewReader(r)}
}

// Close closes the underlying file.
func (R *Reader) Close() error {
	return R.f.Close()
}

func (R *Reader) readLine() (string, error) {
	s, err := R.r.ReadString('\n')
	if err != nil && !(err == io.EOF && s != "") {
		return "", err
	}
	R.line++
	return strings.TrimRight(s, "\r\n"), nil
}

func (R *Reader) formatErr(format string, args ...interface{}) error {
	return chem.NewFormatError("extxyz.Reader.Next", "%s, line %d: %s", R.name, R.line, fmt.Sprintf(format, args...))
}

// Next returns the next frame, or a chem.LastFrameError at the end of the file.
func (R *Reader) Next() (*traj.Step, error) {
	var first string
	var err error
	//blank lines between frames are tolerated
	for first == "" {
		first, err = R.readLine()
		if err == io.EOF {
			return nil, chem.NewLastFrameError(R.name, "extxyz.Reader.Next")
		}
		if err != nil {
			return nil, R.formatErr("%v", err)
		}
		first = strings.TrimSpace(first)
	}
	natoms, err := strconv.Atoi(first)
	if err != nil || natoms < 0 {
		return nil, R.formatErr("invalid atom count %q", first)
	}
	comment, err := R.readLine()
	if err != nil {
		return nil, R.formatErr("missing comment line: %v", err)
	}
	tokens, err := ParseComment(comment)
	if err != nil {
		return nil, R.formatErr("%v", err)
	}
	step := &traj.Step{Step: R.frame}
	var lattice [3][3]float64
	haveLattice := false
	for _, t := range tokens {
		switch t.Key {
		case "Lattice":
			vals, err := parseFloats(t.Value)
			if err != nil || len(vals) != 9 {
				return nil, R.formatErr("invalid Lattice %q", t.Value)
			}
			for i := 0; i < 9; i++ {
				lattice[i/3][i%3] = vals[i]
			}
			haveLattice = true
		case "Properties":
			if !strings.HasPrefix(t.Value, Properties) {
				return nil, R.formatErr("unsupported Properties %q", t.Value)
			}
		case "step":
			if step.Step, err = strconv.Atoi(t.Value); err != nil {
				return nil, R.formatErr("invalid step %q", t.Value)
			}
		case "time":
			if step.Time, err = strconv.ParseFloat(t.Value, 64); err != nil {
				return nil, R.formatErr("invalid time %q", t.Value)
			}
		default:
			vals, err := parseFloats(t.Value)
			if err != nil || len(vals) == 0 {
				continue //non-numeric tokens are ignored
			}
			if t.Quoted {
				step.SetArray(t.Key, vals)
			} else {
				step.SetScalar(t.Key, vals[0])
			}
		}
	}
	if !haveLattice {
		if R.lattice == nil {
			return nil, R.formatErr("no Lattice in the first frame")
		}
		logging.L().Warn("frame without Lattice, using the one from the previous frame", zap.String("file", R.name), zap.Int("frame", R.frame))
		lattice = *R.lattice
	}
	R.lattice = &lattice
	coords := v3.Zeros(natoms)
	symbols := make([]string, natoms)
	for i := 0; i < natoms; i++ {
		l, err := R.readLine()
		if err != nil {
			return nil, R.formatErr("expected %d atoms, got %d", natoms, i)
		}
		fields := strings.Fields(l)
		if len(fields) < 4 {
			return nil, R.formatErr("invalid atom line %q", l)
		}
		symbols[i] = fields[0]
		var xyz [3]float64
		for k := 0; k < 3; k++ {
			if xyz[k], err = strconv.ParseFloat(fields[k+1], 64); err != nil {
				return nil, R.formatErr("invalid coordinate %q", fields[k+1])
			}
		}
		coords.SetVec(i, xyz)
	}
	step.Cell, err = chem.NewUnitCell(lattice, coords, symbols)
	if err != nil {
		return nil, chem.ErrDecorate(err, "extxyz.Reader.Next")
	}
	R.frame++
	return step, nil
}

// Token is a key=value pair of a comment line.
type Token struct {
	Key, Value string
	Quoted     bool
}

// ParseComment splits an extended-XYZ comment line into its key=value tokens.
// Tokens without '=' are ignored.
func ParseComment(s string) ([]Token, error) {
	var ret []Token
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		start := i
		for i < len(s) && s[i] != '=' && s[i] != ' ' && s[i] != '\t' {
			i++
		}
		key := s[start:i]
		if i >= len(s) || s[i] != '=' {
			continue
		}
		i++ //skip '='
		t := Token{Key: key}
		if i < len(s) && s[i] == '"' {
			end := strings.IndexByte(s[i+1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("unterminated quote for key %s", key)
			}
			t.Value, t.Quoted = s[i+1:i+1+end], true
			i += end + 2
		} else {
			start = i
			for i < len(s) && s[i] != ' ' && s[i] != '\t' {
				i++
			}
			t.Value = s[start:i]
		}
		ret = append(ret, t)
	}
	return ret, nil
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Fields(s)
	ret := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		ret[i] = v
	}
	return ret, nil
}

// Writer writes frames to an extended-XYZ file.
type Writer struct {
	name string
	w    io.WriteCloser
	prec int
}

// NewWriter creates the file name for writing. Coordinates are written with prec decimals (8 if not given).
func NewWriter(name string, prec ...int) (*Writer, error) {
	w, err := fileio.Create(name)
	if err != nil {
		return nil, chem.NewFormatError("extxyz.NewWriter", "creating %s: %v", name, err)
	}
	W := &Writer{name: name, w: w, prec: 8}
	if len(prec) > 0 && prec[0] > 0 {
		W.prec = prec[0]
	}
	return W, nil
}

func (W *Writer) float(f float64) string {
	return strconv.FormatFloat(f, 'f', W.prec, 64)
}

// WNext writes one frame. The step and time are always written.
func (W *Writer) WNext(s *traj.Step) error {
	c := s.Cell
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n", c.NAtoms())
	lat := make([]string, 0, 9)
	for _, v := range c.LatticeVectors() {
		for _, x := range v {
			lat = append(lat, W.float(x))
		}
	}
	fmt.Fprintf(&b, "Lattice=\"%s\" Properties=%s step=%d time=%s", strings.Join(lat, " "), Properties, s.Step, strconv.FormatFloat(s.Time, 'g', -1, 64))
	keys := make([]string, 0, len(s.Extra))
	for k := range s.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e := s.Extra[k]
		vals := make([]string, len(e.Value))
		for i, v := range e.Value {
			vals[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if e.CmpType == traj.NumericalArray {
			fmt.Fprintf(&b, " %s=\"%s\"", k, strings.Join(vals, " "))
		} else {
			fmt.Fprintf(&b, " %s=%s", k, vals[0])
		}
	}
	b.WriteString("\n")
	for i := 0; i < c.NAtoms(); i++ {
		r := c.Coord(i)
		fmt.Fprintf(&b, "%s %s %s %s\n", c.Symbol(i), W.float(r[0]), W.float(r[1]), W.float(r[2]))
	}
	if _, err := io.WriteString(W.w, b.String()); err != nil {
		return chem.NewFormatError("extxyz.Writer.WNext", "writing %s: %v", W.name, err)
	}
	return nil
}

// Close flushes and closes the file.
func (W *Writer) Close() error {
	return W.w.Close()
}

// WriteFile writes all the steps of t to the file name.
func WriteFile(name string, t *traj.InMemory) error {
	W, err := NewWriter(name)
	if err != nil {
		return err
	}
	for _, s := range t.Steps {
		if err := W.WNext(s); err != nil {
			W.Close()
			return err
		}
	}
	return W.Close()
}

// ReadFile reads all the frames of the file name.
func ReadFile(name string) (*traj.InMemory, error) {
	R, err := New(name)
	if err != nil {
		return nil, err
	}
	defer R.Close()
	return traj.ReadAll(R)
}
