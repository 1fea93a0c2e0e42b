/*
 * pdb.go, part of carbslab.
 *
 * Copyright 2026 The carbslab authors
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
 */

package pdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/molsurf/carbslab/chem"
)

// Options controls how a structure is written.
type Options struct {
	// Reindex assigns fresh sequential serials (1-based, arena order)
	// before writing.
	Reindex bool
	// Remark, when set, is emitted as a REMARK header line.
	Remark string
}

// Read loads a structure from path. A .gz suffix selects transparent
// decompression. A missing or unreadable file is returned as a plain error;
// there is no diagnostic recovery for it.
func Read(path string) (*chem.Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("pdb: %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".pdb")
	return ReadFrom(r, name)
}

// ReadFrom parses a PDB stream. CONECT records are resolved through the
// serial numbers of the ATOM records; a file that repeats a serial and also
// carries CONECT records is rejected, since the connectivity cannot be
// resolved unambiguously.
func ReadFrom(r io.Reader, name string) (*chem.Structure, error) {
	s := &chem.Structure{Name: name}
	bySerial := make(map[int]int)
	dupSerial, hasDup := 0, false
	var conects [][]int
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		line := sc.Text()
		ln++
		switch {
		case strings.HasPrefix(line, "CRYST1"):
			box, err := parseCryst1(line)
			if err != nil {
				return nil, fmt.Errorf("pdb: line %d: %w", ln, err)
			}
			s.Box = box
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			at, err := parseAtomLine(line)
			if err != nil {
				return nil, fmt.Errorf("pdb: line %d: %w", ln, err)
			}
			id := s.AddAtom(at)
			if _, seen := bySerial[at.Serial]; seen && !hasDup {
				dupSerial, hasDup = at.Serial, true
			}
			bySerial[at.Serial] = id
		case strings.HasPrefix(line, "CONECT"):
			serials, err := parseConect(line)
			if err != nil {
				return nil, fmt.Errorf("pdb: line %d: %w", ln, err)
			}
			conects = append(conects, serials)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("pdb: %w", err)
	}
	// serial-addressed connectivity is ambiguous when serials repeat
	if hasDup && len(conects) > 0 {
		return nil, fmt.Errorf("pdb: atom serial %d is not unique but CONECT records are present", dupSerial)
	}
	for _, serials := range conects {
		from, ok := bySerial[serials[0]]
		if !ok {
			return nil, fmt.Errorf("pdb: CONECT references unknown serial %d", serials[0])
		}
		for _, sn := range serials[1:] {
			to, ok := bySerial[sn]
			if !ok {
				return nil, fmt.Errorf("pdb: CONECT references unknown serial %d", sn)
			}
			s.AddBond(from, to)
		}
	}
	return s, nil
}

func parseCryst1(line string) (chem.Box, error) {
	if len(line) < 54 {
		return chem.Box{}, fmt.Errorf("short CRYST1 record")
	}
	vals := make([]float64, 6)
	cols := [][2]int{{6, 15}, {15, 24}, {24, 33}, {33, 40}, {40, 47}, {47, 54}}
	for i, c := range cols {
		v, err := strconv.ParseFloat(strings.TrimSpace(line[c[0]:c[1]]), 64)
		if err != nil {
			return chem.Box{}, fmt.Errorf("CRYST1 field %d: %w", i+1, err)
		}
		vals[i] = v
	}
	return chem.NewBox(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]), nil
}

func parseAtomLine(line string) (*chem.Atom, error) {
	if len(line) < 54 {
		return nil, fmt.Errorf("short ATOM record")
	}
	at := new(chem.Atom)
	var err error
	if at.Serial, err = strconv.Atoi(strings.TrimSpace(line[6:11])); err != nil {
		return nil, fmt.Errorf("serial: %w", err)
	}
	at.Name = strings.TrimSpace(line[12:16])
	at.ResName = strings.TrimSpace(line[17:20])
	// the residue id field may legitimately be blank before assignment
	if res := strings.TrimSpace(line[22:26]); res != "" {
		if at.ResID, err = strconv.Atoi(res); err != nil {
			return nil, fmt.Errorf("residue id: %w", err)
		}
	}
	if at.Pos.X, err = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64); err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	if at.Pos.Y, err = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64); err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	if at.Pos.Z, err = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64); err != nil {
		return nil, fmt.Errorf("z: %w", err)
	}
	return at, nil
}

func parseConect(line string) ([]int, error) {
	var out []int
	for start := 6; start+5 <= len(line); start += 5 {
		field := strings.TrimSpace(line[start : start+5])
		if field == "" {
			break
		}
		sn, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("CONECT serial: %w", err)
		}
		out = append(out, sn)
	}
	if len(out) < 2 {
		return nil, fmt.Errorf("CONECT record with fewer than two serials")
	}
	return out, nil
}

// Write saves s to path, gzip-compressed when the path ends in .gz.
func Write(path string, s *chem.Structure, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	var w io.Writer = f
	if strings.HasSuffix(path, ".gz") {
		zw := gzip.NewWriter(f)
		defer func() {
			if cerr := zw.Close(); err == nil {
				err = cerr
			}
		}()
		w = zw
	}
	return WriteTo(w, s, opts)
}

// WriteTo emits the structure: optional REMARK, CRYST1 when the box has
// extent, one ATOM record per atom in arena order, CONECT records for every
// bonded atom, and END.
func WriteTo(w io.Writer, s *chem.Structure, opts Options) error {
	bw := bufio.NewWriter(w)
	if opts.Reindex {
		for i, at := range s.Atoms {
			at.Serial = i + 1
		}
	}
	if opts.Remark != "" {
		fmt.Fprintf(bw, "REMARK     %s\n", opts.Remark)
	}
	if !s.Box.Zero() {
		l, a := s.Box.Lengths, s.Box.Angles
		fmt.Fprintf(bw, "CRYST1%9.3f%9.3f%9.3f%7.2f%7.2f%7.2f P 1           1\n",
			l.X, l.Y, l.Z, a[0], a[1], a[2])
	}
	for _, at := range s.Atoms {
		name := at.Name
		if len(name) < 4 {
			name = " " + name // short names start at column 14
		}
		fmt.Fprintf(bw, "ATOM  %5d %-4s %-3s  %4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
			at.Serial, name, at.ResName, at.ResID,
			at.Pos.X, at.Pos.Y, at.Pos.Z, 1.0, 0.0, element(at))
	}
	for _, at := range s.Atoms {
		if len(at.Bonds) == 0 {
			continue
		}
		fmt.Fprintf(bw, "CONECT%5d", at.Serial)
		ids := append([]int(nil), at.Bonds...)
		sort.Ints(ids)
		for _, id := range ids {
			fmt.Fprintf(bw, "%5d", s.Atom(id).Serial)
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintln(bw, "END")
	return bw.Flush()
}

// element maps an atom to its PDB element symbol; unclassifiable names get
// a blank element field rather than failing the write, so diagnostic
// artifacts can always be produced.
func element(at *chem.Atom) string {
	sp, err := at.Species()
	if err != nil {
		return ""
	}
	switch sp {
	case chem.Carbon:
		return "C"
	case chem.Oxygen:
		return "O"
	case chem.Calcium:
		return "CA"
	}
	return ""
}
