// Package codec encodes and decodes whole reflection collections as
// self-describing binary snapshots.
//
// The snapshot is the module's concrete format-adapter boundary: a
// decoded stream is re-ingested through the same validity filter as
// any other adapter, so records with NaN values or non-positive
// sigmas never enter the collection.
//
// Codec selection is a breaking-change boundary: snapshots written
// with a newer format version may no longer decode with older code.
package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/xtalgo/xtalgo"
	"github.com/xtalgo/xtalgo/geom"
	"github.com/xtalgo/xtalgo/hkl"
	"github.com/xtalgo/xtalgo/symmetry"
)

// Compression selects the payload compression of a snapshot.
type Compression uint8

const (
	// None stores the payload uncompressed.
	None Compression = iota
	// LZ4 compresses the payload as an LZ4 frame.
	LZ4
	// Zstd compresses the payload as a zstandard stream.
	Zstd
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

const (
	magic   = "XTSN"
	version = 1

	// maxStringLen bounds decoded string fields (symmetry triplets,
	// names) against corrupt headers.
	maxStringLen = 1 << 20
)

var (
	// ErrBadMagic is returned when the stream is not a snapshot.
	ErrBadMagic = errors.New("codec: not a snapshot stream")
	// ErrVersion is returned for snapshots written by an
	// incompatible format version.
	ErrVersion = errors.New("codec: unsupported snapshot version")
	// ErrCompression is returned for an unknown compression tag.
	ErrCompression = errors.New("codec: unknown compression")
)

// wireRefl is the fixed-width on-disk record layout.
type wireRefl struct {
	H, K, L int32
	Sign    int8
	Isym    int8
	NObs    int32
	Value   float64
	Sigma   float64
}

// Write encodes the collection to w.
// Layout: [magic 4][version 1][compression 1][compressed payload].
func Write(w io.Writer, iv *xtalgo.Intensities, c Compression) error {
	if _, err := w.Write([]byte(magic)); err != nil {
		return err
	}
	if _, err := w.Write([]byte{version, byte(c)}); err != nil {
		return err
	}

	var payload io.Writer
	var finish func() error
	switch c {
	case None:
		bw := bufio.NewWriter(w)
		payload, finish = bw, bw.Flush
	case LZ4:
		zw := lz4.NewWriter(w)
		payload, finish = zw, zw.Close
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		payload, finish = zw, zw.Close
	default:
		return fmt.Errorf("%w: %s", ErrCompression, c)
	}

	if err := writePayload(payload, iv); err != nil {
		return err
	}
	return finish()
}

func writePayload(w io.Writer, iv *xtalgo.Intensities) error {
	cell := [6]float64{iv.Cell.A, iv.Cell.B, iv.Cell.C, iv.Cell.Alpha, iv.Cell.Beta, iv.Cell.Gamma}
	for _, v := range []any{cell, iv.CellRMSD, iv.Wavelength, uint8(iv.Type)} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	sgName, sgTriplets := "", ""
	if iv.SpaceGroup != nil {
		sgName = iv.SpaceGroup.Name
		sgTriplets = iv.SpaceGroup.Triplets()
	}
	for _, s := range []string{sgName, sgTriplets, tripletsOf(iv.IsymOps)} {
		if err := writeString(w, s); err != nil {
			return err
		}
	}

	b := iv.AnisoB.B
	aniso := [6]float64{b.U11, b.U22, b.U33, b.U12, b.U13, b.U23}
	if err := binary.Write(w, binary.LittleEndian, aniso); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(iv.Data))); err != nil {
		return err
	}
	for i := range iv.Data {
		r := &iv.Data[i]
		wr := wireRefl{
			H: int32(r.HKL[0]), K: int32(r.HKL[1]), L: int32(r.HKL[2]),
			Sign: int8(r.Sign), Isym: r.Isym, NObs: r.NObs,
			Value: r.Value, Sigma: r.Sigma,
		}
		if err := binary.Write(w, binary.LittleEndian, wr); err != nil {
			return err
		}
	}
	return nil
}

// Read decodes a snapshot into a new collection. Options (logger,
// metrics) are applied to the decoded collection.
func Read(r io.Reader, optFns ...xtalgo.Option) (*xtalgo.Intensities, error) {
	header := make([]byte, 6)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if string(header[:4]) != magic {
		return nil, ErrBadMagic
	}
	if header[4] != version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, header[4])
	}

	var payload io.Reader
	switch c := Compression(header[5]); c {
	case None:
		payload = bufio.NewReader(r)
	case LZ4:
		payload = lz4.NewReader(r)
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		payload = zr
	default:
		return nil, fmt.Errorf("%w: %s", ErrCompression, c)
	}

	return readPayload(payload, optFns)
}

func readPayload(r io.Reader, optFns []xtalgo.Option) (*xtalgo.Intensities, error) {
	var cell, rmsd, aniso [6]float64
	var wavelength float64
	var dataType uint8
	if err := binary.Read(r, binary.LittleEndian, &cell); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &rmsd); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &wavelength); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &dataType); err != nil {
		return nil, err
	}

	sgName, err := readString(r)
	if err != nil {
		return nil, err
	}
	sgTriplets, err := readString(r)
	if err != nil {
		return nil, err
	}
	isymTriplets, err := readString(r)
	if err != nil {
		return nil, err
	}

	if err := binary.Read(r, binary.LittleEndian, &aniso); err != nil {
		return nil, err
	}
	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}

	iv := xtalgo.New(optFns...)
	if cell[0] > 0 {
		iv.SetUnitCell(geom.NewUnitCell(cell[0], cell[1], cell[2], cell[3], cell[4], cell[5]), rmsd)
	}
	iv.Wavelength = wavelength
	iv.Type = xtalgo.DataType(dataType)
	if sgTriplets != "" {
		sg, err := symmetry.FromTriplets(sgTriplets)
		if err != nil {
			return nil, fmt.Errorf("codec: space group: %w", err)
		}
		sg.Name = sgName
		iv.SpaceGroup = sg
	}
	if isymTriplets != "" {
		ops, err := opsOf(isymTriplets)
		if err != nil {
			return nil, fmt.Errorf("codec: isym ops: %w", err)
		}
		iv.IsymOps = ops
	}
	iv.AnisoB = xtalgo.AnisoScaling{B: geom.SMat33{
		U11: aniso[0], U22: aniso[1], U33: aniso[2],
		U12: aniso[3], U13: aniso[4], U23: aniso[5],
	}}

	for n := uint64(0); n < count; n++ {
		var wr wireRefl
		if err := binary.Read(r, binary.LittleEndian, &wr); err != nil {
			return nil, err
		}
		// Re-ingest through the validity filter; NObs survives only
		// for records the filter admits.
		before := iv.Len()
		iv.AddIfValid(
			hkl.New(int(wr.H), int(wr.K), int(wr.L)),
			xtalgo.Sign(wr.Sign), wr.Isym, wr.Value, wr.Sigma,
		)
		if iv.Len() > before {
			iv.Data[iv.Len()-1].NObs = wr.NObs
		}
	}
	return iv, nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	if n > maxStringLen {
		return "", fmt.Errorf("codec: string field of %d bytes exceeds limit", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func tripletsOf(ops []symmetry.Op) string {
	if len(ops) == 0 {
		return ""
	}
	s := ops[0].Triplet()
	for _, op := range ops[1:] {
		s += ";" + op.Triplet()
	}
	return s
}

func opsOf(triplets string) ([]symmetry.Op, error) {
	parts := strings.Split(triplets, ";")
	ops := make([]symmetry.Op, 0, len(parts))
	for _, t := range parts {
		op, err := symmetry.ParseOp(t)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}
