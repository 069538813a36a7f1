package neural

import (
	"encoding/binary"
	"io"
	"math"
)

// binutil.go mirrors the package xcsf big-endian framing helpers (binutil.go
// there) for this package's own layer WriteTo/ReadFrom implementations.

func writeInts(w io.Writer, vs ...int) (int64, error) {
	var total int64
	for _, v := range vs {
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(int32(v)))
		n, err := w.Write(buf[:])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func readInts(r io.Reader, count int) ([]int, int64, error) {
	var total int64
	out := make([]int, count)
	for i := 0; i < count; i++ {
		var buf [4]byte
		n, err := io.ReadFull(r, buf[:])
		total += int64(n)
		if err != nil {
			return nil, total, err
		}
		out[i] = int(int32(binary.BigEndian.Uint32(buf[:])))
	}
	return out, total, nil
}

func writeFloats(w io.Writer, vs []float64) (int64, error) {
	var total int64
	n, err := writeInts(w, len(vs))
	total += n
	if err != nil {
		return total, err
	}
	for _, v := range vs {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
		nn, err := w.Write(buf[:])
		total += int64(nn)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func readFloats(r io.Reader) ([]float64, int64, error) {
	var total int64
	counts, n, err := readInts(r, 1)
	total += n
	if err != nil {
		return nil, total, err
	}
	out := make([]float64, counts[0])
	for i := range out {
		var buf [8]byte
		nn, err := io.ReadFull(r, buf[:])
		total += int64(nn)
		if err != nil {
			return nil, total, err
		}
		out[i] = math.Float64frombits(binary.BigEndian.Uint64(buf[:]))
	}
	return out, total, nil
}
