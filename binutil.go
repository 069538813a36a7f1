package xcsf

import (
	"encoding/binary"
	"io"
	"math"
)

// binutil.go collects the small big-endian read/write helpers shared by
// every condition/action/prediction variant's WriteTo/ReadFrom and by
// snapshot.go's population framing. Kept as free functions rather than a
// wrapped io.Writer/Reader type so each variant can mix plain
// binary.Write calls with these where convenient.

func writeUint8(w io.Writer, v uint8) (int64, error) {
	n, err := w.Write([]byte{v})
	return int64(n), err
}

func readUint8(r io.Reader) (uint8, int64, error) {
	var buf [1]byte
	n, err := io.ReadFull(r, buf[:])
	return buf[0], int64(n), err
}

func writeUint32(w io.Writer, v uint32) (int64, error) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	n, err := w.Write(buf[:])
	return int64(n), err
}

func readUint32(r io.Reader) (uint32, int64, error) {
	var buf [4]byte
	n, err := io.ReadFull(r, buf[:])
	return binary.BigEndian.Uint32(buf[:]), int64(n), err
}

func writeInt64(w io.Writer, v int64) (int64, error) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	n, err := w.Write(buf[:])
	return int64(n), err
}

func readInt64(r io.Reader) (int64, int64, error) {
	var buf [8]byte
	n, err := io.ReadFull(r, buf[:])
	return int64(binary.BigEndian.Uint64(buf[:])), int64(n), err
}

func writeFloat64(w io.Writer, v float64) (int64, error) {
	return writeUint64Raw(w, math.Float64bits(v))
}

func readFloat64(r io.Reader) (float64, int64, error) {
	u, n, err := readUint64Raw(r)
	return math.Float64frombits(u), n, err
}

func writeFloat64Slice(w io.Writer, vs []float64) (int64, error) {
	var total int64
	n, err := writeUint32(w, uint32(len(vs)))
	total += n
	if err != nil {
		return total, err
	}
	for _, v := range vs {
		n, err = writeFloat64(w, v)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func readFloat64Slice(r io.Reader) ([]float64, int64, error) {
	var total int64
	count, n, err := readUint32(r)
	total += n
	if err != nil {
		return nil, total, err
	}
	out := make([]float64, count)
	for i := range out {
		out[i], n, err = readFloat64(r)
		total += n
		if err != nil {
			return nil, total, err
		}
	}
	return out, total, nil
}

func writeUint64Raw(w io.Writer, v uint64) (int64, error) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	n, err := w.Write(buf[:])
	return int64(n), err
}

func readUint64Raw(r io.Reader) (uint64, int64, error) {
	var buf [8]byte
	n, err := io.ReadFull(r, buf[:])
	return binary.BigEndian.Uint64(buf[:]), int64(n), err
}
