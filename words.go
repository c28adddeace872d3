package wordgraph

import (
	"encoding/binary"
	"io"
)

// wordWriter writes little-endian arrays, padding each one to a 32-bit
// boundary. The first error sticks; later writes are dropped.
type wordWriter struct {
	io.Writer
	buf     []byte
	written int64
	err     error
}

func newWordWriter(w io.Writer) *wordWriter {
	return &wordWriter{Writer: w}
}

func (w *wordWriter) flush() {
	if w.err != nil || len(w.buf) == 0 {
		w.buf = w.buf[:0]
		return
	}
	n, err := w.Write(w.buf)
	w.written += int64(n)
	w.err = err
	w.buf = w.buf[:0]
}

func (w *wordWriter) reserve() {
	if len(w.buf) >= 64*1024 {
		w.flush()
	}
}

func (w *wordWriter) WriteUint32s(data ...uint32) {
	for _, v := range data {
		w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
		w.reserve()
	}
}

func (w *wordWriter) WriteUint16s(data []uint16) {
	for _, v := range data {
		w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
		w.reserve()
	}
	w.pad(2 * len(data))
}

func (w *wordWriter) WriteBytes(data []byte) {
	w.buf = append(w.buf, data...)
	w.pad(len(data))
	w.reserve()
}

func (w *wordWriter) WriteBools(data []bool) {
	for _, v := range data {
		var b byte
		if v {
			b = 1
		}
		w.buf = append(w.buf, b)
		w.reserve()
	}
	w.pad(len(data))
}

// pad writes zero bytes after an array of n bytes.
func (w *wordWriter) pad(n int) {
	for ; n%4 != 0; n++ {
		w.buf = append(w.buf, 0)
	}
}

// Close flushes buffered data and returns the total bytes written.
func (w *wordWriter) Close() (int64, error) {
	w.flush()
	return w.written, w.err
}

// wordReader decodes little-endian arrays at fixed offsets.
type wordReader struct {
	io.ReaderAt
}

func (r wordReader) read(at int64, n int) ([]byte, error) {
	data := make([]byte, n)
	if n == 0 {
		return data, nil
	}
	if read, err := r.ReadAt(data, at); read < n {
		if err == nil || err == io.EOF {
			return nil, structuralf(at, "unexpected end of file reading %d bytes", n)
		}
		return nil, err
	}
	return data, nil
}

func (r wordReader) ReadUint32s(at int64, n int) ([]uint32, error) {
	data, err := r.read(at, 4*n)
	if err != nil {
		return nil, err
	}
	result := make([]uint32, n)
	for i := range result {
		result[i] = binary.LittleEndian.Uint32(data[4*i:])
	}
	return result, nil
}

func (r wordReader) ReadUint16s(at int64, n int) ([]uint16, error) {
	data, err := r.read(at, 2*n)
	if err != nil {
		return nil, err
	}
	result := make([]uint16, n)
	for i := range result {
		result[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	return result, nil
}

func (r wordReader) ReadBytes(at int64, n int) ([]byte, error) {
	return r.read(at, n)
}

func (r wordReader) ReadBools(at int64, n int) ([]bool, error) {
	data, err := r.read(at, n)
	if err != nil {
		return nil, err
	}
	result := make([]bool, n)
	for i, b := range data {
		result[i] = b != 0
	}
	return result, nil
}
