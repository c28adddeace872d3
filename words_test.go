package wordgraph

import (
	"bytes"
	"errors"
	"testing"
)

func TestWordWriterPadding(t *testing.T) {
	var buffer bytes.Buffer
	w := newWordWriter(&buffer)
	w.WriteUint16s([]uint16{0x0102, 0x0304, 0x0506})
	w.WriteBools([]bool{true})
	w.WriteBytes([]byte("abcd"))
	w.WriteUint32s(0x0a0b0c0d)

	n, err := w.Close()
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{
		0x02, 0x01, 0x04, 0x03, 0x06, 0x05, 0, 0,
		1, 0, 0, 0,
		'a', 'b', 'c', 'd',
		0x0d, 0x0c, 0x0b, 0x0a,
	}
	if n != int64(len(want)) || !bytes.Equal(buffer.Bytes(), want) {
		t.Errorf("wrote %d bytes %x, want %x", n, buffer.Bytes(), want)
	}
}

type failingWriter struct{ writes int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errors.New("disk full")
}

func TestWordWriterStickyError(t *testing.T) {
	fw := &failingWriter{}
	w := newWordWriter(fw)
	w.WriteBytes(make([]byte, 128*1024))
	w.WriteUint32s(1, 2, 3)

	if _, err := w.Close(); err == nil {
		t.Fatal("Close did not report the write error")
	}
	if fw.writes != 1 {
		t.Errorf("underlying writer called %d times after failing, want 1", fw.writes)
	}
}

func TestWordReaderReaderWriter(t *testing.T) {
	var buffer bytes.Buffer
	w := newWordWriter(&buffer)

	values := make([]uint32, 100000)
	for i := range values {
		values[i] = uint32(i) * 2654435761
	}
	w.WriteUint32s(values...)
	w.WriteUint16s([]uint16{7, 8, 9})
	if _, err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r := wordReader{bytes.NewReader(buffer.Bytes())}
	got, err := r.ReadUint32s(0, len(values))
	if err != nil {
		t.Fatal(err)
	}
	for i := range values {
		if got[i] != values[i] {
			t.Fatalf("value %d: got 0x%08x, want 0x%08x", i, got[i], values[i])
		}
	}

	small, err := r.ReadUint16s(4*int64(len(values)), 3)
	if err != nil {
		t.Fatal(err)
	}
	if small[0] != 7 || small[1] != 8 || small[2] != 9 {
		t.Errorf("ReadUint16s = %v", small)
	}

	if _, err := r.ReadUint32s(int64(buffer.Len())-2, 1); !errors.Is(err, ErrStructure) {
		t.Errorf("reading past the end = %v, want ErrStructure", err)
	}
}
