package embedding

import (
	"bytes"
	"os"
	"strconv"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// Load reads a vector file in word2vec text format: a "<count> <dims>" header
// line followed by one "<token> <v1> ... <vdims>" line per token. The file is
// memory mapped read-only, parsed once and unmapped before Load returns.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrFileLoad, "open %s: %v", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(ErrFileLoad, "stat %s: %v", path, err)
	}
	if st.Size() == 0 {
		return nil, errors.Wrapf(ErrFileLoad, "%s: empty file", path)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrapf(ErrFileLoad, "mmap %s: %v", path, err)
	}
	defer func() {
		_ = m.Unmap()
	}()

	t, err := parse(m)
	if err != nil {
		return nil, errors.Wrapf(ErrFileLoad, "%s: %v", path, err)
	}
	return t, nil
}

func parse(data []byte) (*Table, error) {
	header, rest := nextLine(data)
	fields := bytes.Fields(header)
	if len(fields) != 2 {
		return nil, errors.New("header must be \"<count> <dims>\"")
	}
	count, err := strconv.Atoi(string(fields[0]))
	if err != nil || count < 0 {
		return nil, errors.Errorf("bad token count %q", fields[0])
	}
	dims, err := strconv.Atoi(string(fields[1]))
	if err != nil || dims < 0 {
		return nil, errors.Errorf("bad dimension %q", fields[1])
	}

	t := newTable(dims, count)
	vec := make([]float64, dims)
	rows := 0
	for line := 2; len(rest) > 0; line++ {
		var raw []byte
		raw, rest = nextLine(rest)
		fields := bytes.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != dims+1 {
			return nil, errors.Errorf("line %d: %d values, want %d", line, len(fields)-1, dims)
		}
		for j, fld := range fields[1:] {
			v, err := strconv.ParseFloat(string(fld), 64)
			if err != nil {
				return nil, errors.Errorf("line %d: %v", line, err)
			}
			vec[j] = v
		}
		t.add(string(fields[0]), vec)
		rows++
	}
	if rows != count {
		return nil, errors.Errorf("header announces %d tokens, found %d", count, rows)
	}
	return t, nil
}

func nextLine(data []byte) (line, rest []byte) {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return bytes.TrimSuffix(data[:i], []byte{'\r'}), data[i+1:]
	}
	return data, nil
}
