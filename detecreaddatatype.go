package featureclust

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x78},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZ:
		return "zlib"
	case DataTypeBZip2:
		return "bzip2"
	}

	return "invalid"
}

// DetectDataType attempts to detect the data type of a stream by peeking at
// its first bytes and comparing them against a set of known signatures. Byte
// code signatures from https://stackoverflow.com/a/19127748/199475 . Nothing
// is consumed from r.
func DetectDataType(r *bufio.Reader) (DataType, error) {
	buff, err := r.Peek(6)
	if err != nil && err != io.EOF {
		return DataTypeInvalid, err
	}

	// Match known signatures
Outer:
	for dt, sig := range byteCodeSigs {
		if len(buff) < len(sig) {
			continue
		}
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}

		// A lone 0x78 is only zlib if the header checksum agrees; otherwise
		// it is just a lowercase 'x' at the start of a text file.
		if dt == DataTypeZ && (len(buff) < 2 || (uint16(buff[0])<<8|uint16(buff[1]))%31 != 0) {
			continue
		}
		return dt, nil
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompressReadCloser wraps rc in the decompressor that matches its
// leading bytes. Uncompressed data is passed through. Closing the returned
// value closes rc.
func MaybeDecompressReadCloser(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)

	dt, err := DetectDataType(br)
	if err != nil {
		return nil, pfx.Err(err)
	}

	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &readCloserFaker{Reader: gz, close: closeBoth(gz, rc)}, nil
	case DataTypeZip:
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			return nil, pfx.Err(err)
		}
		return &readCloserFaker{Reader: zr, close: rc.Close}, nil
	case DataTypeBZip2:
		return &readCloserFaker{Reader: bzip2.NewReader(br), close: rc.Close}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &readCloserFaker{Reader: reader, close: rc.Close}, nil
	case DataTypeZ:
		zl, err := zlib.NewReader(br)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return &readCloserFaker{Reader: zl, close: closeBoth(zl, rc)}, nil
	}

	// No data type detected. For now, we assume this is uncompressed.
	return &readCloserFaker{Reader: br, close: rc.Close}, nil
}

// readCloserFaker "upgrades" readers that don't need to be closed, delegating
// Close to the underlying source.
type readCloserFaker struct {
	io.Reader
	close func() error
}

func (c *readCloserFaker) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}

func closeBoth(inner, outer io.Closer) func() error {
	return func() error {
		err := inner.Close()
		if err2 := outer.Close(); err == nil {
			err = err2
		}
		return err
	}
}
