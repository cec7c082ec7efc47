/*
 * fileio.go, part of mdbin.
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

// Package fileio opens files for reading and writing, compressing or decompressing
// them transparently according to their extension: ".zst" (zstd), ".gz" (gzip) and
// ".flate" (raw deflate). Any other extension is read and written as plain text.
package fileio

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Compression is the compression format associated with a file name.
type Compression int

const (
	None Compression = iota
	Zstd
	Gzip
	Flate
)

// CompressionFor returns the compression format for the extension of name.
func CompressionFor(name string) Compression {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".zstd":
		return Zstd
	case ".gz":
		return Gzip
	case ".flate":
		return Flate
	default:
		return None
	}
}

// Strip returns name without its compression extension, if it has one.
func Strip(name string) string {
	if CompressionFor(name) == None {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// multiCloser closes the compressor before the underlying file.
type multiCloser struct {
	io.Writer
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Create creates (or truncates) the file name and returns a writer that
// compresses according to the extension of name.
func Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(f)
	var comp io.WriteCloser
	switch CompressionFor(name) {
	case Zstd:
		comp, err = zstd.NewWriter(buf, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	case Gzip:
		comp, err = gzip.NewWriterLevel(buf, gzip.BestCompression)
	case Flate:
		comp, err = flate.NewWriter(buf, flate.BestCompression)
	default:
		return &multiCloser{Writer: buf, closers: []io.Closer{flusher{buf}, f}}, nil
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return &multiCloser{Writer: comp, closers: []io.Closer{comp, flusher{buf}, f}}, nil
}

type flusher struct{ *bufio.Writer }

func (f flusher) Close() error { return f.Flush() }

// Also, *zstd.Decoder does not implement io.ReadCloser.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens the file name for reading, decompressing according to its extension.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewReader(f)
	var dec io.ReadCloser
	switch CompressionFor(name) {
	case Zstd:
		var z *zstd.Decoder
		z, err = zstd.NewReader(buf)
		if err == nil {
			dec = zstdCloser{z}
		}
	case Gzip:
		dec, err = gzip.NewReader(buf)
	case Flate:
		dec = flate.NewReader(buf)
	default:
		return &readCloser{Reader: buf, closers: []io.Closer{f}}, nil
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return &readCloser{Reader: dec, closers: []io.Closer{dec, f}}, nil
}
