// Package media turns uploaded files into stored media objects: videos are
// spooled and probed for duration, images are normalised to WebP.
package media

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// File is an uploaded file waiting to be stored.
type File struct {
	Name        string
	Size        int64
	ContentType string
	open        func() (io.ReadCloser, error)
}

// Open returns a fresh reader over the file contents.
func (f *File) Open() (io.ReadCloser, error) {
	return f.open()
}

// Ext returns the lowercased file extension including the dot.
func (f *File) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// FromMultipart wraps a multipart form file. A nil header yields nil.
func FromMultipart(fh *multipart.FileHeader) *File {
	if fh == nil {
		return nil
	}
	return &File{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// NewFile builds a File from an opener, for callers that do not hold a
// multipart header (seeding, tests).
func NewFile(name, contentType string, size int64, open func() (io.ReadCloser, error)) *File {
	return &File{Name: name, Size: size, ContentType: contentType, open: open}
}
