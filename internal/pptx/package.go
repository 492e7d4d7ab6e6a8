// Package pptx reads PowerPoint template packages and writes generated
// presentations. Only the parts the deck pipeline needs are modeled: slide
// size, slide layouts with their placeholders, and new slide parts appended
// to the template's package.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
)

// EMUPerInch is the English Metric Unit scale used throughout OOXML.
const EMUPerInch = 914400

// Inches converts inches to EMU.
func Inches(in float64) int64 {
	return int64(in * EMUPerInch)
}

// Points converts typographic points to EMU.
func Points(pt float64) int64 {
	return int64(pt * EMUPerInch / 72)
}

// pkg is an OOXML package: an ordered set of named zip parts.
type pkg struct {
	order []string
	parts map[string][]byte
}

func newPkg() *pkg {
	return &pkg{parts: make(map[string][]byte)}
}

func readPkg(r io.ReaderAt, size int64) (*pkg, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening pptx package: %w", err)
	}

	p := newPkg()
	for _, file := range zr.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("opening part %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", file.Name, err)
		}
		p.set(file.Name, data)
	}
	return p, nil
}

func readPkgFile(path string) (*pkg, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return readPkg(bytes.NewReader(data), int64(len(data)))
}

func (p *pkg) get(name string) ([]byte, bool) {
	data, ok := p.parts[name]
	return data, ok
}

func (p *pkg) set(name string, data []byte) {
	if _, exists := p.parts[name]; !exists {
		p.order = append(p.order, name)
	}
	p.parts[name] = data
}

// clone copies the package so one template can seed many presentations.
func (p *pkg) clone() *pkg {
	c := newPkg()
	for _, name := range p.order {
		data := p.parts[name]
		c.set(name, append([]byte(nil), data...))
	}
	return c
}

func (p *pkg) writeTo(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, name := range p.order {
		fw, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("creating part %s: %w", name, err)
		}
		if _, err := fw.Write(p.parts[name]); err != nil {
			return fmt.Errorf("writing part %s: %w", name, err)
		}
	}
	return zw.Close()
}
