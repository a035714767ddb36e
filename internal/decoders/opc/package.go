// Package opc opens Open Packaging Convention containers, the zip-based
// format behind .docx and .pptx files. It resolves part relationships and
// tracks every part reader it hands out so that closing the package
// releases them all.
package opc

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/custodia-labs/docdecode/internal/core/domain"
)

// Relationship types for the main document part, transitional and strict.
const (
	RelTypeOfficeDocument       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelTypeOfficeDocumentStrict = "http://purl.oclc.org/ooxml/officeDocument/relationships/officeDocument"
)

// ErrPartNotFound indicates the package has no part with the given name.
var ErrPartNotFound = errors.New("part not found")

// ErrClosed indicates the package was used after Close.
var ErrClosed = errors.New("package closed")

// Relationship is one entry of a .rels part.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// IsExternal reports whether the target lives outside the package.
func (r Relationship) IsExternal() bool {
	return strings.EqualFold(r.TargetMode, "External")
}

type relationshipsXML struct {
	Items []Relationship `xml:"Relationship"`
}

// Package is an opened OPC container. It must be closed by the caller.
type Package struct {
	mu     sync.Mutex
	parts  map[string]*zip.File
	open   map[*partReader]struct{}
	closed bool
}

// Open opens the container stored in r. Failure to read the archive is
// reported as an IOError.
func Open(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, domain.IOFailure("open package", err)
	}

	p := &Package{
		parts: make(map[string]*zip.File, len(zr.File)),
		open:  make(map[*partReader]struct{}),
	}
	for _, f := range zr.File {
		p.parts[partKey(f.Name)] = f
	}
	return p, nil
}

// partKey normalises a part name. Part names compare case-insensitively
// and without a leading slash.
func partKey(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, "/"))
}

// Has reports whether the package contains the named part.
func (p *Package) Has(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.parts[partKey(name)]
	return ok
}

// OpenPart opens the named part for reading. The returned reader may be
// closed early; any reader still open is closed by Package.Close.
func (p *Package) OpenPart(name string) (io.ReadCloser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	f, ok := p.parts[partKey(name)]
	if !ok {
		return nil, ErrPartNotFound
	}
	rc, err := f.Open()
	if err != nil {
		return nil, domain.IOFailure("open part "+name, err)
	}
	pr := &partReader{ReadCloser: rc, pkg: p}
	p.open[pr] = struct{}{}
	return pr, nil
}

// Relationships returns the relationships of the source part. Use "" for
// the package-level relationships. A part without a .rels part has none.
func (p *Package) Relationships(source string) ([]Relationship, error) {
	rc, err := p.OpenPart(relsPath(source))
	if errors.Is(err, ErrPartNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var rels relationshipsXML
	if err := xml.NewDecoder(rc).Decode(&rels); err != nil {
		return nil, domain.IOFailure("parse relationships of "+relsPath(source), err)
	}
	return rels.Items, nil
}

// MainPart returns the name of the part targeted by the package-level
// officeDocument relationship, or false when there is none.
func (p *Package) MainPart() (string, bool, error) {
	rels, err := p.Relationships("")
	if err != nil {
		return "", false, err
	}
	for _, rel := range rels {
		if rel.IsExternal() {
			continue
		}
		if rel.Type == RelTypeOfficeDocument || rel.Type == RelTypeOfficeDocumentStrict {
			return ResolveTarget("", rel.Target), true, nil
		}
	}
	return "", false, nil
}

// Close releases every part reader still open. It is safe to call more
// than once.
func (p *Package) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	for pr := range p.open {
		if err := pr.ReadCloser.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	p.open = nil
	return errors.Join(errs...)
}

// Closed reports whether Close has been called.
func (p *Package) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// OpenParts returns how many part readers are currently open.
func (p *Package) OpenParts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.open)
}

// ResolveTarget resolves a relationship target against its source part.
// Absolute targets are rooted at the package.
func ResolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Join(path.Dir("/"+source), target), "/")
}

// relsPath returns the relationships part name for source.
func relsPath(source string) string {
	if source == "" {
		return "_rels/.rels"
	}
	dir, file := path.Split(strings.TrimPrefix(source, "/"))
	return dir + "_rels/" + file + ".rels"
}

// partReader removes itself from the package's open set when closed.
type partReader struct {
	io.ReadCloser
	pkg  *Package
	once sync.Once
	err  error
}

func (r *partReader) Close() error {
	r.once.Do(func() {
		r.pkg.mu.Lock()
		_, tracked := r.pkg.open[r]
		delete(r.pkg.open, r)
		r.pkg.mu.Unlock()
		if tracked {
			r.err = r.ReadCloser.Close()
		}
	})
	return r.err
}
