package source

import "sort"

// crlfBefore returns how many CRLF newlines lie strictly before off.
func (f *File) crlfBefore(off uint32) uint32 {
	var idx []uint32
	switch {
	case f.Flags&FileNormalizedCRLF != 0:
		idx = f.LineIdx
	case f.Flags&FileMixedEOL != 0:
		idx = f.CRLF
	default:
		return 0
	}
	n := sort.Search(len(idx), func(i int) bool { return idx[i] >= off })
	return uint32(n) // #nosec G115 -- n <= len(Content)
}

// RawOffset maps an offset in Content to the same position in the bytes
// that were read from disk, accounting for a stripped BOM and removed '\r'.
func (f *File) RawOffset(off uint32) uint32 {
	raw := off + f.crlfBefore(off)
	if f.Flags&FileHadBOM != 0 {
		raw += uint32(len(bom))
	}
	return raw
}

// EOLAt returns the line ending the newline at Content offset nl had on disk.
func (f *File) EOLAt(nl uint32) string {
	if f.crlfBefore(nl+1)-f.crlfBefore(nl) == 1 {
		return "\r\n"
	}
	return "\n"
}

// Raw rebuilds the bytes the file had before AddNormalized.
func (f *File) Raw() []byte {
	if f.Flags&(FileHadBOM|FileNormalizedCRLF|FileMixedEOL) == 0 {
		return f.Content
	}
	extra := int(f.crlfBefore(uint32(len(f.Content)))) // #nosec G115 -- spans already limit files to uint32
	out := make([]byte, 0, len(f.Content)+len(bom)+extra)
	if f.Flags&FileHadBOM != 0 {
		out = append(out, bom...)
	}
	for i, b := range f.Content {
		if b == '\n' && f.EOLAt(uint32(i)) == "\r\n" { // #nosec G115 -- same bound
			out = append(out, '\r')
		}
		out = append(out, b)
	}
	return out
}
