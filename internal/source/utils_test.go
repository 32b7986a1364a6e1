package source

import "testing"

func TestNormalizeCRLF(t *testing.T) {
	out, crlf := normalizeCRLF([]byte("a\r\nb\rc\r\n"))
	if string(out) != "a\nb\rc\n" || len(crlf) != 2 || crlf[0] != 1 || crlf[1] != 5 {
		t.Fatalf("normalizeCRLF = %q, %v", out, crlf)
	}
	out, crlf = normalizeCRLF([]byte("plain\n"))
	if crlf != nil || string(out) != "plain\n" {
		t.Fatalf("normalizeCRLF without CR = %q, %v", out, crlf)
	}
}

func TestRemoveBOM(t *testing.T) {
	out, had := removeBOM([]byte("\xEF\xBB\xBFx"))
	if !had || string(out) != "x" {
		t.Fatalf("removeBOM = %q, %v", out, had)
	}
	out, had = removeBOM([]byte("x"))
	if had || string(out) != "x" {
		t.Fatalf("removeBOM without BOM = %q, %v", out, had)
	}
}

func TestRawWithoutFlagsIsIdentity(t *testing.T) {
	f := &File{Content: []byte("a\nb\n"), Flags: FileVirtual}
	if got := f.Raw(); string(got) != "a\nb\n" {
		t.Fatalf("Raw = %q", got)
	}
	if got := f.RawOffset(3); got != 3 {
		t.Fatalf("RawOffset(3) = %d", got)
	}
}

func TestMixedLineEndingsAreTrackedPerLine(t *testing.T) {
	raw := "def f():\n    \"\"\"A.\r\n>>> a\"\"\"\r\n"
	fs := NewFileSet()
	file := fs.Get(fs.AddNormalized("mixed.py", []byte(raw)))

	if file.Flags&FileNormalizedCRLF != 0 || file.Flags&FileMixedEOL == 0 {
		t.Fatalf("flags = %b, want only the mixed bit", file.Flags)
	}
	if got := string(file.Content); got != "def f():\n    \"\"\"A.\n>>> a\"\"\"\n" {
		t.Fatalf("Content = %q", got)
	}
	if got := string(file.Raw()); got != raw {
		t.Fatalf("Raw = %q, want %q", got, raw)
	}
	if got := file.EOLAt(8); got != "\n" {
		t.Fatalf("EOLAt(8) = %q, want LF", got)
	}
	if got := file.EOLAt(18); got != "\r\n" {
		t.Fatalf("EOLAt(18) = %q, want CRLF", got)
	}
	// ">>>" starts right after the first CRLF
	if got := file.RawOffset(19); got != 20 {
		t.Fatalf("RawOffset(19) = %d, want 20", got)
	}
}

func TestUniformCRLFWithBOMOffsets(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddNormalized("crlf.py", []byte("\xEF\xBB\xBFa\r\nb\r\n")))
	if file.Flags&FileNormalizedCRLF == 0 || file.CRLF != nil {
		t.Fatalf("flags = %b, CRLF = %v", file.Flags, file.CRLF)
	}
	// "b" sits after the BOM, "a" and one CRLF
	if got := file.RawOffset(2); got != 6 {
		t.Fatalf("RawOffset(2) = %d, want 6", got)
	}
}
