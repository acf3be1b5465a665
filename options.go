package jpeg

import (
    "fmt"
    "io"
)

// DecodeOptions configures a single Decode call. It plays the role the
// teacher's Control struct plays for Parse: a small
// value passed by pointer, not a package-level global. A nil *DecodeOptions
// is equivalent to the zero value.
type DecodeOptions struct {
    // Trace, when non-nil, receives one line per parsed header segment or
    // table (SOI, APP0, each DQT/DHT table, DRI, SOF, SOS; skipped APPn and
    // COM segments are not traced) and one line per tolerated corruption
    // (a mismatched or missing restart marker, a Huffman overrun) -
    // replaces the teacher's four Warn/Markers/Mcu/Du booleans with a
    // single sink the caller can point anywhere (os.Stderr, a bytes.Buffer
    // in a test, io.Discard).
    Trace io.Writer

    // SkipSOSOrderCheck, when true, disables the SOS
    // component-id-matches-SOF-order check. The check is enabled by default
    // (the zero value false keeps it; true opts out) since it's a cheap,
    // unambiguous check the original performs.
    SkipSOSOrderCheck bool
}

func (o *DecodeOptions) trace( format string, a ...interface{} ) {
    if o == nil || o.Trace == nil {
        return
    }
    fmt.Fprintf( o.Trace, format, a... )
}

// Metadata describes the decoded raster's shape: a fixed contract of width,
// height, channel count, pixel order, row stride and raster origin,
// independent of how the caller stores the pixel bytes.
type Metadata struct {
    Width      int
    Height     int
    Channels   int    // always 3: BGR
    Order      string // always "BGR"
    RowStride  int
    TopOrigin  string // always "bottom": row 0 of the raster is the image's bottom row
}

// JFIFInfo carries the informational APP0/JFIF fields recognized during
// header parsing. It never affects decoding; absence of an APP0 segment
// leaves JFIF info as nil.
type JFIFInfo struct {
    VersionMajor, VersionMinor byte
    Units                      byte // 0 arbitrary, 1 dpi, 2 dpcm
    DensityX, DensityY         uint16
    ThumbnailW, ThumbnailH     byte
}

// Stats reports non-fatal telemetry accumulated during a Decode call:
// counters for the tolerated corruption classes (CorruptHuffman,
// CorruptRestart) without promoting them to fatal errors.
type Stats struct {
    RestartMismatches int // RST marker seen but not the expected RSTn
    HuffmanOverruns   int // symbol decode found no code within 16 bits, or a DC category above 15
}
