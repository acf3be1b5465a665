package jpeg

import "fmt"

// Kind classifies what a decode error was detecting. Callers that need to
// distinguish a truncated stream from an outright unsupported mode can
// switch on Kind rather than parse the error string.
type Kind int

const (
    // MalformedHeader covers a missing SOI, a truncated segment, zero
    // width/height, component count other than 3, or a sample precision
    // other than 8.
    MalformedHeader Kind = iota
    // UnsupportedMode covers progressive, arithmetic, hierarchical or
    // lossless encodings, and any sampling pattern outside 4:4:4 / 4:2:0.
    UnsupportedMode
    // UnknownMarker covers any marker outside the accepted baseline set.
    UnknownMarker
    // TruncatedScan covers premature end of the byte stream while decoding
    // entropy-coded data.
    TruncatedScan
    // CorruptHuffman covers a slow-path symbol decode that overran 16 bits
    // without matching a code. Never returned as a fatal *Error - tracked
    // via Stats.HuffmanOverruns instead - recovered and logged, not fatal.
    CorruptHuffman
    // CorruptRestart covers a restart marker mismatch. Never returned as a
    // fatal *Error - tracked via Stats.RestartMismatches instead.
    CorruptRestart
)

func (k Kind) String() string {
    switch k {
    case MalformedHeader:  return "malformed header"
    case UnsupportedMode:  return "unsupported mode"
    case UnknownMarker:    return "unknown marker"
    case TruncatedScan:    return "truncated scan"
    case CorruptHuffman:   return "corrupt huffman code"
    case CorruptRestart:   return "corrupt restart marker"
    }
    return "unknown error kind"
}

// Error is the error type returned by Decode for every fatal condition. Non
// fatal corruption (a slow-path Huffman overrun, a mismatched restart
// marker) is tolerated and never surfaces as an Error - it is always
// counted in the returned Stats, and additionally logged if
// DecodeOptions.Trace is non nil.
type Error struct {
    Kind    Kind
    Op      string      // the operation that detected the condition, e.g. "parseSOF"
    Msg     string
}

func (e *Error) Error() string {
    return fmt.Sprintf( "%s: %s: %s", e.Op, e.Kind, e.Msg )
}

// Is makes *Error compatible with errors.Is/errors.As against one of the
// Kind sentinels below (e.g. errors.Is(err, jpeg.ErrUnsupportedMode)):
// two *Error values match if they carry the same Kind, regardless of Op/Msg.
func (e *Error) Is( target error ) bool {
    other, ok := target.(*Error)
    return ok && other.Kind == e.Kind
}

// Sentinel *Error values, one per fatal Kind, for use with errors.Is. Only Kind is
// compared (see Is above); Op and Msg are irrelevant for matching.
var (
    ErrMalformedHeader = &Error{ Kind: MalformedHeader }
    ErrUnsupportedMode = &Error{ Kind: UnsupportedMode }
    ErrUnknownMarker   = &Error{ Kind: UnknownMarker }
    ErrTruncatedScan   = &Error{ Kind: TruncatedScan }
)

func newError( op string, kind Kind, format string, a ...interface{} ) *Error {
    return &Error{ Kind: kind, Op: op, Msg: fmt.Sprintf( format, a... ) }
}
