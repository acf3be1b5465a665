package jpeg

import "bytes"

// APP0/JFIF recognition, ported from the teacher's app0() (jfif.go), adapted
// to an informational-only role: it populates JFIFInfo for the caller but
// never influences decoding, and absence or malformed content is tolerated
// rather than fatal, the same tolerant fallback pymaging_jpg's read_markers
// takes for an APP0 whose tag doesn't match "JFIF\0".

var jfifTag = []byte( "JFIF\x00" )

// parseAPP0JFIF inspects one APP0 segment's body (the bytes after the
// 2-byte length field, length bytes long) and returns JFIF info when the
// segment carries the "JFIF\0" identifier and is long enough to hold the
// fixed fields. Any other shape - a non-JFIF APP0 (e.g. JFXX extension) or
// one shorter than the fixed fields - yields (nil, false) without error: it
// is simply not a JFIF density block. The body length is not checked
// against the declared thumbnail size.
func parseAPP0JFIF( body []byte ) (*JFIFInfo, bool) {
    if len(body) < 14 || !bytes.Equal( body[0:5], jfifTag ) {
        return nil, false
    }
    info := &JFIFInfo{
        VersionMajor: body[5],
        VersionMinor: body[6],
        Units:        body[7],
        DensityX:     uint16(body[8])<<8 | uint16(body[9]),
        DensityY:     uint16(body[10])<<8 | uint16(body[11]),
        ThumbnailW:   body[12],
        ThumbnailH:   body[13],
    }
    return info, true
}
