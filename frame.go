package jpeg

// Frame-level parsing: the marker-segment state machine that recovers SOF,
// DQT, DHT, DRI and SOS, ported from the teacher's marker-driven Parse loop
// in jpeg.go, generalized from the teacher's Desc/segment model down to
// exactly what a baseline decode needs.

// component holds one SOF component's declared sampling and table
// selectors.
type component struct {
    id          byte
    hSamp       byte
    vSamp       byte
    quantSel    byte
    dcTableSel  byte // parsed from SOS and stored, not read by the decoder - block position decides the table actually used
    acTableSel  byte
}

// frame holds the decoded SOF0/SOF1 parameters plus everything the parser
// accumulates before control passes to the entropy decoder.
type frame struct {
    precision  byte
    width      int
    height     int
    components [3]component

    quant [4]quantTable
    dc    [4]huffTable
    ac    [4]huffTable

    restartInterval int

    jfif *JFIFInfo

    mcuSize      int // 8 for 4:4:4, 16 for 4:2:0
    blocksPerMCU int // 3 for 4:4:4, 6 for 4:2:0

    scanData []byte // entropy-coded bytes, starting right after the SOS header
}

// cursor is a linear, length-checked reader over the full JPEG byte slice,
// used only during header parsing (the entropy reader takes over via
// bitReader once SOS is reached).
type cursor struct {
    data []byte
    pos  int
}

func (c *cursor) remaining() int { return len(c.data) - c.pos }

func (c *cursor) readMarker() (marker uint, err *Error) {
    for {
        if c.remaining() < 2 {
            return 0, newError( "readMarker", MalformedHeader, "truncated stream: expected a marker" )
        }
        if c.data[c.pos] != 0xff {
            // tolerate stray fill bytes preceding a marker
            c.pos++
            continue
        }
        code := c.data[c.pos+1]
        c.pos += 2
        if code == 0xff {
            // extra fill byte after FF: back up one and retry
            c.pos--
            continue
        }
        if code == 0x00 {
            return 0, newError( "readMarker", MalformedHeader, "stray FF 00 outside entropy data" )
        }
        return 0xff00 | uint(code), nil
    }
}

// readSegmentLength reads the 2-byte big-endian length field of a
// length-prefixed segment and returns the length of the segment body (the
// length field itself included in the count, per T.81, so body length is
// length-2). Rejects length < 2 rather than underflowing the cursor.
func (c *cursor) readSegmentLength( op string ) (bodyLen int, err *Error) {
    if c.remaining() < 2 {
        return 0, newError( op, MalformedHeader, "truncated segment length" )
    }
    length := int(c.data[c.pos])<<8 | int(c.data[c.pos+1])
    if length < 2 {
        return 0, newError( op, MalformedHeader, "segment length %d < 2", length )
    }
    if c.remaining() < length {
        return 0, newError( op, MalformedHeader, "segment claims length %d beyond end of stream", length )
    }
    c.pos += 2
    return length - 2, nil
}

// parseFrame runs the header state machine from just after SOI through SOS,
// returning a frame ready for entropy decode. data must start at SOI
// (0xFF 0xD8).
func parseFrame( data []byte, opts *DecodeOptions ) (*frame, *Stats, *Error) {
    stats := &Stats{}
    c := &cursor{ data: data }

    marker, err := c.readMarker()
    if err != nil {
        return nil, stats, err
    }
    if marker != _SOI {
        return nil, stats, newError( "parseFrame", MalformedHeader, "stream does not start with SOI" )
    }
    opts.trace( "SOI\n" )

    f := &frame{}
    haveSOF := false

    for {
        marker, err = c.readMarker()
        if err != nil {
            return nil, stats, err
        }

        switch {
        case marker == _SOS:
            if !haveSOF {
                return nil, stats, newError( "parseFrame", MalformedHeader, "SOS before SOF" )
            }
            if err := parseSOS( c, f, opts ); err != nil {
                return nil, stats, err
            }
            f.scanData = c.data[c.pos:]
            if err := finalizeTables( f ); err != nil {
                return nil, stats, err
            }
            return f, stats, nil

        case marker == _DQT:
            if err := parseDQT( c, f, opts ); err != nil {
                return nil, stats, err
            }

        case marker == _DHT:
            if err := parseDHT( c, f, opts ); err != nil {
                return nil, stats, err
            }

        case marker == _DRI:
            if err := parseDRI( c, f, opts ); err != nil {
                return nil, stats, err
            }

        case marker == _SOF0 || marker == _SOF1:
            if err := parseSOF( c, f, opts ); err != nil {
                return nil, stats, err
            }
            haveSOF = true

        case marker == _SOF2 || marker == _SOF9 || marker == _SOF10:
            return nil, stats, newError( "parseFrame", UnsupportedMode,
                "%s is not a supported baseline encoding", markerName(marker) )

        case marker == 0xffc3:
            return nil, stats, newError( "parseFrame", UnsupportedMode,
                "SOF3 (Lossless) is not a supported baseline encoding" )

        case marker == _SOF5 || marker == _SOF6 || marker == _SOF7 ||
             marker == _SOF11 || marker == _SOF13 || marker == _SOF14 || marker == _SOF15:
            return nil, stats, newError( "parseFrame", UnsupportedMode,
                "%s is not a supported baseline encoding", markerName(marker) )

        case marker == _APP0:
            if err := parseAPP0( c, f, opts ); err != nil {
                return nil, stats, err
            }

        case isAPPn( marker ) || marker == _COM:
            if err := skipSegment( c, "skip" ); err != nil {
                return nil, stats, err
            }

        case marker == _DNL || marker == _DHP || marker == _EXP || marker == _JPG || marker == _DAC:
            return nil, stats, newError( "parseFrame", UnknownMarker,
                "%s is not accepted by the baseline decoder", markerName(marker) )

        case isRST(marker) || marker == _TEM:
            // stray restart/TEM markers outside a scan: ignore, matching
            // mirrors a tolerant skip of markers with no parameters

        default:
            return nil, stats, newError( "parseFrame", UnknownMarker,
                "unrecognized marker 0x%04x", marker )
        }
    }
}

func skipSegment( c *cursor, op string ) *Error {
    bodyLen, err := c.readSegmentLength( op )
    if err != nil {
        return err
    }
    c.pos += bodyLen
    return nil
}

func parseAPP0( c *cursor, f *frame, opts *DecodeOptions ) *Error {
    bodyLen, err := c.readSegmentLength( "parseAPP0" )
    if err != nil {
        return err
    }
    body := c.data[c.pos : c.pos+bodyLen]
    c.pos += bodyLen
    if info, ok := parseAPP0JFIF( body ); ok {
        f.jfif = info
        opts.trace( "APP0 JFIF %d.%02d\n", info.VersionMajor, info.VersionMinor )
    } else {
        opts.trace( "APP0 (not JFIF, skipped)\n" )
    }
    return nil
}

func parseDQT( c *cursor, f *frame, opts *DecodeOptions ) *Error {
    bodyLen, err := c.readSegmentLength( "parseDQT" )
    if err != nil {
        return err
    }
    end := c.pos + bodyLen
    for c.pos < end {
        if c.remaining() < 1 {
            return newError( "parseDQT", MalformedHeader, "truncated DQT" )
        }
        pqTq := c.data[c.pos]
        c.pos++
        precision := pqTq >> 4
        id := pqTq & 0x0f
        if id > 3 {
            return newError( "parseDQT", MalformedHeader, "DQT destination id %d out of range", id )
        }
        n := 64
        if precision != 0 {
            n = 128 // 16-bit entries; not used by the 8-bit baseline profile but parsed to stay in sync
        }
        if c.remaining() < n {
            return newError( "parseDQT", MalformedHeader, "truncated DQT table body" )
        }
        var zigzag [64]uint16
        if precision == 0 {
            for i := 0; i < 64; i++ {
                zigzag[i] = uint16(c.data[c.pos+i])
            }
        } else {
            for i := 0; i < 64; i++ {
                zigzag[i] = uint16(c.data[c.pos+2*i])<<8 | uint16(c.data[c.pos+2*i+1])
            }
        }
        c.pos += n
        f.quant[id].setRaw( zigzag )
        opts.trace( "DQT id=%d\n", id )
    }
    return nil
}

func parseDHT( c *cursor, f *frame, opts *DecodeOptions ) *Error {
    bodyLen, err := c.readSegmentLength( "parseDHT" )
    if err != nil {
        return err
    }
    end := c.pos + bodyLen
    for c.pos < end {
        if c.remaining() < 17 {
            return newError( "parseDHT", MalformedHeader, "truncated DHT header" )
        }
        classId := c.data[c.pos]
        c.pos++
        class := classId >> 4
        id := classId & 0x0f
        if id > 3 {
            return newError( "parseDHT", MalformedHeader, "DHT destination id %d out of range", id )
        }
        var bits [16]byte
        copy( bits[:], c.data[c.pos:c.pos+16] )
        c.pos += 16
        total := 0
        for _, b := range bits {
            total += int(b)
        }
        if c.remaining() < total {
            return newError( "parseDHT", MalformedHeader, "truncated DHT symbol list" )
        }
        huffval := make( []byte, total )
        copy( huffval, c.data[c.pos:c.pos+total] )
        c.pos += total

        if class == 0 {
            f.dc[id].setTable( bits, huffval )
            opts.trace( "DHT DC id=%d\n", id )
        } else {
            f.ac[id].setTable( bits, huffval )
            opts.trace( "DHT AC id=%d\n", id )
        }
    }
    return nil
}

func parseDRI( c *cursor, f *frame, opts *DecodeOptions ) *Error {
    bodyLen, err := c.readSegmentLength( "parseDRI" )
    if err != nil {
        return err
    }
    if bodyLen != 2 {
        return newError( "parseDRI", MalformedHeader, "DRI body length %d, want 2", bodyLen )
    }
    f.restartInterval = int(c.data[c.pos])<<8 | int(c.data[c.pos+1])
    c.pos += 2
    opts.trace( "DRI interval=%d\n", f.restartInterval )
    return nil
}

func parseSOF( c *cursor, f *frame, opts *DecodeOptions ) *Error {
    bodyLen, err := c.readSegmentLength( "parseSOF" )
    if err != nil {
        return err
    }
    end := c.pos + bodyLen
    if c.remaining() < 6 {
        return newError( "parseSOF", MalformedHeader, "truncated SOF" )
    }
    precision := c.data[c.pos]
    if precision != 8 {
        return newError( "parseSOF", MalformedHeader, "sample precision %d unsupported, want 8", precision )
    }
    height := int(c.data[c.pos+1])<<8 | int(c.data[c.pos+2])
    width := int(c.data[c.pos+3])<<8 | int(c.data[c.pos+4])
    numComp := int(c.data[c.pos+5])
    c.pos += 6

    if width == 0 || height == 0 {
        return newError( "parseSOF", MalformedHeader, "zero width or height" )
    }
    if numComp != 3 {
        return newError( "parseSOF", MalformedHeader, "component count %d unsupported, want 3", numComp )
    }
    if c.remaining() < numComp*3 {
        return newError( "parseSOF", MalformedHeader, "truncated SOF component list" )
    }

    f.precision = precision
    f.width = width
    f.height = height
    for i := 0; i < 3; i++ {
        id := c.data[c.pos]
        samp := c.data[c.pos+1]
        quantSel := c.data[c.pos+2]
        c.pos += 3
        f.components[i] = component{
            id:       id,
            hSamp:    samp >> 4,
            vSamp:    samp & 0x0f,
            quantSel: quantSel,
        }
    }
    c.pos = end

    h0, v0 := f.components[0].hSamp, f.components[0].vSamp
    for i := 1; i < 3; i++ {
        if f.components[i].hSamp != 1 || f.components[i].vSamp != 1 {
            return newError( "parseSOF", UnsupportedMode,
                "chroma sampling %dx%d unsupported", f.components[i].hSamp, f.components[i].vSamp )
        }
    }
    switch {
    case h0 == 1 && v0 == 1:
        f.mcuSize = 8
        f.blocksPerMCU = 3
    case h0 == 2 && v0 == 2:
        f.mcuSize = 16
        f.blocksPerMCU = 6
    default:
        return newError( "parseSOF", UnsupportedMode,
            "luma sampling %dx%d unsupported (only 1x1 or 2x2)", h0, v0 )
    }

    opts.trace( "SOF %dx%d precision=%d mcu=%d\n", width, height, precision, f.mcuSize )
    return nil
}

func parseSOS( c *cursor, f *frame, opts *DecodeOptions ) *Error {
    bodyLen, err := c.readSegmentLength( "parseSOS" )
    if err != nil {
        return err
    }
    end := c.pos + bodyLen
    if c.remaining() < 1 {
        return newError( "parseSOS", MalformedHeader, "truncated SOS" )
    }
    numComp := int(c.data[c.pos])
    c.pos++
    if numComp != 3 {
        return newError( "parseSOS", MalformedHeader, "SOS component count %d, want 3", numComp )
    }
    if c.remaining() < numComp*2+3 {
        return newError( "parseSOS", MalformedHeader, "truncated SOS component list" )
    }
    for i := 0; i < 3; i++ {
        id := c.data[c.pos]
        tableSel := c.data[c.pos+1]
        c.pos += 2

        if !opts.skipSOSOrderCheck() {
            if id != f.components[i].id {
                return newError( "parseSOS", MalformedHeader,
                    "SOS component %d has id %d, SOF declared %d in that position", i, id, f.components[i].id )
            }
        }
        f.components[i].dcTableSel = tableSel >> 4
        f.components[i].acTableSel = tableSel & 0x0f
    }
    // spectral selection start/end + successive approximation: fixed for
    // baseline (0, 63, 0) but still present on the wire (3 bytes)
    c.pos += 3
    c.pos = end
    opts.trace( "SOS\n" )
    return nil
}

func (o *DecodeOptions) skipSOSOrderCheck() bool {
    return o != nil && o.SkipSOSOrderCheck
}

// finalizeTables AA&N-scales every quantization table a DQT segment
// populated and checks that DC/AC Huffman tables 0 and 1 are present, once
// the full header has been read (the Huffman decode structures themselves
// were already derived by setTable during DHT parsing). A component
// referencing a quantization table that was never populated by a DQT
// segment is a hard error rather than silently scaling zeros.
func finalizeTables( f *frame ) *Error {
    for i := range f.components {
        q := &f.quant[f.components[i].quantSel]
        if !q.present {
            return newError( "finalizeTables", MalformedHeader,
                "component %d references quantization table %d which was never defined",
                i, f.components[i].quantSel )
        }
    }
    for i := range f.quant {
        if f.quant[i].present {
            f.quant[i].scaleForIDCT()
        }
    }
    if !f.dc[0].present || !f.ac[0].present || !f.dc[1].present || !f.ac[1].present {
        return newError( "finalizeTables", MalformedHeader,
            "missing Huffman table: baseline decode requires DC/AC tables 0 and 1" )
    }
    return nil
}
