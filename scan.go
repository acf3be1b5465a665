package jpeg

// Entropy scan decoder: per-block DC difference + run-length AC decode,
// restart-marker resync, DC predictor state. Ported from the
// teacher's scan-walking logic in jpeg.go/decode.go, rewritten against the
// bitReader/huffTable pair above instead of the teacher's inline byte
// shifting.

// scanDecoder walks one SOS scan's entropy-coded data, producing one 8x8
// natural-order coefficient block at a time.
type scanDecoder struct {
    f      *frame
    br     *bitReader
    dc     [3]int32 // per-component DC predictor, indexed by position in MCU (0=Y,1=Cb,2=Cr)
    restartsToGo   int
    nextRestartNum byte
    opts  *DecodeOptions
    stats *Stats
}

func newScanDecoder( f *frame, opts *DecodeOptions, stats *Stats ) *scanDecoder {
    s := &scanDecoder{
        f:     f,
        br:    newBitReader( f.scanData ),
        opts:  opts,
        stats: stats,
    }
    s.restartsToGo = f.restartInterval
    return s
}

// huffmanFor returns the DC/AC table pair for a block at position compPos
// within the MCU (0 = luma, 1/2 = chroma). Block position hard-picks
// YDC/YAC for luma and CbCrDC/CbCrAC for chroma; the per-component
// selectors parsed from SOS are not consulted here, matching the teacher's
// own hard-coded SOS handling.
func (s *scanDecoder) huffmanFor( compPos int ) (*huffTable, *huffTable) {
    if compPos == 0 {
        return &s.f.dc[0], &s.f.ac[0]
    }
    return &s.f.dc[1], &s.f.ac[1]
}

// decodeBlock decodes one 8x8 block's 64 coefficients (natural order) for
// the component at MCU position compPos.
func (s *scanDecoder) decodeBlock( compPos int, coef *[64]int16 ) *Error {
    for i := range coef {
        coef[i] = 0
    }
    dcTable, acTable := s.huffmanFor( compPos )

    // DC path
    cat, herr := dcTable.decode( s.br )
    if herr != nil {
        s.stats.HuffmanOverruns++
        s.opts.trace( "%v\n", herr )
        cat = 0
    }
    if cat > 15 {
        s.stats.HuffmanOverruns++
        s.opts.trace( "DC category %d out of range, clamped to 15\n", cat )
        cat = 15
    }
    diff := int32(0)
    if cat > 0 {
        raw := receive( s.br, cat )
        diff = extend( raw, cat )
    }
    s.dc[compPos] += diff
    coef[0] = int16( s.dc[compPos] )

    // AC path
    k := 1
    for k <= 63 {
        rs, herr := acTable.decode( s.br )
        if herr != nil {
            s.stats.HuffmanOverruns++
            s.opts.trace( "%v\n", herr )
            break
        }
        run := int(rs >> 4)
        cat := rs & 0x0f

        if cat == 0 {
            if run == 15 {
                k += 16 // ZRL: skip 16 zero coefficients
                continue
            }
            // EOB: any (run != 15, cat == 0) symbol terminates the block,
            // not strictly (0,0) alone
            break
        }

        k += run
        if k > 63 {
            // corrupted run past the end of the block: read and discard
            // the magnitude bits without writing any coefficient
            raw := receive( s.br, cat )
            _ = extend( raw, cat )
            k++
            continue
        }
        raw := receive( s.br, cat )
        coef[ jpegNaturalOrder[k] ] = int16( extend( raw, cat ) )
        k++
    }
    return nil
}

// restartIfNeeded consumes one restart marker and resets per-interval state
// when the MCU countdown reaches zero. Called after every MCU but the last
// one is fully decoded.
func (s *scanDecoder) restartIfNeeded() {
    if s.f.restartInterval == 0 {
        return
    }
    s.restartsToGo--
    if s.restartsToGo > 0 {
        return
    }
    s.br.discard()
    code, ok := s.br.consumeMarker()
    if ok {
        expected := byte(_RST0&0xff) + s.nextRestartNum
        if code != expected {
            s.stats.RestartMismatches++
            s.opts.trace( "restart marker mismatch: got 0x%02x want 0x%02x\n", code, expected )
        }
    } else {
        s.stats.RestartMismatches++
        s.opts.trace( "restart marker missing: want 0x%02x\n", byte(_RST0&0xff)+s.nextRestartNum )
    }
    s.dc[0], s.dc[1], s.dc[2] = 0, 0, 0
    s.nextRestartNum = (s.nextRestartNum + 1) & 7
    s.restartsToGo = s.f.restartInterval
}
