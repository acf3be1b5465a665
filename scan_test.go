package jpeg

import "testing"

// TestScanDecodeBlockCorruptACRunStopsAtBoundary exercises a corrupted AC
// run claiming run=15 past coefficient 60: the k>63 guard must take over
// before jpegNaturalOrder is ever indexed past 63, discarding the magnitude
// bits instead of writing out of bounds.
func TestScanDecodeBlockCorruptACRunStopsAtBoundary( t *testing.T ) {
    var f frame
    f.dc[0].setTable( [16]byte{0: 1}, []byte{0x00} )   // single 1-bit code -> category 0
    f.ac[0].setTable( [16]byte{0: 1}, []byte{0xf1} )   // single 1-bit code -> run=15, cat=1

    // DC: "0" (category 0, no magnitude bits).
    // AC, repeated: "0" (run=15,cat=1) then one magnitude bit. Four
    // iterations push k from 1 to 16, 32, 48, then 64 - the fourth overflows
    // and must hit the k>63 discard path rather than index jpegNaturalOrder[64+].
    r := newBitReader( []byte{ 0x2a, 0x80 } )

    s := &scanDecoder{ f: &f, br: r, opts: &DecodeOptions{}, stats: &Stats{} }

    var coef [64]int16
    if err := s.decodeBlock( 0, &coef ); err != nil {
        t.Fatalf( "decodeBlock: %v", err )
    }
    // the three in-bounds AC symbols land at natural-order positions 16, 32, 48
    for _, pos := range []int{ jpegNaturalOrder[16], jpegNaturalOrder[32], jpegNaturalOrder[48] } {
        if coef[pos] == 0 {
            t.Fatalf( "coef[%d] = 0, want nonzero AC coefficient", pos )
        }
    }
}

// TestScanRestartResetsDCPredictor covers S4: a restart marker boundary
// resets every component's DC predictor to zero, regardless of the DC
// difference accumulated before the restart.
func TestScanRestartResetsDCPredictor( t *testing.T ) {
    var f frame
    f.restartInterval = 1
    s := &scanDecoder{ f: &f, br: newBitReader( []byte{ 0xff, 0xd0 } ), opts: &DecodeOptions{}, stats: &Stats{} }
    s.restartsToGo = 1

    s.dc[0], s.dc[1], s.dc[2] = 37, -12, 5
    s.restartIfNeeded()

    if s.dc[0] != 0 || s.dc[1] != 0 || s.dc[2] != 0 {
        t.Fatalf( "dc predictors after restart = %d,%d,%d, want 0,0,0", s.dc[0], s.dc[1], s.dc[2] )
    }
    if s.stats.RestartMismatches != 0 {
        t.Fatalf( "RestartMismatches = %d, want 0 for a correctly-sequenced RST0", s.stats.RestartMismatches )
    }
}

// TestScanRestartTracksMismatchButStillResets covers open question 4: a
// permuted/wrong restart marker is tolerated (counted, not fatal) and the
// DC predictors still reset so the following MCU decodes from a clean state.
func TestScanRestartTracksMismatchButStillResets( t *testing.T ) {
    var f frame
    f.restartInterval = 1
    // byte stream carries RST3 (0xd3) where RST0 (0xd0) is expected
    s := &scanDecoder{ f: &f, br: newBitReader( []byte{ 0xff, 0xd3 } ), opts: &DecodeOptions{}, stats: &Stats{} }
    s.restartsToGo = 1
    s.dc[0] = 99

    s.restartIfNeeded()

    if s.stats.RestartMismatches != 1 {
        t.Fatalf( "RestartMismatches = %d, want 1", s.stats.RestartMismatches )
    }
    if s.dc[0] != 0 {
        t.Fatalf( "dc[0] after mismatched restart = %d, want 0 (resync still resets state)", s.dc[0] )
    }
}
