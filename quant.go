package jpeg

// jpegNaturalOrder maps a zig-zag coefficient index (as it arrives off the
// wire, DC first, then AC run-length decoded) to its natural row-major
// position in an 8x8 block. Padded with eight trailing 63s, the same
// padding pymaging_jpg's jpeg_natural_order table carries to give a
// corrupted run a few slots of headroom past index 63. scan.go's AC loop
// still bounds-checks k before indexing here (a run=15 read at k=63 would
// overflow even the padding), so the padding is a second line of defense
// rather than the sole guard.
var jpegNaturalOrder = [...]int{
     0,  1,  8, 16,  9,  2,  3, 10,
    17, 24, 32, 25, 18, 11,  4,  5,
    12, 19, 26, 33, 40, 48, 41, 34,
    27, 20, 13,  6,  7, 14, 21, 28,
    35, 42, 49, 56, 57, 50, 43, 36,
    29, 22, 15, 23, 30, 37, 44, 51,
    58, 59, 52, 45, 38, 31, 39, 46,
    53, 60, 61, 54, 47, 55, 62, 63,
    // padding: run past end of block lands here instead of out of bounds
    63, 63, 63, 63, 63, 63, 63, 63,
}

// quantTable holds one destination's 64 dequantization multipliers in
// natural (row-major, un-zig-zagged) order. Once scaleForIDCT has run, each entry
// is pre-multiplied by the AA&N scale factor for its position so the IDCT
// can fuse dequantization into its first pass.
type quantTable struct {
    raw     [64]uint16  // as parsed from DQT, natural order, unscaled
    scaled  [64]int32   // AA&N pre-scaled multipliers, valid after scaleForIDCT()
    present bool        // false until a DQT segment has populated raw
}

// setRaw stores one zig-zag-ordered 64-value table body (as it appears in a
// DQT segment) into natural order, writing each byte through
// jpegNaturalOrder the same way pymaging_jpg's get_dqt does.
func (q *quantTable) setRaw( zigzag [64]uint16 ) {
    for i, v := range zigzag {
        q.raw[ jpegNaturalOrder[i] ] = v
    }
    q.present = true
}

// aanScaleFactor is the AA&N 1-D scale factor for coefficient index i in
// [0,7]: 1, cos(pi/16)*sqrt(2), ..., the factors that turn a plain 2-D DCT
// into the 5-multiply AA&N form.
var aanScaleFactor = [8]float64{
    1.0,
    1.387039845,
    1.306562965,
    1.175875602,
    1.0,
    0.785694958,
    0.541196100,
    0.275899379,
}

// aanScale14 holds factor[row]*factor[col], scaled up by 2^14 and rounded
// to the nearest integer - the same precomputed values pymaging_jpg's
// init_quant_table() hand-transcribes as its aanscales table. Computed once
// at init time rather than hand transcribed, since it is a pure function of
// aanScaleFactor.
var aanScale14 [64]int32

func init() {
    for row := 0; row < 8; row++ {
        for col := 0; col < 8; col++ {
            f := aanScaleFactor[row] * aanScaleFactor[col] * 16384.0
            aanScale14[row*8+col] = int32( f + 0.5 )
        }
    }
}

// scaleForIDCT pre-multiplies the raw quantization values by the AA&N scale
// factors for their row/column and descales by 12 bits with half-up
// rounding, the same ScaleQuantTable arithmetic pymaging_jpg runs
// (`(tblStd[i]*tblAan[i]+half)>>12` with half=1<<11). It must run once per
// table, after DQT parsing completes and before entropy decode begins. The
// result is a plain multiplier: the IDCT's first pass dequantizes with an
// unshifted integer multiply.
func (q *quantTable) scaleForIDCT() {
    for i := 0; i < 64; i++ {
        prod := int64(q.raw[i]) * int64(aanScale14[i])
        q.scaled[i] = int32( (prod + 2048) >> 12 )
    }
}
