package jpeg

import "testing"

// TestWriteTileSubsampledMatchesSpecScenario exercises writeTile's is420
// branch directly: a 2x2 image cropped out of one 4:2:0 MCU, with logical
// pixels black/white/white/almost-black. Every color here is achromatic
// (R=G=B), so a neutral Cb=Cr=128 isolates the luma block-selection and
// chroma up-sampling address math from the color-conversion math itself.
func TestWriteTileSubsampledMatchesSpecScenario( t *testing.T ) {
    var samples [6][64]byte
    // all 2x2 output pixels land in luma block 0 (top-left quadrant);
    // blocks 1-3 are never addressed for this crop and are left zeroed.
    samples[0][0] = 0   // (i=0,j=0) black
    samples[0][1] = 255 // (i=1,j=0) white
    samples[0][8] = 255 // (i=0,j=1) white
    samples[0][9] = 8   // (i=1,j=1) almost-black
    samples[4][0] = 128 // Cb, neutral
    samples[5][0] = 128 // Cr, neutral

    width, height := 2, 2
    stride := rowStride( width )
    if stride != 8 {
        t.Fatalf( "rowStride(2) = %d, want 8", stride )
    }
    raster := make( []byte, stride*height )

    writeTile( raster, stride, width, height, 0, 0, 16, true, &samples )

    want := []byte{
        0xff, 0xff, 0xff, 0x08, 0x08, 0x08, 0x00, 0x00, // bottom image row first
        0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x00, 0x00, // top image row second
    }
    for i, w := range want {
        if raster[i] != w {
            t.Fatalf( "raster[%d] = 0x%02x, want 0x%02x\nraster=% x\nwant  =% x", i, raster[i], w, raster, want )
        }
    }
}

// TestDecodeScanToRaster420 exercises the full 6-block MCU loop
// (decodeScanToRaster's is420 path) end to end: a single 16x16 MCU whose
// entropy data decodes every block to DC=0/no-AC (immediate EOB), which
// dequantizes and IDCTs to a flat level-128 gray, then color-converts
// through the neutral Cb=Cr=128 path to solid (128,128,128) BGR.
func TestDecodeScanToRaster420( t *testing.T ) {
    var f frame
    f.width, f.height = 16, 16
    f.mcuSize = 16
    f.blocksPerMCU = 6
    f.components[0].quantSel = 0
    f.components[1].quantSel = 0
    f.components[2].quantSel = 0

    // single 1-bit code "0" decodes to symbol 0x00 in every table: DC
    // category 0 (no magnitude bits) and AC run=0/cat=0 (immediate EOB).
    f.dc[0].setTable( [16]byte{0: 1}, []byte{0x00} )
    f.ac[0].setTable( [16]byte{0: 1}, []byte{0x00} )
    f.dc[1].setTable( [16]byte{0: 1}, []byte{0x00} )
    f.ac[1].setTable( [16]byte{0: 1}, []byte{0x00} )

    // 6 blocks x 2 bits (DC + AC EOB) = 12 bits, all zero.
    f.scanData = []byte{ 0x00, 0x00 }

    stats := &Stats{}
    raster, meta, err := decodeScanToRaster( &f, &DecodeOptions{}, stats )
    if err != nil {
        t.Fatalf( "decodeScanToRaster: %v", err )
    }
    if meta.Width != 16 || meta.Height != 16 || meta.RowStride != 48 {
        t.Fatalf( "meta = %+v, want 16x16 stride 48", meta )
    }
    for i := 0; i < len(raster); i += 3 {
        if raster[i] != 128 || raster[i+1] != 128 || raster[i+2] != 128 {
            t.Fatalf( "raster[%d:%d] = %v, want [128 128 128]", i, i+3, raster[i:i+3] )
        }
    }
    if stats.HuffmanOverruns != 0 {
        t.Fatalf( "HuffmanOverruns = %d, want 0", stats.HuffmanOverruns )
    }
}

// TestDecodeScanToRasterTruncated covers the wired TruncatedScan path:
// entropy data that runs out of bytes before every MCU has been decoded
// must surface as a fatal TruncatedScan error, not silently pad with
// zero bits for the remaining MCUs.
func TestDecodeScanToRasterTruncated( t *testing.T ) {
    var f frame
    f.width, f.height = 16, 8 // two MCUs across, one down
    f.mcuSize = 8
    f.blocksPerMCU = 3
    f.components[0].quantSel = 0
    f.components[1].quantSel = 0
    f.components[2].quantSel = 0

    f.dc[0].setTable( [16]byte{0: 1}, []byte{0x00} )
    f.ac[0].setTable( [16]byte{0: 1}, []byte{0x00} )
    f.dc[1].setTable( [16]byte{0: 1}, []byte{0x00} )
    f.ac[1].setTable( [16]byte{0: 1}, []byte{0x00} )

    // enough bits for exactly the first MCU's 3 blocks (6 bits), then the
    // stream ends - no second MCU's worth of data is present.
    f.scanData = []byte{ 0x00 }

    _, _, err := decodeScanToRaster( &f, &DecodeOptions{}, &Stats{} )
    if err == nil {
        t.Fatalf( "decodeScanToRaster: want TruncatedScan error, got nil" )
    }
    if err.Kind != TruncatedScan {
        t.Fatalf( "err.Kind = %v, want TruncatedScan", err.Kind )
    }
}
