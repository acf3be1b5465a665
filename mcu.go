package jpeg

// MCU loop / output assembler and the package's top-level Decode entry
// point, ported from the teacher's SaveRawPicture/writeYCbCr raster-assembly
// loop (jpeg.go), rewritten around a single fixed BGR/bottom-up output
// contract instead of the teacher's orientation-aware multi-format writer.

// Decode parses and fully decodes a baseline sequential JPEG byte stream
// into a bottom-up BGR raster. opts may be nil.
func Decode( data []byte, opts *DecodeOptions ) ([]byte, Metadata, *Stats, *Error) {
    f, stats, err := parseFrame( data, opts )
    if err != nil {
        return nil, Metadata{}, stats, err
    }

    raster, meta, err := decodeScanToRaster( f, opts, stats )
    if err != nil {
        return nil, Metadata{}, stats, err
    }
    return raster, meta, stats, nil
}

func rowStride( width int ) int {
    return ((width*3) + 3) &^ 3
}

// decodeScanToRaster runs the entropy decoder MCU-by-MCU, IDCT+dequantizes
// and color-converts each MCU tile, and copies it bottom-up into the output
// raster.
func decodeScanToRaster( f *frame, opts *DecodeOptions, stats *Stats ) ([]byte, Metadata, *Error) {
    width, height := f.width, f.height
    stride := rowStride( width )
    raster := make( []byte, stride*height )

    meta := Metadata{
        Width: width, Height: height, Channels: 3, Order: "BGR",
        RowStride: stride, TopOrigin: "bottom",
    }

    sd := newScanDecoder( f, opts, stats )

    mcuSize := f.mcuSize
    cx := (width + mcuSize - 1) / mcuSize
    cy := (height + mcuSize - 1) / mcuSize

    // block-sample storage for one MCU: up to 4 luma blocks plus Cb, Cr
    var samples [6][64]byte
    var coef [64]int16

    is420 := f.blocksPerMCU == 6

    for yTile := 0; yTile < cy; yTile++ {
        for xTile := 0; xTile < cx; xTile++ {
            if is420 {
                for b := 0; b < 4; b++ {
                    if err := sd.decodeBlock( 0, &coef ); err != nil {
                        return nil, Metadata{}, err
                    }
                    idctBlock( &coef, &f.quant[f.components[0].quantSel], &samples[b] )
                }
                if err := sd.decodeBlock( 1, &coef ); err != nil {
                    return nil, Metadata{}, err
                }
                idctBlock( &coef, &f.quant[f.components[1].quantSel], &samples[4] )
                if err := sd.decodeBlock( 2, &coef ); err != nil {
                    return nil, Metadata{}, err
                }
                idctBlock( &coef, &f.quant[f.components[2].quantSel], &samples[5] )
            } else {
                if err := sd.decodeBlock( 0, &coef ); err != nil {
                    return nil, Metadata{}, err
                }
                idctBlock( &coef, &f.quant[f.components[0].quantSel], &samples[0] )
                if err := sd.decodeBlock( 1, &coef ); err != nil {
                    return nil, Metadata{}, err
                }
                idctBlock( &coef, &f.quant[f.components[1].quantSel], &samples[1] )
                if err := sd.decodeBlock( 2, &coef ); err != nil {
                    return nil, Metadata{}, err
                }
                idctBlock( &coef, &f.quant[f.components[2].quantSel], &samples[2] )
            }

            writeTile( raster, stride, width, height, xTile*mcuSize, yTile*mcuSize, mcuSize, is420, &samples )

            isLastMCU := yTile == cy-1 && xTile == cx-1
            if !isLastMCU {
                if sd.br.exhausted() {
                    return nil, Metadata{}, newError( "decodeScanToRaster", TruncatedScan,
                        "entropy-coded data ended after %d of %d MCUs", yTile*cx+xTile+1, cx*cy )
                }
                sd.restartIfNeeded()
            }
        }
    }

    return raster, meta, nil
}

// writeTile color-converts and copies one MCU's samples into the output
// raster, clipping against the image edges and flipping into bottom-up row
// order.
func writeTile( raster []byte, stride, width, height, x0, y0, mcuSize int, is420 bool, samples *[6][64]byte ) {
    nRows := mcuSize
    if y0+nRows > height {
        nRows = height - y0
    }
    nCols := mcuSize
    if x0+nCols > width {
        nCols = width - x0
    }
    if nRows <= 0 || nCols <= 0 {
        return
    }

    for j := 0; j < nRows; j++ {
        py := y0 + j
        destRow := (height - 1 - py) * stride
        for i := 0; i < nCols; i++ {
            px := x0 + i

            var y, cb, cr byte
            if is420 {
                yBlock := (j>>3)*2 + (i >> 3)
                yOff := (j&7)*8 + (i & 7)
                y = samples[yBlock][yOff]
                cbOff := (j/2)*8 + (i / 2)
                cb = samples[4][cbOff]
                cr = samples[5][cbOff]
            } else {
                off := j*8 + i
                y = samples[0][off]
                cb = samples[1][off]
                cr = samples[2][off]
            }

            r, g, b := ycbcrToBGR( y, cb, cr )
            o := destRow + px*3
            raster[o+0] = b
            raster[o+1] = g
            raster[o+2] = r
        }
    }
}
