package jpeg

import "testing"

func TestHuffTableCanonicalCodes( t *testing.T ) {
    var bits [16]byte
    bits[0] = 1 // one code of length 1
    bits[1] = 1 // one code of length 2
    huffval := []byte{ 0x00, 0x01 }

    var h huffTable
    h.setTable( bits, huffval )

    if h.mincode[1] != 0 || h.maxcode[1] != 0 {
        t.Fatalf( "length-1 mincode/maxcode = %d/%d, want 0/0", h.mincode[1], h.maxcode[1] )
    }
    if h.mincode[2] != 2 || h.maxcode[2] != 2 {
        t.Fatalf( "length-2 mincode/maxcode = %d/%d, want 2/2", h.mincode[2], h.maxcode[2] )
    }
    if h.valptr[1] != 0 || h.valptr[2] != 1 {
        t.Fatalf( "valptr = %d/%d, want 0/1", h.valptr[1], h.valptr[2] )
    }
    if h.maxcode[17] != 0xFFFFF {
        t.Fatalf( "maxcode[17] sentinel = %x, want 0xFFFFF", h.maxcode[17] )
    }
}

func TestHuffTableDecodeFastPath( t *testing.T ) {
    var bits [16]byte
    bits[0] = 1
    bits[1] = 1
    huffval := []byte{ 0x00, 0x01 }

    var h huffTable
    h.setTable( bits, huffval )

    // bit pattern: 0 (symbol 0x00, length 1), then 10 (symbol 0x01, length 2)
    r := newBitReader( []byte{ 0x40, 0x00 } )

    sym, err := h.decode( r )
    if err != nil {
        t.Fatalf( "decode 1: %v", err )
    }
    if sym != 0x00 {
        t.Fatalf( "decode 1 = 0x%02x, want 0x00", sym )
    }

    sym, err = h.decode( r )
    if err != nil {
        t.Fatalf( "decode 2: %v", err )
    }
    if sym != 0x01 {
        t.Fatalf( "decode 2 = 0x%02x, want 0x01", sym )
    }
}

func TestExtendSignExtension( t *testing.T ) {
    cases := []struct {
        v, n int32
        want int32
    }{
        { 0, 1, -1 },
        { 1, 1, 1 },
        { 0, 3, -7 },
        { 7, 3, 7 },
        { 3, 3, -4 },
        { 4, 3, 4 },
    }
    for _, c := range cases {
        got := extend( c.v, byte(c.n) )
        if got != c.want {
            t.Fatalf( "extend(%d,%d) = %d, want %d", c.v, c.n, got, c.want )
        }
    }
}

func TestExtendZeroCategory( t *testing.T ) {
    if got := extend( 0, 0 ); got != 0 {
        t.Fatalf( "extend(0,0) = %d, want 0", got )
    }
}
