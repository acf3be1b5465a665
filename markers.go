package jpeg

// JPEG marker definitions (ITU-T T.81 Table B.1), restricted to the subset
// this decoder recognizes for the baseline profile. Kept as the full set of
// two-byte marker codes (not just the accepted ones) so that an unsupported
// or unknown marker can still be named in an error message.
const (
    _TEM   = 0xff01

    _SOF0  = 0xffc0     // Baseline DCT, accepted
    _SOF1  = 0xffc1     // Extended Sequential DCT, accepted (treated as baseline)
    _SOF2  = 0xffc2     // Progressive DCT, rejected: UnsupportedMode
    _DHT   = 0xffc4
    _SOF5  = 0xffc5     // Differential Sequential, rejected
    _SOF6  = 0xffc6     // Differential Progressive, rejected
    _SOF7  = 0xffc7     // Differential Lossless, rejected
    _JPG   = 0xffc8
    _SOF9  = 0xffc9     // Arithmetic Extended Sequential, rejected
    _SOF10 = 0xffca     // Arithmetic Progressive, rejected
    _SOF11 = 0xffcb     // Arithmetic Lossless, rejected
    _DAC   = 0xffcc
    _SOF13 = 0xffcd
    _SOF14 = 0xffce
    _SOF15 = 0xffcf

    _RST0  = 0xffd0
    _RST1  = 0xffd1
    _RST2  = 0xffd2
    _RST3  = 0xffd3
    _RST4  = 0xffd4
    _RST5  = 0xffd5
    _RST6  = 0xffd6
    _RST7  = 0xffd7
    _SOI   = 0xffd8
    _EOI   = 0xffd9
    _SOS   = 0xffda
    _DQT   = 0xffdb
    _DNL   = 0xffdc
    _DRI   = 0xffdd
    _DHP   = 0xffde
    _EXP   = 0xffdf

    _APP0  = 0xffe0
    _APP1  = 0xffe1
    _APP15 = 0xffef

    _COM   = 0xfffe
)

func isAPPn( marker uint ) bool {
    return marker >= _APP0 && marker <= _APP15
}

func isRST( marker uint ) bool {
    return marker >= _RST0 && marker <= _RST7
}

func markerName( marker uint ) string {
    switch marker {
    case _TEM:   return "TEM"
    case _SOF0:  return "SOF0 (Baseline DCT)"
    case _SOF1:  return "SOF1 (Extended Sequential DCT)"
    case _SOF2:  return "SOF2 (Progressive DCT)"
    case _DHT:   return "DHT"
    case _SOF5:  return "SOF5 (Differential Sequential DCT)"
    case _SOF6:  return "SOF6 (Differential Progressive DCT)"
    case _SOF7:  return "SOF7 (Differential Lossless)"
    case _JPG:   return "JPG"
    case _SOF9:  return "SOF9 (Arithmetic Extended Sequential DCT)"
    case _SOF10: return "SOF10 (Arithmetic Progressive DCT)"
    case _SOF11: return "SOF11 (Arithmetic Lossless)"
    case _DAC:   return "DAC"
    case _SOF13: return "SOF13"
    case _SOF14: return "SOF14"
    case _SOF15: return "SOF15"
    case _SOI:   return "SOI"
    case _EOI:   return "EOI"
    case _SOS:   return "SOS"
    case _DQT:   return "DQT"
    case _DNL:   return "DNL"
    case _DRI:   return "DRI"
    case _DHP:   return "DHP"
    case _EXP:   return "EXP"
    case _COM:   return "COM"
    }
    if isAPPn( marker ) {
        return "APPn"
    }
    if isRST( marker ) {
        return "RSTn"
    }
    return "reserved marker"
}
