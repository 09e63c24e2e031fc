package lora

import (
	"errors"
	"strconv"
	"time"
)

// Config describes a LoRa channel independently of the transceiver driving it.
// Two radios can only talk if they agree on every field except TxPower.
type Config struct {
	// Frequency is the carrier (center) frequency.
	Frequency Frequency
	// Bandwidth is the occupied channel width. Doubling it halves the
	// symbol period and so doubles the data rate at the cost of sensitivity.
	Bandwidth Frequency
	// PreambleLength in symbols, excluding the fixed sync tail. A receiver
	// should be configured with a preamble at least as long as the
	// transmitter's.
	PreambleLength uint16
	HeaderType     HeaderType
	// MaxImplicitPayloadLength is the payload length of every packet when the
	// header is implicit, and the default length programmed at startup.
	MaxImplicitPayloadLength uint8
	CodingRate               CodingRate
	SpreadFactor             SpreadFactor
	// SyncWord in its one byte form, i.e. 0x34 for public LoRaWAN networks and
	// 0x12 for private networks. Zero leaves the radio default untouched.
	SyncWord uint8
	TxPower  int8 // dBm.
	CRC      bool
	// LDRO enables low data rate optimisation, required when a symbol lasts
	// longer than 16ms.
	LDRO bool
	// IQInversion swaps I and Q, as LoRaWAN downlinks do.
	IQInversion bool
}

// SymbolPeriod is 2^SF chips divided by the bandwidth.
func (cfg *Config) SymbolPeriod() time.Duration {
	if cfg.Bandwidth <= 0 {
		return 0
	}
	return time.Second * time.Duration(cfg.SpreadFactor.ChipsPerSymbol()) /
		time.Duration(cfg.Bandwidth.Hertz())
}

// TimeOnAir returns how long a packet with payloadLength bytes of payload
// occupies the channel, preamble and header included. It follows the
// SX126x/LLCC68 datasheet formula: SF5 and SF6 add 6.25 symbols to the
// preamble, higher spread factors add 4.25.
func (cfg *Config) TimeOnAir(payloadLength int) time.Duration {
	if cfg.Bandwidth <= 0 {
		return 0
	}
	sf := int64(cfg.SpreadFactor)
	bits := 8*int64(payloadLength) - 4*sf + 16*int64(b2u8(cfg.CRC)) - 20*int64(cfg.HeaderType)
	var perBlock int64
	// Counted in quarter symbols to keep the fractional preamble tail exact.
	quarters := 4 * int64(cfg.PreambleLength)
	if cfg.SpreadFactor < SF7 {
		bits += 8
		perBlock = 4 * sf
		quarters += 25
	} else {
		bits += 28
		perBlock = 4 * (sf - 2*int64(b2u8(cfg.LDRO)))
		quarters += 17
	}
	symbols := int64(8)
	if bits > 0 && perBlock > 0 {
		blocks := (bits + perBlock - 1) / perBlock
		symbols += blocks * (int64(cfg.CodingRate) + 4)
	}
	quarters += 4 * symbols
	return time.Duration(quarters*cfg.SpreadFactor.ChipsPerSymbol()) * time.Second /
		time.Duration(4*cfg.Bandwidth.Hertz())
}

// BitRate returns the nominal payload bit rate in bits per second:
// SF * BW / 2^SF scaled by the coding rate 4/(4+CR).
func (cfg *Config) BitRate() int64 {
	if cfg.Bandwidth <= 0 || cfg.CodingRate == 0 {
		return 0
	}
	return int64(cfg.SpreadFactor) * cfg.Bandwidth.Hertz() * 4 /
		(cfg.SpreadFactor.ChipsPerSymbol() * (4 + int64(cfg.CodingRate)))
}

// HeaderType selects whether packets carry a header. An explicit header
// holds the payload length, coding rate and CRC presence. With an implicit
// header both ends must agree on them in advance.
type HeaderType uint8

const (
	HeaderExplicit HeaderType = 0
	HeaderImplicit HeaderType = 1
)

func (h HeaderType) String() string {
	switch h {
	case HeaderExplicit:
		return "explicit"
	case HeaderImplicit:
		return "implicit"
	}
	return "header(" + strconv.Itoa(int(h)) + ")"
}

// CodingRate is the forward error correction ratio. CR4_5 sends 5 bits for
// every 4 bits of data.
type CodingRate uint8

const (
	CR4_5 CodingRate = 1
	CR4_6 CodingRate = 2
	CR4_7 CodingRate = 3
	CR4_8 CodingRate = 4
)

var ErrBadCodingRate = errors.New("lora: coding rate must be 4/5, 4/6, 4/7 or 4/8")

// ParseCodingRate parses the "4/5" .. "4/8" notation.
func ParseCodingRate(s string) (CodingRate, error) {
	if len(s) != 3 || s[0] != '4' || s[1] != '/' || s[2] < '5' || s[2] > '8' {
		return 0, ErrBadCodingRate
	}
	return CodingRate(s[2] - '4'), nil
}

func (cr CodingRate) String() string {
	if cr < CR4_5 || cr > CR4_8 {
		return "cr(" + strconv.Itoa(int(cr)) + ")"
	}
	return "4/" + strconv.Itoa(int(cr)+4)
}

// SpreadFactor is log2 of the number of chips per symbol. Each step up
// doubles the symbol period and adds range.
type SpreadFactor uint8

const (
	SF5 SpreadFactor = iota + 5
	SF6
	SF7
	SF8
	SF9
	SF10
	SF11
	SF12
)

func (sf SpreadFactor) ChipsPerSymbol() int64 {
	return 1 << sf
}

func (sf SpreadFactor) String() string {
	return "SF" + strconv.Itoa(int(sf))
}

// Frequency in Hz. It is used both for carrier frequencies and bandwidths.
type Frequency int64

func (f Frequency) Hertz() int64 { return int64(f) }

// String formats f in the largest unit it reaches, i.e. "868.1MHz" or "125kHz".
func (f Frequency) String() string {
	switch {
	case f >= MegaHertz || f <= -MegaHertz:
		return strconv.FormatFloat(float64(f)/float64(MegaHertz), 'f', -1, 64) + "MHz"
	case f >= KiloHertz || f <= -KiloHertz:
		return strconv.FormatFloat(float64(f)/float64(KiloHertz), 'f', -1, 64) + "kHz"
	}
	return strconv.FormatInt(int64(f), 10) + "Hz"
}

const (
	Hertz     Frequency = 1
	KiloHertz Frequency = 1000 * Hertz
	MegaHertz Frequency = 1000 * KiloHertz
)

// LoRa bandwidths supported by the LLCC68.
const (
	BW125k = 125 * KiloHertz
	BW250k = 250 * KiloHertz
	BW500k = 500 * KiloHertz
)

// Common carrier frequencies.
const (
	// Lower and upper edge of the 433MHz ISM band.
	Freq433_0M = 433050000 * Hertz
	Freq434_8M = 434790000 * Hertz
	// EU868 default channels.
	Freq868_0M = 868000000 * Hertz
	Freq868_1M = 868100000 * Hertz
	Freq868_5M = 868500000 * Hertz
	// US915 and AS923.
	Freq915_0M = 915000000 * Hertz
	Freq916_8M = 916800000 * Hertz
	Freq923_3M = 923300000 * Hertz
)

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
