/*
package llcc68 implements a driver for the Semtech LLCC68 sub-GHz LoRa transceiver.

The LLCC68 is controlled through a command interface over SPI: each
transaction starts with a one byte opcode followed by its parameters. The chip
signals it is ready for a new command by pulling its BUSY line low. Every
command issued by this package waits for BUSY before asserting chip select.

# Errors

Each operation returns its own error. Runtime failures (a BUSY or DIO wait
running out of budget, or a packet type other than LoRa) are additionally
recorded on the Device and can be polled with [Device.LastError]. The
recorded error is never cleared by a later successful operation; call
[Device.ClearError] to reset it.

# Buffer

The LLCC68 has a 256 byte data buffer shared by TX and RX. This driver places
both base addresses at 0 so a packet to transmit and a received packet both
start at offset 0.
*/
package llcc68

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lorakit/lora"
)

// Config holds the parameters the LLCC68 is programmed with at construction.
// The embedded lora.Config describes the channel; the remaining fields are
// chip and board specific.
type Config struct {
	lora.Config
	// PacketType must be PacketTypeLoRa. Any other value makes New record
	// Unsupported and skip initialization.
	PacketType PacketType
	TCXO       TCXOConfig
	// RFSwitch makes the chip drive DIO2 high during TX, for boards with an RF switch on DIO2.
	RFSwitch bool
	PA       PAConfig
	Ramp     RampTime
	// TxTimeout in 15.625µs ticks. Zero means 6400 (100ms).
	TxTimeout uint32
	// IRQPolls is the number of 1ms polls of a DIO line before giving up. Zero means 200.
	IRQPolls int
	// BusyTimeout in milliseconds for the wait preceding each configuration,
	// IRQ or buffer command. Zero or negative waits forever. Mode changes
	// (Sleep, Standby, FS, TX and RX) always wait for BUSY without a timeout.
	BusyTimeout int32
	// HardReset pulses NRESET before initialization.
	HardReset bool
	// Logger receives debug and error logs. Nil disables logging.
	Logger *slog.Logger
}

// TCXOConfig configures DIO3 as the supply of an external TCXO.
type TCXOConfig struct {
	Enabled bool
	Voltage TCXOVoltage
	// DelayTicks is the TCXO startup time in 15.625µs ticks. -1 selects 0x64 (1.56ms).
	DelayTicks int32
}

// PAConfig is the power amplifier setting of SetPaConfig.
type PAConfig struct {
	DutyCycle uint8
	HPMax     uint8
}

// DefaultConfig returns a LoRa configuration for freq that works with most
// LLCC68 modules: SF7, 125kHz, CR 4/5, explicit header and 14dBm.
func DefaultConfig(freq lora.Frequency) Config {
	return Config{
		Config: lora.Config{
			Frequency:                freq,
			Bandwidth:                lora.BW125k,
			SpreadFactor:             lora.SF7,
			CodingRate:               lora.CR4_5,
			PreambleLength:           12,
			HeaderType:               lora.HeaderExplicit,
			MaxImplicitPayloadLength: maxPayload,
			CRC:                      true,
			TxPower:                  14,
		},
		PacketType: PacketTypeLoRa,
		TCXO:       TCXOConfig{Voltage: TCXO1_8V, DelayTicks: -1},
		RFSwitch:   true,
		PA:         PA14dBm,
		Ramp:       Ramp200us,
	}
}

// Validate checks the LoRa parameters for contract violations. Configurations
// of another packet type are not checked here; New reports them as Unsupported.
func (cfg *Config) Validate() error {
	if cfg.PacketType != PacketTypeLoRa {
		return nil
	}
	if cfg.Frequency < minFrequency || cfg.Frequency > maxFrequency {
		return ErrBadFrequency
	}
	if err := checkTxPower(cfg.TxPower); err != nil {
		return err
	}
	if cfg.Ramp > Ramp3400us {
		return ErrBadRampTime
	}
	if cfg.HeaderType != lora.HeaderExplicit && cfg.HeaderType != lora.HeaderImplicit {
		return ErrBadHeaderType
	}
	_, err := loraModulation(cfg.Config)
	return err
}

func checkTxPower(dBm int8) error {
	if dBm < -9 || dBm > 22 {
		return ErrTxPowerRange
	}
	return nil
}

// ModulationParams are the LoRa modulation parameters in their wire form.
type ModulationParams struct {
	SpreadFactor uint8
	Bandwidth    uint8 // bandwidth code, 0x04=125kHz, 0x05=250kHz, 0x06=500kHz.
	CodingRate   uint8
	LDRO         bool
}

// loraModulation maps cfg to wire modulation parameters. The LLCC68 supports
// SF5..SF9 at 125kHz, up to SF10 at 250kHz and up to SF11 at 500kHz.
func loraModulation(cfg lora.Config) (mp ModulationParams, err error) {
	maxSF := lora.SF9
	switch cfg.Bandwidth {
	case lora.BW125k:
		mp.Bandwidth = bw125
	case lora.BW250k:
		mp.Bandwidth = bw250
		maxSF = lora.SF10
	case lora.BW500k:
		mp.Bandwidth = bw500
		maxSF = lora.SF11
	default:
		return mp, ErrBadBandwidth
	}
	switch {
	case cfg.SpreadFactor < lora.SF5 || cfg.SpreadFactor > maxSF:
		return mp, ErrBadSpreadFactor
	case cfg.CodingRate < lora.CR4_5 || cfg.CodingRate > lora.CR4_8:
		return mp, ErrBadCodingRate
	}
	mp.SpreadFactor = uint8(cfg.SpreadFactor)
	mp.CodingRate = uint8(cfg.CodingRate)
	mp.LDRO = cfg.LDRO
	return mp, nil
}

// PacketParams are the LoRa packet parameters in their wire form.
type PacketParams struct {
	PreambleLength uint16
	HeaderType     lora.HeaderType
	PayloadLength  uint8
	CRC            bool
	InvertIQ       bool
}

func loraPacket(cfg lora.Config) PacketParams {
	return PacketParams{
		PreambleLength: cfg.PreambleLength,
		HeaderType:     cfg.HeaderType,
		PayloadLength:  cfg.MaxImplicitPayloadLength,
		CRC:            cfg.CRC,
		InvertIQ:       cfg.IQInversion,
	}
}

// Device is an LLCC68 transceiver. It owns its Bus, GPIO and Timer and must
// not be used concurrently.
type Device struct {
	bus   Bus
	gpio  GPIO
	timer Timer
	pins  PinMap
	cfg   Config
	log   *slog.Logger

	lastErr ErrorCode
	// payloadLen is the PayloadLength last programmed with SetLoRaPacketParams, -1 if unknown.
	payloadLen int
	cmd        [12]byte
}

// New validates cfg, configures the bus for MSB first transfers and runs the
// initialization sequence. A contract violation in cfg returns a nil Device.
// Otherwise the Device is returned even if initialization failed, with the
// failure also recorded in LastError.
func New(bus Bus, gpio GPIO, timer Timer, pins PinMap, cfg Config) (*Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.TxTimeout == 0 {
		cfg.TxTimeout = defaultTxTimeout
	}
	if cfg.IRQPolls <= 0 {
		cfg.IRQPolls = defaultIRQPolls
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = -1
	}
	d := &Device{
		bus:        bus,
		gpio:       gpio,
		timer:      timer,
		pins:       pins,
		cfg:        cfg,
		log:        cfg.Logger,
		payloadLen: -1,
	}
	if !bus.IsBitOrderMSBFirst() {
		bus.SetBitOrder(true)
	}
	if cfg.HardReset {
		d.Reset()
	}
	return d, d.init()
}

// init programs the radio in the fixed order the chip requires. Only a
// packet type other than LoRa aborts the sequence; later failures are
// collected and the remaining steps still run.
func (d *Device) init() error {
	cfg := &d.cfg
	if cfg.PacketType != PacketTypeLoRa {
		return d.fail("init", Unsupported)
	}
	mp, _ := loraModulation(cfg.Config) // Validated in New.
	var errs []error
	step := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	step(d.SetStandby(StandbyRC))
	step(d.SetRegulatorMode(RegulatorDCDC))
	step(d.SetPAConfig(cfg.PA))
	if cfg.TCXO.Enabled {
		delay := uint32(cfg.TCXO.DelayTicks)
		if cfg.TCXO.DelayTicks < 0 {
			delay = defaultTCXODelay
		}
		step(d.SetDIO3AsTCXOCtrl(cfg.TCXO.Voltage, delay))
	}
	step(d.SetDIO2AsRFSwitchCtrl(cfg.RFSwitch))
	step(d.SetPacketType(cfg.PacketType))
	step(d.SetRFFrequency(uint32(cfg.Frequency)))
	step(d.SetTxParams(cfg.TxPower, cfg.Ramp))
	step(d.SetBufferBaseAddress(0, 0))
	step(d.SetLoRaModulationParams(mp))
	step(d.SetLoRaPacketParams(loraPacket(cfg.Config)))
	if cfg.SyncWord != 0 {
		step(d.SetSyncWord(syncWordRegister(cfg.SyncWord)))
	}
	return errors.Join(errs...)
}

// Config returns the configuration the Device was created with, defaults applied.
func (d *Device) Config() Config { return d.cfg }

// LastError returns the last runtime failure recorded by any operation, or
// NoError. It is not cleared by later successful operations.
func (d *Device) LastError() ErrorCode { return d.lastErr }

// ClearError resets the recorded error to NoError.
func (d *Device) ClearError() { d.lastErr = NoError }

// Reset pulses NRESET low for 2ms and waits 20ms for the chip to boot.
// The chip comes out of reset in Standby RC with its default configuration.
func (d *Device) Reset() {
	d.gpio.Set(d.pins.Reset, false)
	d.timer.Delay(2)
	d.gpio.Set(d.pins.Reset, true)
	d.timer.Delay(20)
	d.payloadLen = -1
}

// fail records code as the last error and returns it.
func (d *Device) fail(what string, code ErrorCode) error {
	d.lastErr = code
	d.logerr("llcc68:fail", slog.String("in", what), slog.String("err", code.Error()))
	return code
}

// gate waits for BUSY to deassert ahead of a command.
func (d *Device) gate(op Opcode) error {
	err := d.WaitBusy(d.cfg.BusyTimeout)
	if err != nil {
		d.logerr("llcc68:gate", slog.String("op", op.String()))
	}
	return err
}

// command issues cmd and optional trailing data in a single busy-gated transaction.
func (d *Device) command(cmd, data []byte) error {
	op := Opcode(cmd[0])
	if err := d.gate(op); err != nil {
		return err
	}
	return d.txn(op, cmd, data, nil)
}

// transition issues a mode change. It waits for BUSY without a timeout
// regardless of Config.BusyTimeout.
func (d *Device) transition(cmd []byte) error {
	d.WaitBusy(-1)
	return d.txn(Opcode(cmd[0]), cmd, nil, nil)
}

// query issues cmd, which must include the status byte preceding the reply,
// and reads the reply into dst.
func (d *Device) query(cmd, dst []byte) error {
	op := Opcode(cmd[0])
	if err := d.gate(op); err != nil {
		return err
	}
	return d.txn(op, cmd, nil, dst)
}

// txn runs one transaction: cmd is written, then w is written or r is read.
// Chip select is released on every path once asserted.
func (d *Device) txn(op Opcode, cmd, w, r []byte) (err error) {
	err = d.bus.BeginTransaction()
	if err != nil {
		return fmt.Errorf("llcc68: %s: %w", op, err)
	}
	err = d.bus.Tx(cmd, nil)
	if err == nil && (len(w) > 0 || len(r) > 0) {
		err = d.bus.Tx(w, r)
	}
	endErr := d.bus.EndTransaction()
	if err == nil {
		err = endErr
	}
	if err != nil {
		d.logerr("llcc68:txn", slog.String("op", op.String()), slog.String("err", err.Error()))
		return fmt.Errorf("llcc68: %s: %w", op, err)
	}
	if d.log != nil {
		d.debug("llcc68:cmd", slog.String("op", op.String()), slog.Int("len", len(cmd)+len(w)+len(r)))
	}
	return nil
}

func (d *Device) debug(msg string, attrs ...slog.Attr) {
	d.logattrs(slog.LevelDebug, msg, attrs...)
}

func (d *Device) logerr(msg string, attrs ...slog.Attr) {
	d.logattrs(slog.LevelError, msg, attrs...)
}

func (d *Device) logattrs(level slog.Level, msg string, attrs ...slog.Attr) {
	if d.log != nil {
		d.log.LogAttrs(context.Background(), level, msg, attrs...)
	}
}
