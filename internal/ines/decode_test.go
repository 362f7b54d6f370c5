package ines

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"golang.org/x/sync/errgroup"
)

// buildImage creates an iNES image with the given header bytes 4-15 and
// sections filled with a distinct byte value each.
func buildImage(header [12]byte, title []byte) []byte {
	var h Header
	copy(h[:], Signature[:])
	copy(h[4:], header[:])

	data := append([]byte{}, h[:]...)
	if h.HasTrainer() {
		data = append(data, bytes.Repeat([]byte{0x11}, TrainerSize)...)
	}
	data = append(data, bytes.Repeat([]byte{0x22}, PRGROMUnitSize*int(h.PRGROMUnits()))...)
	data = append(data, bytes.Repeat([]byte{0x33}, CHRROMUnitSize*int(h.CHRROMUnits()))...)
	if h.HasPlayChoice() {
		data = append(data, bytes.Repeat([]byte{0x44}, PlayChoiceINSTROMSize)...)
		data = append(data, bytes.Repeat([]byte{0x55}, PlayChoicePROMDataSize)...)
		data = append(data, bytes.Repeat([]byte{0x66}, PlayChoicePROMCounterOutSize)...)
	}
	return append(data, title...)
}

func TestDecodeInvalidSignature(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"too short", []byte{0x4E, 0x45, 0x53}},
		{"wrong eof byte", []byte{0x4E, 0x45, 0x53, 0x00, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"lowercase", []byte("nes\x1a" + "012345678901")},
		{"zeros", make([]byte, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(tt.data)
			assert.True(t, errors.Is(err, ErrInvalidSignature))
			assert.Nil(t, img)
		})
	}
}

func TestDecodeMinimal(t *testing.T) {
	data := buildImage([12]byte{1}, nil)
	assert.Equal(t, HeaderSize+PRGROMUnitSize, len(data))

	img, err := Decode(data)
	assert.NoError(t, err)
	assert.Equal(t, len(data), img.Size())
	assert.Equal(t, PRGROMUnitSize, len(img.PRG()))
	assert.Equal(t, 0, len(img.CHR()))
	assert.Equal(t, 0, len(img.Trainer()))
	assert.Equal(t, 0, len(img.Title()))
	assert.False(t, img.HasTrainer())
	assert.False(t, img.HasCHRROM())
	assert.Equal(t, CHRRAMSize, img.CHRRAMSize())
	assert.Equal(t, 0, img.PRGRAMSize())
	assert.Equal(t, 0, len(img.PlayChoiceINSTROM()))
	assert.Equal(t, uint8(0), img.Mapper())
	assert.Equal(t, ConsoleNES, img.Console())
	assert.Equal(t, TVSystemNTSC, img.TVSystem())
	assert.Equal(t, MirroringHorizontal, img.Mirroring())
}

func TestDecodeTrainer(t *testing.T) {
	data := buildImage([12]byte{1, 0, flag6Trainer}, nil)
	data[HeaderSize+TrainerSize] = 0xA9 // first PRG byte

	img, err := Decode(data)
	assert.NoError(t, err)
	assert.True(t, img.HasTrainer())
	assert.Equal(t, TrainerSize, len(img.Trainer()))
	assert.Equal(t, byte(0x11), img.Trainer()[0])
	assert.Equal(t, PRGROMUnitSize, len(img.PRG()))
	assert.Equal(t, byte(0xA9), img.PRG()[0])
	assert.Equal(t, byte(0x22), img.PRG()[PRGROMUnitSize-1])
}

func TestDecodeSectionOrder(t *testing.T) {
	title := []byte("Test Title\x00\x00\xff")
	data := buildImage([12]byte{2, 1, flag6Trainer, flag7PlayChoice}, title)

	img, err := Decode(data)
	assert.NoError(t, err)

	var sections [][]byte
	hdr := img.Header()
	sections = append(sections, hdr[:], img.Trainer(), img.PRG(), img.CHR(),
		img.PlayChoiceINSTROM(), img.PlayChoicePROMData(), img.PlayChoicePROMCounterOut(), img.Title())
	assert.True(t, bytes.Equal(data, bytes.Join(sections, nil)))

	assert.Equal(t, 2*PRGROMUnitSize, len(img.PRG()))
	assert.Equal(t, CHRROMUnitSize, len(img.CHR()))
	assert.Equal(t, 0, img.CHRRAMSize())
	assert.Equal(t, PlayChoiceINSTROMSize, len(img.PlayChoiceINSTROM()))
	assert.Equal(t, PlayChoicePROMDataSize, len(img.PlayChoicePROMData()))
	assert.Equal(t, PlayChoicePROMCounterOutSize, len(img.PlayChoicePROMCounterOut()))
	assert.Equal(t, byte(0x66), img.PlayChoicePROMCounterOut()[0])
	assert.Equal(t, "Test Title", img.TitleString())
	assert.Equal(t, ConsolePlayChoice10, img.Console())
}

func TestDecodePlayChoiceBlocks(t *testing.T) {
	data := buildImage([12]byte{1}, nil)
	data[7] = flag7PlayChoice
	data = append(data, make([]byte, 8192+16384+16384)...)

	img, err := Decode(data)
	assert.NoError(t, err)
	assert.Equal(t, 8192, len(img.PlayChoiceINSTROM()))
	assert.Equal(t, 16384, len(img.PlayChoicePROMData()))
	assert.Equal(t, 16384, len(img.PlayChoicePROMCounterOut()))
	assert.Equal(t, 0, len(img.Title()))

	// one byte short of the counter-out block
	_, err = Decode(data[:len(data)-1])
	var truncErr *TruncatedError
	assert.True(t, errors.As(err, &truncErr))
	assert.Equal(t, SectionPlayChoicePROMCounterOut, truncErr.Section)
	assert.Equal(t, 16384, truncErr.Size)
	assert.Equal(t, 16383, truncErr.Available)
}

func TestDecodeTruncated(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		section string
	}{
		{
			name:    "header",
			data:    []byte{0x4E, 0x45, 0x53, 0x1A, 1, 0},
			section: SectionHeader,
		},
		{
			name:    "trainer",
			data:    buildImage([12]byte{0, 0, flag6Trainer}, nil)[:HeaderSize+100],
			section: SectionTrainer,
		},
		{
			name: "PRG-ROM declares 2 pages but has 1",
			data: func() []byte {
				data := buildImage([12]byte{1}, nil)
				data[4] = 2
				return data
			}(),
			section: SectionPRGROM,
		},
		{
			name:    "CHR-ROM",
			data:    buildImage([12]byte{1, 2}, nil)[:HeaderSize+PRGROMUnitSize+CHRROMUnitSize],
			section: SectionCHRROM,
		},
		{
			name:    "PlayChoice PROM",
			data:    buildImage([12]byte{1, 0, 0, flag7PlayChoice}, nil)[:HeaderSize+PRGROMUnitSize+PlayChoiceINSTROMSize+8],
			section: SectionPlayChoicePROMData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(tt.data)
			assert.Nil(t, img)
			assert.True(t, errors.Is(err, ErrTruncatedImage))

			var truncErr *TruncatedError
			assert.True(t, errors.As(err, &truncErr))
			assert.Equal(t, tt.section, truncErr.Section)
			assert.True(t, truncErr.Available < truncErr.Size)
		})
	}
}

func TestDecodeHeaderIdentity(t *testing.T) {
	headers := [][12]byte{
		{1},
		{1, 1, 0xFF, 0xF0},
		{2, 0, flag6Trainer | flag6Battery, flag7VsSystem, 4, flag9PAL | flag9PRGRAMAbsent},
		{1, 0, 0, flag7PlayChoice, 0, 0, 0, 0, 'D', 'u', 'd', 'e'},
	}

	for _, header := range headers {
		data := buildImage(header, []byte("title"))
		img, err := Decode(data)
		assert.NoError(t, err)

		h := img.Header()
		assert.True(t, bytes.Equal(data[:HeaderSize], h[:]))
		assert.Equal(t, HeaderSize, len(h))
	}
}

func TestDecodeIdempotent(t *testing.T) {
	data := buildImage([12]byte{2, 1, flag6Trainer | flag6Mirroring, flag7PlayChoice | 0x10, 2}, []byte("abc"))

	img1, err := Decode(data)
	assert.NoError(t, err)
	img2, err := Decode(data)
	assert.NoError(t, err)
	assert.True(t, reflect.DeepEqual(img1, img2))
}

func TestDecodeOwnership(t *testing.T) {
	data := buildImage([12]byte{1}, []byte("xyz"))
	img, err := Decode(data)
	assert.NoError(t, err)

	for i := range data {
		data[i] = 0
	}
	h := img.Header()
	assert.True(t, h.HasValidSignature())
	assert.Equal(t, byte(0x22), img.PRG()[0])
	assert.Equal(t, "xyz", img.TitleString())

	prg := img.PRG()
	prg[0] = 0xFF
	assert.Equal(t, byte(0x22), img.PRG()[0])
}

// TestDecodeFlagIndependence toggles every single flag bit and checks that
// exactly the expected field of the image changes.
func TestDecodeFlagIndependence(t *testing.T) {
	type flags struct {
		mirroring  Mirroring
		battery    bool
		fourScreen bool
		console    ConsoleType
		tvSystem   TVSystem
	}
	read := func(img *Image) flags {
		return flags{img.Mirroring(), img.HasBattery(), img.FourScreen(), img.Console(), img.TVSystem()}
	}

	// the trailing bytes become the PlayChoice blocks once the PlayChoice bit is set
	base := buildImage([12]byte{1}, make([]byte, PlayChoiceINSTROMSize+PlayChoicePROMDataSize+PlayChoicePROMCounterOutSize))
	baseImg, err := Decode(base)
	assert.NoError(t, err)
	want := read(baseImg)

	tests := []struct {
		name   string
		index  int
		mask   byte
		change func(f *flags)
	}{
		{"mirroring", 6, flag6Mirroring, func(f *flags) { f.mirroring = MirroringVertical }},
		{"battery", 6, flag6Battery, func(f *flags) { f.battery = true }},
		{"four-screen", 6, flag6FourScreen, func(f *flags) { f.fourScreen = true }},
		{"vs system", 7, flag7VsSystem, func(f *flags) { f.console = ConsoleVsSystem }},
		{"playchoice", 7, flag7PlayChoice, func(f *flags) { f.console = ConsolePlayChoice10 }},
		{"tv system", 9, flag9PAL, func(f *flags) { f.tvSystem = TVSystemPAL }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Clone(base)
			data[tt.index] |= tt.mask

			img, err := Decode(data)
			assert.NoError(t, err)

			expected := want
			tt.change(&expected)
			assert.Equal(t, expected, read(img))
		})
	}
}

func TestDecodePRGRAMSize(t *testing.T) {
	tests := []struct {
		name   string
		units  byte
		flags9 byte
		want   int
	}{
		{"none", 0, 0, 0},
		{"one unit", 1, 0, PRGRAMUnitSize},
		{"four units", 4, 0, 4 * PRGRAMUnitSize},
		{"absent flag", 4, flag9PRGRAMAbsent, 0},
		{"absent flag with PAL", 2, flag9PRGRAMAbsent | flag9PAL, 0},
		{"PAL only", 2, flag9PAL, 2 * PRGRAMUnitSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(buildImage([12]byte{1, 0, 0, 0, tt.units, tt.flags9}, nil))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, img.PRGRAMSize())
		})
	}
}

func TestNametableLayout(t *testing.T) {
	tests := []struct {
		flags6 byte
		want   NametableLayout
	}{
		{0x00, LayoutHorizontal},
		{flag6Mirroring, LayoutVertical},
		{flag6FourScreen, LayoutFourScreen},
		{flag6FourScreen | flag6Mirroring, LayoutFourScreen},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			img, err := Decode(buildImage([12]byte{1, 0, tt.flags6}, nil))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, img.NametableLayout())
		})
	}
}

func TestDecodeConcurrent(t *testing.T) {
	data := buildImage([12]byte{2, 1, flag6Trainer}, []byte("concurrent"))
	want, err := Decode(data)
	assert.NoError(t, err)

	var g errgroup.Group
	results := make([]*Image, 16)
	for i := range results {
		g.Go(func() error {
			img, err := Decode(data)
			results[i] = img
			return err
		})
	}
	assert.NoError(t, g.Wait())

	for _, img := range results {
		assert.True(t, reflect.DeepEqual(want, img))
	}
}
