package ines

// Mirroring is the hard-wired nametable mirroring of the cartridge.
type Mirroring uint8

const (
	// MirroringHorizontal is horizontal mirroring or mirroring controlled by the mapper.
	MirroringHorizontal Mirroring = iota
	MirroringVertical
)

func (m Mirroring) String() string {
	switch m {
	case MirroringHorizontal:
		return "horizontal or mapper controlled"
	case MirroringVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// NametableLayout is the effective nametable arrangement, taking the
// four-screen override into account.
type NametableLayout uint8

const (
	LayoutHorizontal NametableLayout = iota
	LayoutVertical
	LayoutFourScreen
)

func (l NametableLayout) String() string {
	switch l {
	case LayoutHorizontal:
		return "horizontal"
	case LayoutVertical:
		return "vertical"
	case LayoutFourScreen:
		return "four-screen"
	default:
		return "unknown"
	}
}

// ConsoleType is the console the image targets.
type ConsoleType uint8

const (
	ConsoleNES ConsoleType = iota // NES or Famicom
	ConsoleVsSystem
	ConsolePlayChoice10
)

func (c ConsoleType) String() string {
	switch c {
	case ConsoleNES:
		return "NES/Famicom"
	case ConsoleVsSystem:
		return "Nintendo VS System"
	case ConsolePlayChoice10:
		return "Nintendo PlayChoice-10"
	default:
		return "unknown"
	}
}

// TVSystem is the video timing the image targets.
type TVSystem uint8

const (
	TVSystemNTSC TVSystem = iota
	TVSystemPAL
)

func (t TVSystem) String() string {
	switch t {
	case TVSystemNTSC:
		return "NTSC"
	case TVSystemPAL:
		return "PAL"
	default:
		return "unknown"
	}
}
