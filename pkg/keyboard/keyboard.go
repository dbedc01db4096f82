package keyboard

// Event is a single physical key transition as reported by the capture backend.
// Key codes are Windows virtual-key codes on every platform; other backends
// translate their native codes into this space.
type Event struct {
	VKCode    uint32
	ScanCode  uint32
	Flags     uint32
	IsKeyDown bool
}

// FlagInjected marks events synthesized by SendInput or a virtual device.
const FlagInjected uint32 = 0x10

// FlagLowerILInjected marks events injected from a lower integrity process.
const FlagLowerILInjected uint32 = 0x02

const (
	VKBack    uint32 = 0x08
	VKTab     uint32 = 0x09
	VKReturn  uint32 = 0x0D
	VKShift   uint32 = 0x10
	VKControl uint32 = 0x11
	VKMenu    uint32 = 0x12
	VKCapital uint32 = 0x14
	VKEscape  uint32 = 0x1B
	VKSpace   uint32 = 0x20
	VKA       uint32 = 0x41
	VKZ       uint32 = 0x5A
	VKLWin    uint32 = 0x5B
	VKRWin    uint32 = 0x5C
	VKLShift  uint32 = 0xA0
	VKRShift  uint32 = 0xA1
	VKLCtrl   uint32 = 0xA2
	VKRCtrl   uint32 = 0xA3
	VKLMenu   uint32 = 0xA4
	VKRMenu   uint32 = 0xA5
)

func (e Event) Injected() bool {
	return e.Flags&(FlagInjected|FlagLowerILInjected) != 0
}

func IsLetter(vk uint32) bool {
	return vk >= VKA && vk <= VKZ
}

func IsAlt(vk uint32) bool {
	return vk == VKMenu || vk == VKLMenu || vk == VKRMenu
}

func IsShift(vk uint32) bool {
	return vk == VKShift || vk == VKLShift || vk == VKRShift
}

func IsCtrl(vk uint32) bool {
	return vk == VKControl || vk == VKLCtrl || vk == VKRCtrl
}

func IsWin(vk uint32) bool {
	return vk == VKLWin || vk == VKRWin
}

// IsModifier reports keys that only change modifier state and never end a word.
func IsModifier(vk uint32) bool {
	return IsAlt(vk) || IsShift(vk) || IsCtrl(vk) || IsWin(vk) || vk == VKCapital
}

// Letter decodes a letter virtual key into the Latin character printed on it.
// The second return value is false for non-letter keys.
func Letter(vk uint32, shift bool) (rune, bool) {
	if !IsLetter(vk) {
		return 0, false
	}
	r := rune(vk-VKA) + 'a'
	if shift {
		r = rune(vk-VKA) + 'A'
	}
	return r, true
}

// LetterKey is the inverse of Letter: it returns the virtual key for a Latin
// letter and whether shift is needed to produce it.
func LetterKey(r rune) (vk uint32, shift bool, ok bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return VKA + uint32(r-'a'), false, true
	case r >= 'A' && r <= 'Z':
		return VKA + uint32(r-'A'), true, true
	}
	return 0, false, false
}
