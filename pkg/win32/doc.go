// Package win32 is the Windows backend: a WH_KEYBOARD_LL capture hook, the
// foreground window oracle, keyboard layout control and SendInput injection.
package win32
