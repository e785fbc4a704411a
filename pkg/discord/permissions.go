package discord

import (
	"fmt"
	"strconv"
)

// Permissions is a Discord permission bitmask. Discord serialises it as a
// decimal string because the flag space exceeds what 32-bit JSON consumers
// can represent; newer capability bits sit above bit 31, so the mask must be
// parsed into a full 64-bit integer.
type Permissions uint64

const (
	PermCreateInstantInvite Permissions = 0x1
	PermKickMembers         Permissions = 0x2
	PermBanMembers          Permissions = 0x4
	PermAdministrator       Permissions = 0x8
	PermManageChannels      Permissions = 0x10
	PermManageGuild         Permissions = 0x20
	PermViewChannel         Permissions = 0x400
	PermSendMessages        Permissions = 0x800
	PermManageMessages      Permissions = 0x2000
	PermManageRoles         Permissions = 0x10000000
	PermManageWebhooks      Permissions = 0x20000000
	PermManageThreads       Permissions = 0x400000000
	PermModerateMembers     Permissions = 0x10000000000
)

// ParsePermissions parses the decimal string form used on the wire.
func ParsePermissions(s string) (Permissions, error) {
	if s == "" {
		return 0, nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("discord: invalid permissions value %q: %w", s, err)
	}

	return Permissions(v), nil
}

// Has reports whether every bit in flag is set. The check is an exact
// bitwise-AND equality: a mask with unrelated bits set but flag unset
// reports false. Truthiness on the AND result would misreport multi-bit
// flags, so this is the only capability check the type exposes.
func (p Permissions) Has(flag Permissions) bool {
	return p&flag == flag
}
