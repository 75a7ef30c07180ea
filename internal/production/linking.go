package production

type LinkingType string

const (
	LinkingManual   LinkingType = "Manual Linking"
	LinkingSemiAuto LinkingType = "Semi Auto Linking"
	LinkingAuto     LinkingType = "Auto Linking"
)

// ParseLinkingType accepts the display names and a few compact spellings.
// Unrecognized values fall back to manual linking, which keeps the Linking floor.
func ParseLinkingType(s string) LinkingType {
	switch normalizeName(s) {
	case "auto linking", "auto", "autolinking", "fully automatic", "fully auto linking":
		return LinkingAuto
	case "semi auto linking", "semi auto", "semiauto", "semi automatic":
		return LinkingSemiAuto
	default:
		return LinkingManual
	}
}

// SkipsLinking reports whether articles of this type bypass the Linking floor.
func (t LinkingType) SkipsLinking() bool {
	return t == LinkingAuto
}

func (t LinkingType) String() string {
	return string(t)
}
