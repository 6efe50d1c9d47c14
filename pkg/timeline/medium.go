package timeline

// Medium is a category of timed content. Image and video clips are both
// visual base media and share one placement group; text overlays and the
// three audio mediums each have their own.
type Medium string

// Supported mediums.
const (
	MediumImage Medium = "image"
	MediumVideo Medium = "video"
	MediumText  Medium = "text"
	MediumVoice Medium = "voice"
	MediumMusic Medium = "music"
	MediumSFX   Medium = "sfx"
)

// Mediums returns all supported mediums in stable order.
func Mediums() []Medium {
	return []Medium{MediumImage, MediumVideo, MediumText, MediumVoice, MediumMusic, MediumSFX}
}

// Valid reports whether m is a supported medium.
func (m Medium) Valid() bool {
	switch m {
	case MediumImage, MediumVideo, MediumText, MediumVoice, MediumMusic, MediumSFX:
		return true
	}
	return false
}

// IsVisual reports whether m is base visual media (image or video).
func (m Medium) IsVisual() bool {
	return m == MediumImage || m == MediumVideo
}

// IsAudio reports whether m is an audio medium.
func (m Medium) IsAudio() bool {
	return m == MediumVoice || m == MediumMusic || m == MediumSFX
}

// Group is a placement lane family. Tracks and sequential cursors are
// keyed by group, not by medium: image and video clips compete for the
// same visual lanes, while text and each audio medium get their own.
type Group string

// Placement groups.
const (
	GroupVideo Group = "video"
	GroupText  Group = "text"
	GroupVoice Group = "voice"
	GroupMusic Group = "music"
	GroupSFX   Group = "sfx"
)

// Groups returns all placement groups in stable order.
func Groups() []Group {
	return []Group{GroupVideo, GroupText, GroupVoice, GroupMusic, GroupSFX}
}

// Group returns the placement group for m.
func (m Medium) Group() Group {
	switch m {
	case MediumImage, MediumVideo:
		return GroupVideo
	case MediumText:
		return GroupText
	case MediumVoice:
		return GroupVoice
	case MediumMusic:
		return GroupMusic
	case MediumSFX:
		return GroupSFX
	}
	return Group(m)
}

// Valid reports whether g is a supported placement group.
func (g Group) Valid() bool {
	switch g {
	case GroupVideo, GroupText, GroupVoice, GroupMusic, GroupSFX:
		return true
	}
	return false
}

// IsVisual reports whether tracks in g carry visual content.
func (g Group) IsVisual() bool {
	return g == GroupVideo || g == GroupText
}

// IsAudio reports whether tracks in g carry audio content.
func (g Group) IsAudio() bool {
	return g == GroupVoice || g == GroupMusic || g == GroupSFX
}
