package avatar

import (
	"errors"
	"fmt"
)

// ErrUnknownTag is returned by ParseTag for names that are not a layer or
// setting of the renderer.
var ErrUnknownTag = errors.New("unknown tag")

// Tag names an input whose change invalidates a derived layer.
type Tag int

const (
	TagPfp Tag = iota
	TagRadius
	TagLeftFlag
	TagRightFlag
	TagWarpStrength
	TagIsCropped
	TagAngle

	numTags
)

// Layer identifies one of the two derived outputs.
type Layer int

const (
	LayerForeground Layer = iota
	LayerBackground
)

func (l Layer) String() string {
	if l == LayerForeground {
		return "foreground"
	}
	return "background"
}

var tagInfo = [numTags]struct {
	name  string
	layer Layer
}{
	TagPfp:          {"pfp", LayerForeground},
	TagRadius:       {"radius", LayerForeground},
	TagLeftFlag:     {"leftFlag", LayerBackground},
	TagRightFlag:    {"rightFlag", LayerBackground},
	TagWarpStrength: {"warpStrength", LayerBackground},
	TagIsCropped:    {"isCropped", LayerBackground},
	TagAngle:        {"angle", LayerBackground},
}

// tagAliases are the snake_case spellings accepted from tool arguments.
var tagAliases = map[string]Tag{
	"left_flag":     TagLeftFlag,
	"right_flag":    TagRightFlag,
	"warp_strength": TagWarpStrength,
	"is_cropped":    TagIsCropped,
	"cropped":       TagIsCropped,
}

// Layer returns the derived layer that depends on t.
func (t Tag) Layer() Layer {
	return tagInfo[t.mustValid()].layer
}

func (t Tag) String() string {
	if t < 0 || t >= numTags {
		return fmt.Sprintf("Tag(%d)", int(t))
	}
	return tagInfo[t].name
}

// mustValid panics on a Tag outside the enumeration. Within this module
// tags are constants, so this only fires on a programming error.
func (t Tag) mustValid() Tag {
	if t < 0 || t >= numTags {
		panic(fmt.Sprintf("avatar: invalid tag %d", int(t)))
	}
	return t
}

// ParseTag resolves an external name such as "warpStrength" or
// "warp_strength" to its Tag.
func ParseTag(name string) (Tag, error) {
	for t := Tag(0); t < numTags; t++ {
		if tagInfo[t].name == name {
			return t, nil
		}
	}
	if t, ok := tagAliases[name]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTag, name)
}

// IsLayerTag reports whether t names an input image rather than a setting.
func (t Tag) IsLayerTag() bool {
	switch t {
	case TagPfp, TagLeftFlag, TagRightFlag:
		return true
	}
	return false
}
